package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hakvenlong/e-commerce-Final/internal/catalog"
	"github.com/hakvenlong/e-commerce-Final/internal/domain"
)

type CatalogHandler struct {
	repo    catalog.Repository
	timeout time.Duration
}

func NewCatalogHandler(repo catalog.Repository, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{repo: repo, timeout: timeout}
}

type ProductDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Description string `json:"description"`
	Categories  string `json:"categories"`
	ImageURL    string `json:"image"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	InStock     bool   `json:"in_stock"`
}

func toProductDTO(p *domain.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Description: p.Description,
		Categories:  p.Categories,
		ImageURL:    p.ImageURL,
		Price:       p.Price.Amount.String(),
		Currency:    p.Price.Currency.String(),
		InStock:     p.InStock,
	}
}

// GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.repo.List(ctx)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}
	respondJSON(w, http.StatusOK, out)
}

// GET /api/v1/products/{product_id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	p, err := h.repo.Get(ctx, id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductDTO(p))
}
