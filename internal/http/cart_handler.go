package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hakvenlong/e-commerce-Final/internal/cart"
	"github.com/hakvenlong/e-commerce-Final/internal/catalog"
	"github.com/hakvenlong/e-commerce-Final/internal/domain"
)

type CartHandler struct {
	carts   cart.Store
	catalog catalog.Repository
	timeout time.Duration
}

func NewCartHandler(carts cart.Store, repo catalog.Repository, timeout time.Duration) *CartHandler {
	return &CartHandler{carts: carts, catalog: repo, timeout: timeout}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int32 `json:"quantity"`
}

type CartLineDTO struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
	ImageURL  string `json:"image"`
	UnitPrice string `json:"unit_price"`
	Quantity  int32  `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type CartResponseDTO struct {
	Items    []CartLineDTO `json:"items"`
	Total    string        `json:"total"`
	Currency string        `json:"currency"`
}

func toCartResponse(lines []domain.CartLine) CartResponseDTO {
	items := make([]CartLineDTO, 0, len(lines))
	for _, l := range lines {
		items = append(items, CartLineDTO{
			ProductID: l.ProductID,
			Name:      l.Name,
			Brand:     l.Brand,
			ImageURL:  l.ImageURL,
			UnitPrice: l.UnitPrice.Amount.String(),
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal().Amount.StringFixed(2),
		})
	}
	total := domain.CartTotal(lines)
	return CartResponseDTO{
		Items:    items,
		Total:    total.Amount.StringFixed(2),
		Currency: total.Currency.String(),
	}
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	lines, err := h.carts.Get(ctx, sessionID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(lines))
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	// Snapshot name and price from the catalog, never from the client.
	product, err := h.catalog.Get(ctx, req.ProductID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if !product.InStock {
		respondError(w, http.StatusNotFound, "not_found", "product out of stock")
		return
	}

	sessionID := getSessionID(r.Context())
	line := domain.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Brand:     product.Brand,
		ImageURL:  product.ImageURL,
		UnitPrice: product.Price,
		Quantity:  req.Quantity,
	}
	if err := h.carts.Add(ctx, sessionID, line); err != nil {
		handleDomainError(w, err)
		return
	}

	lines, err := h.carts.Get(ctx, sessionID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCartResponse(lines))
}

// PUT /api/v1/cart/items/{product_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	sessionID := getSessionID(r.Context())
	if err := h.carts.SetQuantity(ctx, sessionID, productID, req.Quantity); err != nil {
		handleDomainError(w, err)
		return
	}

	lines, err := h.carts.Get(ctx, sessionID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(lines))
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	sessionID := getSessionID(r.Context())
	if err := h.carts.Remove(ctx, sessionID, productID); err != nil {
		handleDomainError(w, err)
		return
	}

	lines, err := h.carts.Get(ctx, sessionID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(lines))
}
