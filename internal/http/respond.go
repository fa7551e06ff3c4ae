package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/hakvenlong/e-commerce-Final/internal/cart"
	"github.com/hakvenlong/e-commerce-Final/internal/catalog"
	"github.com/hakvenlong/e-commerce-Final/internal/checkout"
	"github.com/hakvenlong/e-commerce-Final/internal/invoice"
	"github.com/hakvenlong/e-commerce-Final/internal/payment"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
	})
}

// handleDomainError maps core errors onto HTTP status codes.
func handleDomainError(w http.ResponseWriter, err error) {
	var validation *checkout.ValidationError
	if errors.As(err, &validation) {
		respondError(w, http.StatusBadRequest, "validation_error", validation.Reason)
		return
	}

	var gateway *payment.GatewayError
	if errors.As(err, &gateway) {
		respondError(w, http.StatusBadGateway, "gateway_error", gateway.Error())
		return
	}

	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", "product not found")
	case errors.Is(err, cart.ErrLineNotFound):
		respondError(w, http.StatusNotFound, "not_found", "cart line not found")
	case errors.Is(err, checkout.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", "order not found")
	case errors.Is(err, invoice.ErrNotReady):
		respondError(w, http.StatusNotFound, "invoice_not_ready", "invoice not ready")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
