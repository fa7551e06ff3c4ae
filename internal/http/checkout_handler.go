package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/hakvenlong/e-commerce-Final/internal/checkout"
	"github.com/hakvenlong/e-commerce-Final/internal/domain"
)

type CheckoutHandler struct {
	svc     *checkout.Orchestrator
	timeout time.Duration
}

func NewCheckoutHandler(svc *checkout.Orchestrator, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, timeout: timeout}
}

type SubmitRequestDTO struct {
	SelectedIDs   []int64 `json:"selected_ids"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	PaymentMethod string  `json:"payment_method"`
}

type QRPendingDTO struct {
	BillNumber       string `json:"bill_number"`
	PaymentRequestID string `json:"payment_request_id"`
	QRImage          string `json:"qr_image"`
	Amount           string `json:"amount"`
	Currency         string `json:"currency"`
}

type OrderConfirmationDTO struct {
	BillNumber string `json:"bill_number"`
	Status     string `json:"status"`
	Total      string `json:"total"`
	Currency   string `json:"currency"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req SubmitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sessionID := getSessionID(r.Context())
	result, err := h.svc.Submit(ctx, sessionID, checkout.SubmitRequest{
		SelectedIDs: req.SelectedIDs,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Method:      domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	if result.Status == domain.StatusAwaitingPayment {
		respondJSON(w, http.StatusCreated, QRPendingDTO{
			BillNumber:       result.Order.BillNumber,
			PaymentRequestID: result.RequestID,
			QRImage:          result.QRImagePath,
			Amount:           result.Order.SettlementTotal.Amount.StringFixed(2),
			Currency:         result.Order.SettlementTotal.Currency.String(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, OrderConfirmationDTO{
		BillNumber: result.Order.BillNumber,
		Status:     result.Status.String(),
		Total:      result.Order.Total.Amount.StringFixed(2),
		Currency:   result.Order.Total.Currency.String(),
	})
}

type CheckStatusRequestDTO struct {
	PaymentRequestID string `json:"payment_request_id"`
}

type CheckStatusResponseDTO struct {
	Paid     bool   `json:"paid"`
	Redirect string `json:"redirect,omitempty"`
}

// POST /api/v1/checkout/status
func (h *CheckoutHandler) CheckStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CheckStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.PaymentRequestID == "" {
		respondError(w, http.StatusBadRequest, "missing_payment_request_id", "payment_request_id is required")
		return
	}

	result, err := h.svc.CheckStatus(ctx, req.PaymentRequestID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CheckStatusResponseDTO{
		Paid:     result.Paid,
		Redirect: result.Redirect,
	})
}

// GET /api/v1/checkout/invoice
func (h *CheckoutHandler) DownloadInvoice(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())

	path, err := h.svc.InvoicePath(sessionID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}

type ConfirmationDTO struct {
	Name            string `json:"name"`
	Address         string `json:"address"`
	BillNumber      string `json:"bill_number"`
	Paid            bool   `json:"paid"`
	HasInvoice      bool   `json:"has_invoice"`
	SettlementTotal string `json:"settlement_total"`
}

// GET /api/v1/checkout/confirmation
func (h *CheckoutHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())

	c, err := h.svc.Confirmation(sessionID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ConfirmationDTO{
		Name:            c.Name,
		Address:         c.Address,
		BillNumber:      c.BillNumber,
		Paid:            c.Paid,
		HasInvoice:      c.HasInvoice,
		SettlementTotal: c.SettlementTotal,
	})
}
