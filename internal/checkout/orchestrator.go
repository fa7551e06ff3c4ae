package checkout

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/hakvenlong/e-commerce-Final/internal/cart"
	"github.com/hakvenlong/e-commerce-Final/internal/domain"
	"github.com/hakvenlong/e-commerce-Final/internal/events"
	"github.com/hakvenlong/e-commerce-Final/internal/invoice"
	"github.com/hakvenlong/e-commerce-Final/internal/notify"
	"github.com/hakvenlong/e-commerce-Final/internal/payment"
)

// Merchant identifies the store towards the payment provider.
type Merchant struct {
	AccountRef    string
	Name          string
	City          string
	Phone         string
	StoreLabel    string
	TerminalLabel string
}

type Config struct {
	Merchant           Merchant
	SettlementRate     decimal.Decimal
	SettlementCurrency currency.Unit
	QRDir              string
}

// Orchestrator owns the order state machine: it moves a checkout
// submission from Draft through AwaitingPayment or straight to
// Fulfilled, and settles qr orders on status polls with each side
// effect firing at most once.
type Orchestrator struct {
	carts    cart.Store
	gateway  payment.Gateway
	notifier notify.Sink
	renderer invoice.Renderer
	events   events.Publisher
	orders   *OrderStore
	cfg      Config
	bills    billClock
}

func NewOrchestrator(
	carts cart.Store,
	gateway payment.Gateway,
	notifier notify.Sink,
	renderer invoice.Renderer,
	publisher events.Publisher,
	orders *OrderStore,
	cfg Config,
) *Orchestrator {
	return &Orchestrator{
		carts:    carts,
		gateway:  gateway,
		notifier: notifier,
		renderer: renderer,
		events:   publisher,
		orders:   orders,
		cfg:      cfg,
	}
}

type SubmitRequest struct {
	SelectedIDs []int64
	Name        string
	Email       string
	Phone       string
	Address     string
	Method      domain.PaymentMethod
}

type SubmitResult struct {
	Order  *domain.Order
	Status domain.OrderStatus

	// qr orders only
	RequestID   string
	QRImagePath string
}

// Submit runs the Draft transition: it snapshots the selected lines,
// validates contact fields, and either requests a payment payload (qr)
// or fulfills directly (delivery). Validation or gateway failure leaves
// no order behind and the live cart untouched.
func (o *Orchestrator) Submit(ctx context.Context, sessionID string, req SubmitRequest) (*SubmitResult, error) {
	lines, err := o.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	selected := selectLines(lines, req.SelectedIDs)
	if len(selected) == 0 {
		return nil, &ValidationError{Reason: "Empty cart"}
	}
	if v := Validate(req.Name, req.Email, req.Phone, req.Address); v != nil {
		return nil, v
	}
	if !req.Method.Valid() {
		return nil, &ValidationError{Reason: "Invalid payment method"}
	}

	order := &domain.Order{
		BillNumber: o.bills.next(),
		SessionID:  sessionID,
		Contact: domain.Contact{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		},
		Lines:     selected,
		Method:    req.Method,
		Total:     domain.CartTotal(selected),
		CreatedAt: time.Now(),
	}

	if req.Method == domain.MethodQR {
		return o.submitQR(ctx, order)
	}
	return o.submitDelivery(ctx, order)
}

// submitQR runs Draft -> AwaitingPayment. Adapter failure aborts the
// transition; nothing is persisted.
func (o *Orchestrator) submitQR(ctx context.Context, order *domain.Order) (*SubmitResult, error) {
	order.SettlementTotal = order.Total.Convert(o.cfg.SettlementRate, o.cfg.SettlementCurrency)

	m := o.cfg.Merchant
	pr, err := o.gateway.CreateRequest(ctx, payment.Request{
		AccountRef:    m.AccountRef,
		MerchantName:  m.Name,
		MerchantCity:  m.City,
		Amount:        order.SettlementTotal.Amount,
		Currency:      order.SettlementTotal.Currency.String(),
		BillNumber:    order.BillNumber,
		PhoneRef:      m.Phone,
		StoreLabel:    m.StoreLabel,
		TerminalLabel: m.TerminalLabel,
	})
	if err != nil {
		return nil, err
	}

	qrPath, err := payment.WriteQRImage(o.cfg.QRDir, pr.RequestID, pr.Payload)
	if err != nil {
		return nil, err
	}

	order.PaymentRequestID = pr.RequestID
	order.QRImagePath = qrPath
	o.orders.Put(order, domain.StatusAwaitingPayment)

	o.publish(ctx, events.TypeOrderPlaced, order)
	log.Printf("qr order placed: bill=%s request_id=%s", order.BillNumber, pr.RequestID)

	return &SubmitResult{
		Order:       order,
		Status:      domain.StatusAwaitingPayment,
		RequestID:   pr.RequestID,
		QRImagePath: qrPath,
	}, nil
}

// submitDelivery runs Draft -> Fulfilled. Notification is fire and
// forget; the transition succeeds regardless.
func (o *Orchestrator) submitDelivery(ctx context.Context, order *domain.Order) (*SubmitResult, error) {
	if err := o.notifier.Send(ctx, orderMessage(order)); err != nil {
		log.Printf("order notification failed: %v", err)
	}
	o.publish(ctx, events.TypeOrderPlaced, order)

	for _, l := range order.Lines {
		if err := o.carts.Remove(ctx, order.SessionID, l.ProductID); err != nil {
			log.Printf("failed to remove line %d from cart: %v", l.ProductID, err)
		}
	}

	o.orders.Put(order, domain.StatusFulfilled)
	log.Printf("delivery order placed: bill=%s", order.BillNumber)

	return &SubmitResult{Order: order, Status: domain.StatusFulfilled}, nil
}

type StatusResult struct {
	Paid     bool
	Redirect string
}

const thanksPath = "/thanks"

// CheckStatus answers a poll for a qr order. The provider call happens
// outside the order lock; the first PAID observation settles the order
// (notify once, render the invoice once, clear the cart) atomically
// with respect to concurrent polls. Later polls are no-ops.
func (o *Orchestrator) CheckStatus(ctx context.Context, requestID string) (*StatusResult, error) {
	tracked, err := o.orders.GetByRequest(requestID)
	if err != nil {
		return nil, err
	}

	if tracked.isPaid() {
		// Idempotent no-op, except that a previously failed render is
		// retried until an invoice exists.
		o.retryInvoice(tracked)
		return &StatusResult{Paid: true, Redirect: thanksPath}, nil
	}

	status, err := o.gateway.CheckStatus(ctx, requestID)
	if err != nil {
		// Transient provider failure: report unpaid for this poll only.
		log.Printf("status check failed for %s: %v", requestID, err)
		return &StatusResult{Paid: false}, nil
	}
	if status != payment.StatusPaid {
		return &StatusResult{Paid: false}, nil
	}

	o.settle(ctx, tracked)
	return &StatusResult{Paid: true, Redirect: thanksPath}, nil
}

// settle runs the paid transition exactly once per order.
func (o *Orchestrator) settle(ctx context.Context, tracked *trackedOrder) {
	order := tracked.order

	tracked.mu.Lock()
	defer tracked.mu.Unlock()

	if tracked.paid {
		return
	}
	if err := tracked.transition(domain.StatusPaid); err != nil {
		log.Printf("settle rejected for %s: %v", order.BillNumber, err)
		return
	}

	if !tracked.notifiedPaid {
		if err := o.notifier.Send(ctx, paidMessage(order)); err != nil {
			log.Printf("paid notification failed: %v", err)
		} else {
			tracked.notifiedPaid = true
		}
	}

	if !tracked.invoiceGenerated {
		ref, err := o.renderer.Render(order)
		if err != nil {
			// Flag stays false so a later poll retries the render.
			log.Printf("invoice render failed for %s: %v", order.BillNumber, err)
		} else {
			tracked.invoiceRef = ref
			tracked.invoiceGenerated = true
		}
	}

	if err := o.carts.Clear(ctx, order.SessionID); err != nil {
		log.Printf("failed to clear cart for %s: %v", order.SessionID, err)
	}

	tracked.paid = true
	o.publish(ctx, events.TypeOrderPaid, order)
	log.Printf("payment confirmed: bill=%s request_id=%s", order.BillNumber, order.PaymentRequestID)
}

func (o *Orchestrator) retryInvoice(tracked *trackedOrder) {
	tracked.mu.Lock()
	defer tracked.mu.Unlock()

	if !tracked.paid || tracked.invoiceGenerated {
		return
	}
	ref, err := o.renderer.Render(tracked.order)
	if err != nil {
		log.Printf("invoice render retry failed for %s: %v", tracked.order.BillNumber, err)
		return
	}
	tracked.invoiceRef = ref
	tracked.invoiceGenerated = true
}

// InvoicePath returns the rendered invoice handle for the session's
// current order, or invoice.ErrNotReady until the paid transition has
// produced one that still resolves.
func (o *Orchestrator) InvoicePath(sessionID string) (string, error) {
	tracked, err := o.orders.GetBySession(sessionID)
	if err != nil {
		return "", err
	}

	ref, generated := tracked.invoice()
	if !generated {
		return "", invoice.ErrNotReady
	}
	if err := o.renderer.Resolve(ref); err != nil {
		return "", err
	}
	return ref, nil
}

// Confirmation summarizes the session's current order for the
// thank-you view.
type Confirmation struct {
	Name            string
	Address         string
	BillNumber      string
	Paid            bool
	HasInvoice      bool
	SettlementTotal string
}

func (o *Orchestrator) Confirmation(sessionID string) (*Confirmation, error) {
	tracked, err := o.orders.GetBySession(sessionID)
	if err != nil {
		return nil, err
	}

	_, hasInvoice := tracked.invoice()
	order := tracked.order
	return &Confirmation{
		Name:            order.Contact.Name,
		Address:         order.Contact.Address,
		BillNumber:      order.BillNumber,
		Paid:            tracked.isPaid() || order.Method == domain.MethodDelivery,
		HasInvoice:      hasInvoice,
		SettlementTotal: order.SettlementTotal.Amount.StringFixed(2),
	}, nil
}

func (o *Orchestrator) publish(ctx context.Context, eventType string, order *domain.Order) {
	ev := events.Event{
		Type:       eventType,
		BillNumber: order.BillNumber,
		SessionID:  order.SessionID,
		Method:     string(order.Method),
		Total:      order.Total.Amount.StringFixed(2),
		Currency:   order.Total.Currency.String(),
		OccurredAt: time.Now(),
	}
	if order.Method == domain.MethodQR {
		ev.SettlementTotal = order.SettlementTotal.Amount.StringFixed(2)
	}
	if err := o.events.Publish(ctx, ev); err != nil {
		log.Printf("event publish failed for %s: %v", order.BillNumber, err)
	}
}

func selectLines(lines []domain.CartLine, ids []int64) []domain.CartLine {
	if len(ids) == 0 {
		return lines
	}
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var selected []domain.CartLine
	for _, l := range lines {
		if wanted[l.ProductID] {
			selected = append(selected, l)
		}
	}
	return selected
}
