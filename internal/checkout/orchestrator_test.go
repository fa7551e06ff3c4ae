package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"

	"github.com/hakvenlong/e-commerce-Final/internal/cart"
	"github.com/hakvenlong/e-commerce-Final/internal/domain"
	"github.com/hakvenlong/e-commerce-Final/internal/events"
	"github.com/hakvenlong/e-commerce-Final/internal/invoice"
	"github.com/hakvenlong/e-commerce-Final/internal/payment"
)

var khr = currency.MustParseISO("KHR")

type testEnv struct {
	orch     *Orchestrator
	carts    *cart.MemoryStore
	gateway  *MockGateway
	sink     *MockSink
	renderer *MockRenderer
	events   *MockPublisher
	orders   *OrderStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		carts:    cart.NewMemoryStore(),
		gateway:  &MockGateway{Status: payment.StatusUnpaid},
		sink:     &MockSink{},
		renderer: &MockRenderer{},
		events:   &MockPublisher{},
		orders:   NewOrderStore(time.Hour),
	}
	t.Cleanup(func() { env.orders.Close() })

	env.orch = NewOrchestrator(env.carts, env.gateway, env.sink, env.renderer, env.events, env.orders, Config{
		Merchant: Merchant{
			AccountRef:    "merchant@bank",
			Name:          "HAK VENLONG",
			City:          "Phnom Penh",
			Phone:         "85512345678",
			StoreLabel:    "SMOS-Store",
			TerminalLabel: "Cashier-01",
		},
		SettlementRate:     decimal.NewFromInt(4060),
		SettlementCurrency: khr,
		QRDir:              t.TempDir(),
	})
	return env
}

func usdLine(productID int64, price string, qty int32) domain.CartLine {
	amount, _ := decimal.NewFromString(price)
	return domain.CartLine{
		ProductID: productID,
		Name:      "Test Product",
		UnitPrice: domain.NewMoney(amount, currency.USD),
		Quantity:  qty,
	}
}

func fillCart(t *testing.T, env *testEnv, session string, lines ...domain.CartLine) {
	t.Helper()
	for _, l := range lines {
		require.NoError(t, env.carts.Add(context.Background(), session, l))
	}
}

func validSubmit(method domain.PaymentMethod) SubmitRequest {
	return SubmitRequest{
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Phone:   "+855 12 345 678",
		Address: "123 Main St",
		Method:  method,
	}
}

func TestSubmit_EmptyCart(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.orch.Submit(context.Background(), "s1", validSubmit(domain.MethodDelivery))

	var v *ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "Empty cart", v.Reason)
	assert.Zero(t, env.sink.Sent())
}

func TestSubmit_InvalidContact_CartUntouched(t *testing.T) {
	env := newTestEnv(t)
	fillCart(t, env, "s1", usdLine(1, "10", 2))

	req := validSubmit(domain.MethodDelivery)
	req.Name = ""
	_, err := env.orch.Submit(context.Background(), "s1", req)

	var v *ValidationError
	require.ErrorAs(t, err, &v)

	lines, _ := env.carts.Get(context.Background(), "s1")
	assert.Len(t, lines, 1, "cart must survive a failed validation")
}

func TestSubmit_InvalidMethod(t *testing.T) {
	env := newTestEnv(t)
	fillCart(t, env, "s1", usdLine(1, "10", 1))

	req := validSubmit("paypal")
	_, err := env.orch.Submit(context.Background(), "s1", req)

	var v *ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "Invalid payment method", v.Reason)
}

func TestSubmit_Delivery_Fulfills(t *testing.T) {
	env := newTestEnv(t)
	fillCart(t, env, "s1", usdLine(1, "10", 2), usdLine(2, "5", 1))

	result, err := env.orch.Submit(context.Background(), "s1", validSubmit(domain.MethodDelivery))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFulfilled, result.Status)
	assert.Equal(t, "25.00", result.Order.Total.Amount.StringFixed(2))
	assert.Empty(t, result.Order.PaymentRequestID)
	assert.Equal(t, 1, env.sink.Sent())

	// selected lines removed from the live cart
	lines, _ := env.carts.Get(context.Background(), "s1")
	assert.Empty(t, lines)
}

func TestSubmit_Delivery_SucceedsWhenNotificationFails(t *testing.T) {
	env := newTestEnv(t)
	env.sink.Err = errors.New("telegram down")
	fillCart(t, env, "s1", usdLine(1, "10", 1))

	result, err := env.orch.Submit(context.Background(), "s1", validSubmit(domain.MethodDelivery))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFulfilled, result.Status)

	lines, _ := env.carts.Get(context.Background(), "s1")
	assert.Empty(t, lines)
}

func TestSubmit_Delivery_SelectedSubsetOnly(t *testing.T) {
	env := newTestEnv(t)
	fillCart(t, env, "s1", usdLine(1, "10", 1), usdLine(2, "5", 1), usdLine(3, "1", 4))

	req := validSubmit(domain.MethodDelivery)
	req.SelectedIDs = []int64{1, 3}
	result, err := env.orch.Submit(context.Background(), "s1", req)
	require.NoError(t, err)

	assert.Len(t, result.Order.Lines, 2)
	assert.Equal(t, "14.00", result.Order.Total.Amount.StringFixed(2))

	lines, _ := env.carts.Get(context.Background(), "s1")
	require.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].ProductID)
}

func TestSubmit_QR_AwaitsPayment(t *testing.T) {
	env := newTestEnv(t)
	fillCart(t, env, "s1", usdLine(1, "0.0246305418719212", 1))

	result, err := env.orch.Submit(context.Background(), "s1", validSubmit(domain.MethodQR))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAwaitingPayment, result.Status)
	assert.NotEmpty(t, result.RequestID)
	assert.NotEmpty(t, result.QRImagePath)
	assert.Equal(t, "100.00", result.Order.SettlementTotal.Amount.StringFixed(2))
	assert.Equal(t, "KHR", result.Order.SettlementTotal.Currency.String())

	// adapter saw the converted amount and the bill number
	assert.Equal(t, result.Order.BillNumber, env.gateway.LastRequest.BillNumber)
	assert.Equal(t, "KHR", env.gateway.LastRequest.Currency)

	// the qr cart is only cleared once paid
	lines, _ := env.carts.Get(context.Background(), "s1")
	assert.Len(t, lines, 1)

	// no notification at this stage
	assert.Zero(t, env.sink.Sent())
}

func TestSubmit_QR_GatewayFailureLeavesNoOrder(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.CreateErr = &payment.GatewayError{Op: "create", Err: errors.New("provider rejected")}
	fillCart(t, env, "s1", usdLine(1, "10", 1))

	_, err := env.orch.Submit(context.Background(), "s1", validSubmit(domain.MethodQR))

	var ge *payment.GatewayError
	require.ErrorAs(t, err, &ge)

	_, err = env.orch.Confirmation("s1")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	lines, _ := env.carts.Get(context.Background(), "s1")
	assert.Len(t, lines, 1)
}

func submitQR(t *testing.T, env *testEnv, session string) *SubmitResult {
	t.Helper()
	fillCart(t, env, session, usdLine(1, "10", 2))
	result, err := env.orch.Submit(context.Background(), session, validSubmit(domain.MethodQR))
	require.NoError(t, err)
	return result
}

func TestCheckStatus_UnknownRequest(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.orch.CheckStatus(context.Background(), "no-such-md5")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCheckStatus_Unpaid(t *testing.T) {
	env := newTestEnv(t)
	result := submitQR(t, env, "s1")

	status, err := env.orch.CheckStatus(context.Background(), result.RequestID)
	require.NoError(t, err)
	assert.False(t, status.Paid)
	assert.Zero(t, env.sink.Sent())
	assert.Zero(t, env.renderer.Rendered())
}

func TestCheckStatus_GatewayErrorIsTransient(t *testing.T) {
	env := newTestEnv(t)
	result := submitQR(t, env, "s1")
	env.gateway.CheckErr = &payment.GatewayError{Op: "check", Err: errors.New("timeout")}

	status, err := env.orch.CheckStatus(context.Background(), result.RequestID)
	require.NoError(t, err, "a transient provider failure must not surface")
	assert.False(t, status.Paid)
}

func TestCheckStatus_FirstPaidObservationSettles(t *testing.T) {
	env := newTestEnv(t)
	result := submitQR(t, env, "s1")
	env.gateway.Status = payment.StatusPaid

	status, err := env.orch.CheckStatus(context.Background(), result.RequestID)
	require.NoError(t, err)

	assert.True(t, status.Paid)
	assert.NotEmpty(t, status.Redirect)
	assert.Equal(t, 1, env.sink.Sent())
	assert.Equal(t, 1, env.renderer.Rendered())

	// the invoice saw the immutable snapshot with the right total
	require.NotNil(t, env.renderer.LastOrder)
	assert.Equal(t, "20.00", env.renderer.LastOrder.Total.Amount.StringFixed(2))

	// live cart cleared
	lines, _ := env.carts.Get(context.Background(), "s1")
	assert.Empty(t, lines)
}

func TestCheckStatus_RepollIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	result := submitQR(t, env, "s1")
	env.gateway.Status = payment.StatusPaid

	for i := 0; i < 5; i++ {
		status, err := env.orch.CheckStatus(context.Background(), result.RequestID)
		require.NoError(t, err)
		assert.True(t, status.Paid)
	}

	assert.Equal(t, 1, env.sink.Sent())
	assert.Equal(t, 1, env.renderer.Rendered())
	// once paid, the provider is not polled again
	assert.Equal(t, 1, env.gateway.Checks())
}

func TestCheckStatus_ConcurrentPollsSettleOnce(t *testing.T) {
	env := newTestEnv(t)
	result := submitQR(t, env, "s1")
	env.gateway.Status = payment.StatusPaid

	const n = 25
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			status, err := env.orch.CheckStatus(context.Background(), result.RequestID)
			assert.NoError(t, err)
			assert.True(t, status.Paid)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, env.sink.Sent(), "exactly one notification")
	assert.Equal(t, 1, env.renderer.Rendered(), "exactly one invoice render")

	tracked, err := env.orders.GetByRequest(result.RequestID)
	require.NoError(t, err)
	assert.True(t, tracked.isPaid())
}

func TestCheckStatus_RenderFailureRetriedNextPoll(t *testing.T) {
	env := newTestEnv(t)
	result := submitQR(t, env, "s1")
	env.gateway.Status = payment.StatusPaid
	env.renderer.Err = invoice.ErrIncompleteSnapshot

	status, err := env.orch.CheckStatus(context.Background(), result.RequestID)
	require.NoError(t, err)
	assert.True(t, status.Paid, "render failure must not block the paid transition")

	_, err = env.orch.InvoicePath("s1")
	assert.ErrorIs(t, err, invoice.ErrNotReady)

	// next poll retries the render
	env.renderer.Err = nil
	_, err = env.orch.CheckStatus(context.Background(), result.RequestID)
	require.NoError(t, err)

	path, err := env.orch.InvoicePath("s1")
	require.NoError(t, err)
	assert.NotEmpty(t, path)
	assert.Equal(t, 2, env.renderer.Rendered())
	assert.Equal(t, 1, env.sink.Sent(), "notification is never retried")
}

func TestInvoicePath_NotReadyBeforePayment(t *testing.T) {
	env := newTestEnv(t)
	submitQR(t, env, "s1")

	_, err := env.orch.InvoicePath("s1")
	assert.ErrorIs(t, err, invoice.ErrNotReady)
}

func TestInvoicePath_NoOrder(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.orch.InvoicePath("nobody")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestConfirmation_PaidQROrder(t *testing.T) {
	env := newTestEnv(t)
	result := submitQR(t, env, "s1")
	env.gateway.Status = payment.StatusPaid

	_, err := env.orch.CheckStatus(context.Background(), result.RequestID)
	require.NoError(t, err)

	c, err := env.orch.Confirmation("s1")
	require.NoError(t, err)
	assert.True(t, c.Paid)
	assert.True(t, c.HasInvoice)
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, result.Order.BillNumber, c.BillNumber)
}

func TestOrderEventsPublished(t *testing.T) {
	env := newTestEnv(t)
	result := submitQR(t, env, "s1")
	env.gateway.Status = payment.StatusPaid

	_, err := env.orch.CheckStatus(context.Background(), result.RequestID)
	require.NoError(t, err)

	published := env.events.Published()
	require.Len(t, published, 2)
	assert.Equal(t, events.TypeOrderPlaced, published[0].Type)
	assert.Equal(t, events.TypeOrderPaid, published[1].Type)
	assert.Equal(t, result.Order.BillNumber, published[1].BillNumber)
}

func TestBillNumbersAreUnique(t *testing.T) {
	var clock billClock
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		b := clock.next()
		assert.False(t, seen[b], "duplicate bill number %s", b)
		seen[b] = true
	}
}
