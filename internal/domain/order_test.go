package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

func TestCartTotal(t *testing.T) {
	price := NewMoney(decimal.RequireFromString("2.50"), currency.USD)
	lines := []CartLine{
		{ProductID: 1, UnitPrice: price, Quantity: 2},
		{ProductID: 2, UnitPrice: price, Quantity: 1},
	}

	total := CartTotal(lines)
	assert.Equal(t, "7.50", total.Amount.StringFixed(2))
	assert.Equal(t, currency.USD, total.Currency)

	empty := CartTotal(nil)
	assert.True(t, empty.Amount.IsZero())
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, MethodDelivery.Valid())
	assert.True(t, MethodQR.Valid())
	assert.False(t, PaymentMethod("paypal").Valid())
	assert.False(t, PaymentMethod("").Valid())
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{StatusDraft, StatusAwaitingPayment, true},
		{StatusDraft, StatusFulfilled, true},
		{StatusDraft, StatusPaid, false},
		{StatusAwaitingPayment, StatusPaid, true},
		{StatusAwaitingPayment, StatusFulfilled, false},
		{StatusPaid, StatusFulfilled, true},
		{StatusPaid, StatusAwaitingPayment, false},
		{StatusFulfilled, StatusPaid, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransitionTo(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusFulfilled.IsTerminal())
	assert.False(t, StatusPaid.IsTerminal())
	assert.False(t, StatusAwaitingPayment.IsTerminal())
}
