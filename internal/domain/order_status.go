package domain

type OrderStatus string

const (
	StatusDraft           OrderStatus = "DRAFT"
	StatusAwaitingPayment OrderStatus = "AWAITING_PAYMENT"
	StatusPaid            OrderStatus = "PAID"
	StatusFulfilled       OrderStatus = "FULFILLED"
)

func (s OrderStatus) IsTerminal() bool {
	return s == StatusFulfilled
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether moving from s to next is a legal step.
// Delivery orders jump Draft -> Fulfilled directly; qr orders go through
// AwaitingPayment and Paid.
func CanTransitionTo(s, next OrderStatus) bool {
	switch s {
	case StatusDraft:
		return next == StatusAwaitingPayment || next == StatusFulfilled
	case StatusAwaitingPayment:
		return next == StatusPaid
	case StatusPaid:
		return next == StatusFulfilled
	default:
		return false
	}
}
