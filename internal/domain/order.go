package domain

import "time"

type Contact struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// CartLine is one product selection in a cart. Price and display fields
// are snapshotted from the catalog at the time the line is added.
type CartLine struct {
	ProductID int64
	Name      string
	Brand     string
	ImageURL  string
	UnitPrice Money
	Quantity  int32
}

func (l CartLine) Subtotal() Money {
	return l.UnitPrice.Mul(l.Quantity)
}

// CartTotal sums line subtotals. All lines in one cart share the store's
// base currency, so the error from Add cannot trigger in practice.
func CartTotal(lines []CartLine) Money {
	if len(lines) == 0 {
		return Money{}
	}
	total := lines[0].Subtotal()
	for _, l := range lines[1:] {
		total, _ = total.Add(l.Subtotal())
	}
	return total
}

type PaymentMethod string

const (
	MethodDelivery PaymentMethod = "delivery"
	MethodQR       PaymentMethod = "qr"
)

func (m PaymentMethod) Valid() bool {
	return m == MethodDelivery || m == MethodQR
}

// Order is the immutable record of one checkout submission. The payment
// lifecycle flags live in the checkout order store, not here: everything
// on this struct is fixed at creation.
type Order struct {
	BillNumber      string
	SessionID       string
	Contact         Contact
	Lines           []CartLine
	Method          PaymentMethod
	Total           Money // base currency
	SettlementTotal Money // converted at the configured rate, qr only
	// PaymentRequestID correlates the scannable payload with its
	// settlement status. Set if and only if Method == MethodQR.
	PaymentRequestID string
	QRImagePath      string
	CreatedAt        time.Time
}
