package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPaid   Status = "PAID"
	StatusUnpaid Status = "UNPAID"
)

// Request carries everything the provider needs to issue a scannable
// payment payload.
type Request struct {
	AccountRef    string
	MerchantName  string
	MerchantCity  string
	Amount        decimal.Decimal
	Currency      string
	BillNumber    string
	PhoneRef      string
	StoreLabel    string
	TerminalLabel string
}

// PaymentRequest is the provider's answer: the scannable payload and the
// stable id used to poll its settlement status.
type PaymentRequest struct {
	Payload   string
	RequestID string
}

// Gateway abstracts the payment provider. CheckStatus may block on
// network I/O; callers must not hold order locks across it.
type Gateway interface {
	CreateRequest(ctx context.Context, req Request) (*PaymentRequest, error)
	CheckStatus(ctx context.Context, requestID string) (Status, error)
}

// GatewayError wraps provider rejections and transport failures.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }
