package checkout

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	IllegalTransitionError = errors.New("illegal transition of order status")
)

// ValidationError is recovered locally: the caller re-renders the form
// with the reason and the cart untouched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
