package cart

import (
	"context"
	"errors"

	"github.com/hakvenlong/e-commerce-Final/internal/domain"
)

// Common errors returned by cart stores
var (
	ErrLineNotFound = errors.New("cart line not found")
)

// Store holds one cart per customer session. Lines keep the order they
// were first added in. All operations are scoped to a single session id;
// there is no cross-session visibility.
type Store interface {
	// Get returns the current lines, oldest first. A session with no
	// cart yields an empty slice, not an error.
	Get(ctx context.Context, sessionID string) ([]domain.CartLine, error)

	// Add merges the line into an existing one for the same product
	// (quantities add up) or appends it.
	Add(ctx context.Context, sessionID string, line domain.CartLine) error

	// SetQuantity replaces the quantity of an existing line.
	// Returns ErrLineNotFound if the product is not in the cart.
	SetQuantity(ctx context.Context, sessionID string, productID int64, quantity int32) error

	// Remove drops the line for the product. Removing an absent line is
	// a no-op.
	Remove(ctx context.Context, sessionID string, productID int64) error

	// Clear drops the whole cart for the session.
	Clear(ctx context.Context, sessionID string) error
}
