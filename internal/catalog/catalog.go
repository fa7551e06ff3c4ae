package catalog

import (
	"context"
	"errors"

	"github.com/hakvenlong/e-commerce-Final/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Repository is the read side of the product catalog.
type Repository interface {
	// List returns all products ordered by id.
	List(ctx context.Context) ([]*domain.Product, error)

	// Get returns one product or ErrProductNotFound.
	Get(ctx context.Context, id int64) (*domain.Product, error)

	Close() error
}
