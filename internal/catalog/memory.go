package catalog

import (
	"context"
	"sync"

	"github.com/hakvenlong/e-commerce-Final/internal/domain"
)

// Memory is an in-memory catalog used in development and tests.
type Memory struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
	order    []int64
}

func NewMemory(products ...*domain.Product) *Memory {
	m := &Memory{products: make(map[int64]*domain.Product, len(products))}
	for _, p := range products {
		if _, exists := m.products[p.ID]; !exists {
			m.order = append(m.order, p.ID)
		}
		m.products[p.ID] = p
	}
	return m
}

func (m *Memory) List(_ context.Context) ([]*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*domain.Product, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.products[id])
	}
	return result, nil
}

func (m *Memory) Get(_ context.Context, id int64) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (m *Memory) Close() error { return nil }
