package cart

import (
	"context"
	"sync"

	"github.com/hakvenlong/e-commerce-Final/internal/domain"
)

// MemoryStore implements Store with in-memory storage. The single lock
// also serializes mutations within a session, which is all the
// orchestrator requires.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]domain.CartLine // sessionID -> ordered lines
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]domain.CartLine)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) ([]domain.CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := s.carts[sessionID]
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (s *MemoryStore) Add(_ context.Context, sessionID string, line domain.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ProductID == line.ProductID {
			lines[i].Quantity += line.Quantity
			s.carts[sessionID] = lines
			return nil
		}
	}
	s.carts[sessionID] = append(lines, line)
	return nil
}

func (s *MemoryStore) SetQuantity(_ context.Context, sessionID string, productID int64, quantity int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			s.carts[sessionID] = lines
			return nil
		}
	}
	return ErrLineNotFound
}

func (s *MemoryStore) Remove(_ context.Context, sessionID string, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ProductID == productID {
			s.carts[sessionID] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}
