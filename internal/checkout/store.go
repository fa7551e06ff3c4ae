package checkout

import (
	"sync"
	"time"

	"github.com/hakvenlong/e-commerce-Final/internal/domain"
)

const (
	// sweepInterval is how often the expiry sweep runs.
	sweepInterval = time.Minute
)

// trackedOrder pairs an immutable order snapshot with its mutable
// payment lifecycle. The mutex guards status and the monotonic flags;
// the notify-once / invoice-once / clear-cart sequence runs as one
// critical section under it.
type trackedOrder struct {
	order *domain.Order

	mu               sync.Mutex
	status           domain.OrderStatus
	paid             bool
	notifiedPaid     bool
	invoiceGenerated bool
	invoiceRef       string
}

// transition moves to the next status. Callers hold t.mu.
func (t *trackedOrder) transition(next domain.OrderStatus) error {
	if !domain.CanTransitionTo(t.status, next) {
		return IllegalTransitionError
	}
	t.status = next
	return nil
}

func (t *trackedOrder) isPaid() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paid
}

func (t *trackedOrder) invoice() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.invoiceRef, t.invoiceGenerated
}

// OrderStore keeps in-flight orders in memory: qr orders keyed by their
// payment request id, and the latest order per session for the
// confirmation and invoice views. A background sweep drops unpaid qr
// orders once they outlive the TTL.
type OrderStore struct {
	mu        sync.RWMutex
	byRequest map[string]*trackedOrder
	bySession map[string]*trackedOrder

	ttl       time.Duration
	stopSweep chan struct{}
	wg        sync.WaitGroup
}

func NewOrderStore(ttl time.Duration) *OrderStore {
	s := &OrderStore{
		byRequest: make(map[string]*trackedOrder),
		bySession: make(map[string]*trackedOrder),
		ttl:       ttl,
		stopSweep: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.sweepLoop()

	return s
}

func (s *OrderStore) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireOrders()
		case <-s.stopSweep:
			return
		}
	}
}

// expireOrders drops abandoned AwaitingPayment orders past the TTL.
func (s *OrderStore) expireOrders() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.ttl)
	for id, t := range s.byRequest {
		if t.isPaid() || !t.order.CreatedAt.Before(cutoff) {
			continue
		}
		delete(s.byRequest, id)
		if s.bySession[t.order.SessionID] == t {
			delete(s.bySession, t.order.SessionID)
		}
	}
}

// Put records a new order. At most one in-flight order exists per
// session; a new submission replaces the previous one.
func (s *OrderStore) Put(order *domain.Order, status domain.OrderStatus) *trackedOrder {
	t := &trackedOrder{order: order, status: status}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.bySession[order.SessionID] = t
	if order.PaymentRequestID != "" {
		s.byRequest[order.PaymentRequestID] = t
	}
	return t
}

func (s *OrderStore) GetByRequest(requestID string) (*trackedOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.byRequest[requestID]
	if !exists {
		return nil, ErrOrderNotFound
	}
	return t, nil
}

func (s *OrderStore) GetBySession(sessionID string) (*trackedOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.bySession[sessionID]
	if !exists {
		return nil, ErrOrderNotFound
	}
	return t, nil
}

// Close stops the background sweep and waits for it to finish.
func (s *OrderStore) Close() error {
	close(s.stopSweep)
	s.wg.Wait()
	return nil
}
