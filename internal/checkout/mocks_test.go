package checkout

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"sync"

	"github.com/hakvenlong/e-commerce-Final/internal/domain"
	"github.com/hakvenlong/e-commerce-Final/internal/events"
	"github.com/hakvenlong/e-commerce-Final/internal/payment"
)

// MockGateway implements payment.Gateway for testing
type MockGateway struct {
	mu          sync.Mutex
	CreateErr   error
	Status      payment.Status
	CheckErr    error
	CheckCalls  int
	CreateCalls int
	LastRequest payment.Request
}

func (m *MockGateway) CreateRequest(_ context.Context, req payment.Request) (*payment.PaymentRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	m.LastRequest = req
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	payload := "TESTPAYLOAD-" + req.BillNumber
	sum := md5.Sum([]byte(payload))
	return &payment.PaymentRequest{
		Payload:   payload,
		RequestID: hex.EncodeToString(sum[:]),
	}, nil
}

func (m *MockGateway) CheckStatus(context.Context, string) (payment.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CheckCalls++
	if m.CheckErr != nil {
		return payment.StatusUnpaid, m.CheckErr
	}
	return m.Status, nil
}

func (m *MockGateway) Checks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CheckCalls
}

// MockSink implements notify.Sink for testing
type MockSink struct {
	mu    sync.Mutex
	Err   error
	Calls int
	Texts []string
}

func (m *MockSink) Send(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	m.Texts = append(m.Texts, text)
	return m.Err
}

func (m *MockSink) Sent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// MockRenderer implements invoice.Renderer for testing
type MockRenderer struct {
	mu        sync.Mutex
	Err       error
	Calls     int
	LastOrder *domain.Order
	Handle    string
}

func (m *MockRenderer) Render(order *domain.Order) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	m.LastOrder = order
	if m.Err != nil {
		return "", m.Err
	}
	if m.Handle != "" {
		return m.Handle, nil
	}
	return "invoices/invoice_" + order.BillNumber + ".pdf", nil
}

func (m *MockRenderer) Resolve(string) error { return nil }

func (m *MockRenderer) Rendered() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// MockPublisher implements events.Publisher for testing
type MockPublisher struct {
	mu     sync.Mutex
	Err    error
	Events []events.Event
}

func (m *MockPublisher) Publish(_ context.Context, ev events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Events = append(m.Events, ev)
	return m.Err
}

func (m *MockPublisher) Close() error { return nil }

func (m *MockPublisher) Published() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]events.Event, len(m.Events))
	copy(out, m.Events)
	return out
}
