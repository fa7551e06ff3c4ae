package notify

import "context"

// Sink delivers human-readable order events. Delivery is best-effort:
// callers log failures and move on, there are no retries.
type Sink interface {
	Send(ctx context.Context, text string) error
}

// Nop is used when no notification channel is configured.
type Nop struct{}

func (Nop) Send(context.Context, string) error { return nil }
