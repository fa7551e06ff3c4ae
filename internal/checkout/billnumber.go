package checkout

import (
	"fmt"
	"sync"
	"time"
)

// billClock issues monotonic-time bill numbers. Two submissions in the
// same millisecond get consecutive tokens.
type billClock struct {
	mu   sync.Mutex
	last int64
}

func (c *billClock) next() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixMilli()
	if now <= c.last {
		now = c.last + 1
	}
	c.last = now
	return fmt.Sprintf("TRX%d", now)
}
