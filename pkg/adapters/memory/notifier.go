package memory

import (
	"context"
	"sync"
)

// Notifier collects error messages instead of showing them.
type Notifier struct {
	mu       sync.Mutex
	messages []string
}

// Error records msg.
func (n *Notifier) Error(ctx context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

// Messages returns the recorded messages.
func (n *Notifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.messages))
	copy(out, n.messages)
	return out
}
