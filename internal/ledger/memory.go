package ledger

import (
	"context"
	"sync"

	"github.com/aeiptv/salesbot/internal/order"
)

// MemoryLedger keeps orders in process memory. Suitable for development and
// tests; everything is lost on restart.
type MemoryLedger struct {
	mu     sync.Mutex
	orders []order.Order
}

// NewMemory returns an empty in-memory ledger.
func NewMemory() *MemoryLedger {
	return &MemoryLedger{}
}

// Append stores a copy of the order.
func (l *MemoryLedger) Append(_ context.Context, ord order.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.orders = append(l.orders, ord)
	return nil
}

// Orders returns a snapshot of everything appended so far.
func (l *MemoryLedger) Orders() []order.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]order.Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// Close is a no-op.
func (l *MemoryLedger) Close() error { return nil }
