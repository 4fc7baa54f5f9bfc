package commands

import "sync"

// OrderLocks serializes mutations per kitchen order: no two transitions for
// the same order run concurrently, while operations on different orders stay
// fully parallel. One instance is shared by every handler that mutates kitchen
// orders.
type OrderLocks struct {
	mu    sync.Mutex
	locks map[string]*orderLock
}

type orderLock struct {
	mu   sync.Mutex
	refs int
}

// NewOrderLocks creates an empty lock registry.
func NewOrderLocks() *OrderLocks {
	return &OrderLocks{locks: make(map[string]*orderLock)}
}

// Lock acquires the per-order lock and returns its release function.
// Entries are reference-counted and removed once the last holder releases,
// so the registry does not grow with order history.
func (l *OrderLocks) Lock(orderID string) func() {
	l.mu.Lock()
	entry, ok := l.locks[orderID]
	if !ok {
		entry = &orderLock{}
		l.locks[orderID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, orderID)
		}
		l.mu.Unlock()
	}
}
