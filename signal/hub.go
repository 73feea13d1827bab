package signal

import (
	"sort"
	"sync"
)

// Listener receives the encoded session snapshot that accompanied a change
// notice. Listeners must not block: Emit invokes them synchronously on the
// emitting goroutine.
type Listener func(payload []byte)

// Hub fans a change notice out to every subscribed listener in the current
// process. Delivery is synchronous: Emit does not return until all listeners
// registered at the time of the call have run, in subscription order.
//
// Hub is safe for concurrent use. A listener may unsubscribe itself (or any
// other listener) during dispatch; the change takes effect on the next Emit.
type Hub struct {
	mu        sync.RWMutex
	next      uint64
	listeners map[uint64]Listener
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		listeners: make(map[uint64]Listener),
	}
}

// Subscribe registers fn and returns its unsubscribe function. Every
// subscription must be released when the owning component is torn down;
// the unsubscribe function is idempotent.
func (h *Hub) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}

	h.mu.Lock()
	id := h.next
	h.next++
	h.listeners[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners, id)
			h.mu.Unlock()
		})
	}
}

// Emit synchronously invokes every listener with payload. The listener set
// is snapshotted before dispatch so subscriptions changed mid-dispatch do
// not affect the current round.
func (h *Hub) Emit(payload []byte) {
	h.mu.RLock()
	ids := make([]uint64, 0, len(h.listeners))
	for id := range h.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	snapshot := make([]Listener, 0, len(ids))
	for _, id := range ids {
		snapshot = append(snapshot, h.listeners[id])
	}
	h.mu.RUnlock()

	for _, fn := range snapshot {
		fn(payload)
	}
}

// Len reports the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
