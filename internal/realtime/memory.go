package realtime

import (
	"context"
	"sync"

	"swasthsetu/internal/models/db_models"
)

// MemoryHub delivers alerts to subscribers inside this process only.
type MemoryHub struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

func NewMemoryHub() *MemoryHub {
	return &MemoryHub{subs: make(map[*Subscription]struct{})}
}

func (h *MemoryHub) Publish(_ context.Context, alert db_models.Alert) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		sub.offer(alert)
	}
	return nil
}

func (h *MemoryHub) Subscribe(ctx context.Context, filter func(db_models.Alert) bool) (*Subscription, error) {
	var sub *Subscription
	sub = newSubscription(filter, func() {
		h.mu.Lock()
		delete(h.subs, sub)
		h.mu.Unlock()
	})

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	closeOnDone(ctx, sub)
	return sub, nil
}

func (h *MemoryHub) subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
