package realtime

import (
	"context"
	"sync"

	"swasthsetu/internal/models/db_models"
)

// Broadcaster fans alerts out to live subscribers. Delivery is best effort:
// a subscriber that falls behind only ever sees the newest alert.
type Broadcaster interface {
	Publish(ctx context.Context, alert db_models.Alert) error
	Subscribe(ctx context.Context, filter func(db_models.Alert) bool) (*Subscription, error)
}

// Subscription buffers at most one alert; a newer alert replaces an
// undelivered older one.
type Subscription struct {
	ch     chan db_models.Alert
	done   chan struct{}
	filter func(db_models.Alert) bool

	mu      sync.Mutex
	closed  bool
	onClose func()
}

func newSubscription(filter func(db_models.Alert) bool, onClose func()) *Subscription {
	return &Subscription{
		ch:      make(chan db_models.Alert, 1),
		done:    make(chan struct{}),
		filter:  filter,
		onClose: onClose,
	}
}

func (s *Subscription) C() <-chan db_models.Alert { return s.ch }

func (s *Subscription) Done() <-chan struct{} { return s.done }

func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.done)
	onClose := s.onClose
	s.mu.Unlock()

	if onClose != nil {
		onClose()
	}
}

func (s *Subscription) offer(alert db_models.Alert) {
	if s.filter != nil && !s.filter(alert) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	for {
		select {
		case s.ch <- alert:
			return
		default:
		}
		// drop the stale alert
		select {
		case <-s.ch:
		default:
		}
	}
}

// closeOnDone ends sub when ctx is cancelled.
func closeOnDone(ctx context.Context, sub *Subscription) {
	go func() {
		select {
		case <-ctx.Done():
			sub.Close()
		case <-sub.done:
		}
	}()
}
