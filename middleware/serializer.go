package middleware

import (
	"context"
	"net/http"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// Serializer admits requests one at a time, in arrival order. At most one
// request's handler chain executes between its admission and its completion;
// no two handler bodies ever interleave.
type Serializer struct {
	mu      sync.Mutex
	active  bool
	waiters []chan struct{}
}

func NewSerializer() *Serializer {
	return &Serializer{}
}

// Handler wraps next so the whole router runs single-flight. The slot is
// released via defer, so a panicking handler cannot stall the queue. A waiter
// whose request context is cancelled while queued gives up its place.
func (s *Serializer) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logrus.WithFields(logrus.Fields{
			"request_id": ulid.Make().String(),
			"method":     r.Method,
			"path":       r.URL.Path,
		})

		if err := s.acquire(r.Context()); err != nil {
			log.WithError(err).Warn("Request abandoned while queued")
			return
		}
		defer s.release()

		log.Debug("Request admitted")
		next.ServeHTTP(w, r)
	})
}

func (s *Serializer) acquire(ctx context.Context) error {
	s.mu.Lock()
	if !s.active && len(s.waiters) == 0 {
		s.active = true
		s.mu.Unlock()
		return nil
	}

	ready := make(chan struct{})
	s.waiters = append(s.waiters, ready)
	s.mu.Unlock()

	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		s.abandon(ready)
		return ctx.Err()
	}
}

// abandon removes a cancelled waiter from the queue. If the waiter was
// already granted the slot in the meantime, the slot is handed on instead.
func (s *Serializer) abandon(ready chan struct{}) {
	s.mu.Lock()
	for i, waiter := range s.waiters {
		if waiter == ready {
			s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
			s.mu.Unlock()
			return
		}
	}
	s.mu.Unlock()
	s.release()
}

// release hands the slot to the head waiter, or marks it free. Waking the
// next waiter on its own goroutine lets the finishing response flush before
// the next handler body runs.
func (s *Serializer) release() {
	s.mu.Lock()
	if len(s.waiters) == 0 {
		s.active = false
		s.mu.Unlock()
		return
	}
	next := s.waiters[0]
	s.waiters = s.waiters[1:]
	s.mu.Unlock()
	close(next)
}
