// Package tiles holds the hand-off point between the coverage refresher and
// the tile loader.
package tiles

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/globeview/internal/coverage"
	"github.com/Faultbox/globeview/internal/logger"
)

// Loader serves one coverage request. It runs on the Serve goroutine.
type Loader func(ctx context.Context, req coverage.Request) error

// Slot is a single-slot request queue. At most one request is queued or being
// loaded at a time; Busy reports true for that whole span, which is what lets
// the refresher skip cycles instead of piling up work.
type Slot struct {
	pending chan coverage.Request
	busy    atomic.Bool
	dropped atomic.Int64
	last    atomic.Pointer[coverage.Request]
}

// NewSlot creates an empty slot.
func NewSlot() *Slot {
	return &Slot{pending: make(chan coverage.Request, 1)}
}

// Busy reports whether a request is queued or in flight.
func (s *Slot) Busy() bool {
	return s.busy.Load()
}

// RequestCoverage offers req without blocking. It is dropped if the slot is
// already occupied.
func (s *Slot) RequestCoverage(req coverage.Request) {
	if !s.busy.CompareAndSwap(false, true) {
		s.dropped.Add(1)
		logger.Debug("coverage request dropped, slot busy", zap.Stringer("request", req))
		return
	}
	s.last.Store(&req)
	s.pending <- req
}

// Last returns the most recently accepted request.
func (s *Slot) Last() (coverage.Request, bool) {
	req := s.last.Load()
	if req == nil {
		return coverage.Request{}, false
	}
	return *req, true
}

// Dropped returns how many requests were rejected because the slot was full.
func (s *Slot) Dropped() int64 {
	return s.dropped.Load()
}

// Serve hands queued requests to load one at a time until ctx is cancelled.
// Loader errors are logged and do not stop the loop.
func (s *Slot) Serve(ctx context.Context, load Loader) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-s.pending:
			if err := load(ctx, req); err != nil {
				logger.Warn("coverage load failed",
					zap.Stringer("request", req),
					zap.Error(err),
				)
			}
			s.busy.Store(false)
		}
	}
}
