package service

import (
	"log/slog"
	"sync"
	"time"
)

// Sink delivers one status text to the user, typically by editing a single chat
// message. Implemented by the telegram adapter.
type Sink interface {
	Update(text string) error
}

// StatusReporter is the progress-update surface the pipeline pushes into.
type StatusReporter interface {
	// Progress submits an intermediate status. Updates arriving faster than the
	// sink's rate limit are dropped, not queued; Progress never blocks on the
	// transport.
	Progress(text string)

	// Final delivers the terminal message. It is never throttled; a delivery
	// failure is logged and otherwise ignored.
	Final(text string)
}

// ThrottledReporter enforces a minimum interval between edits so the transport's
// rate limits are respected. The throttle is a property of this sink wrapper, not
// of whoever schedules the progress callbacks.
type ThrottledReporter struct {
	sink     Sink
	interval time.Duration
	logger   *slog.Logger

	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewThrottledReporter wraps a sink with the given minimum edit interval.
func NewThrottledReporter(sink Sink, interval time.Duration, logger *slog.Logger) *ThrottledReporter {
	return &ThrottledReporter{
		sink:     sink,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

var _ StatusReporter = (*ThrottledReporter)(nil)

func (r *ThrottledReporter) Progress(text string) {
	r.mu.Lock()
	now := r.now()
	if !r.last.IsZero() && now.Sub(r.last) < r.interval {
		r.mu.Unlock()
		return
	}
	r.last = now
	r.mu.Unlock()

	// Fire and forget: a slow or failing edit must not stall the transfer.
	go func() {
		if err := r.sink.Update(text); err != nil {
			r.logger.Warn("progress update failed", slog.String("error", err.Error()))
		}
	}()
}

func (r *ThrottledReporter) Final(text string) {
	if err := r.sink.Update(text); err != nil {
		r.logger.Warn("final update failed", slog.String("error", err.Error()))
	}
}
