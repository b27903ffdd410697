package service_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"filerelay/internal/service"
	svcMocks "filerelay/internal/service/mocks"
)

func TestThrottledReporter_DropsFastUpdates(t *testing.T) {
	sink := &svcMocks.RecordingSink{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := service.NewThrottledReporter(sink, 3*time.Second, logger)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	r.SetNow(func() time.Time { return base })

	r.Progress("first")

	// Inside the interval: dropped, not queued.
	r.SetNow(func() time.Time { return base.Add(time.Second) })
	r.Progress("too fast")
	r.SetNow(func() time.Time { return base.Add(2 * time.Second) })
	r.Progress("still too fast")

	// At the interval boundary the next update goes through.
	r.SetNow(func() time.Time { return base.Add(3 * time.Second) })
	r.Progress("second")

	assert.Eventually(t, func() bool {
		return len(sink.All()) == 2
	}, time.Second, 10*time.Millisecond)

	delivered := sink.All()
	assert.Equal(t, []string{"first", "second"}, delivered)
}

func TestThrottledReporter_FinalAlwaysDelivered(t *testing.T) {
	sink := &svcMocks.RecordingSink{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := service.NewThrottledReporter(sink, 3*time.Second, logger)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	r.SetNow(func() time.Time { return base })

	r.Progress("progress")
	// Final ignores the throttle entirely.
	r.Final("done")

	assert.Eventually(t, func() bool {
		return len(sink.All()) == 2
	}, time.Second, 10*time.Millisecond)
	assert.Contains(t, sink.All(), "done")
}

func TestThrottledReporter_FinalErrorIsSwallowed(t *testing.T) {
	sink := new(svcMocks.MockSink)
	sink.On("Update", "done").Return(errors.New("edit failed"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := service.NewThrottledReporter(sink, 3*time.Second, logger)

	assert.NotPanics(t, func() { r.Final("done") })
	sink.AssertExpectations(t)
}
