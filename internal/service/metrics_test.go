package service

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filerelay/internal/model"
	"filerelay/internal/storage"
)

func TestMetrics_ObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	m.ObserveRun(model.Instant(&model.LinkSet{}), 250*time.Millisecond)
	m.ObserveRun(model.Fail(model.FailTooLarge, nil), time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.runs.WithLabelValues("instant_links", "")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.runs.WithLabelValues("failed", "too_large")))
}

func TestMetrics_ObserveTransferError(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	m.ObserveTransferError(&storage.TransferError{Kind: storage.ErrTimeout})
	m.ObserveTransferError(errors.New("plain"))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.transferErrors.WithLabelValues("timeout")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.transferErrors.WithLabelValues("other")))
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRun(model.HostedOutcome("u"), time.Second)
		m.ObserveTransferError(errors.New("x"))
	})
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}
