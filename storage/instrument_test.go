package storage_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	proto "github.com/tarmac-project/protobuf-go/sdk/metrics"
	"github.com/tarmac-project/localstorage/hostmock"
	"github.com/tarmac-project/localstorage/metrics"
	"github.com/tarmac-project/localstorage/storage"
	"github.com/tarmac-project/localstorage/storage/mock"
)

func newMetricsHost(t *testing.T) (*hostmock.Router, metrics.Client) {
	t.Helper()
	router, err := hostmock.NewRouter(map[string]hostmock.Config{
		"counter":   {ExpectedCapability: "metrics"},
		"histogram": {ExpectedCapability: "metrics"},
	})
	require.NoError(t, err)

	client, err := metrics.New(metrics.Config{HostCall: router.HostCall})
	require.NoError(t, err)
	return router, client
}

// counted decodes the counter names sent to the host, in order.
func counted(t *testing.T, router *hostmock.Router) []string {
	t.Helper()
	var names []string
	for _, c := range router.Mock("counter").Calls() {
		var m proto.MetricsCounter
		require.NoError(t, m.UnmarshalVT(c.Payload))
		names = append(names, m.GetName())
	}
	return names
}

func TestInstrument(t *testing.T) {
	tt := []struct {
		name   string
		metric string
		call   func(storage.Backend) error
	}{
		{"GetItem", storage.MetricGetTotal, func(b storage.Backend) error { _, _, err := b.GetItem("k"); return err }},
		{"SetItem", storage.MetricSetTotal, func(b storage.Backend) error { return b.SetItem("k", "1") }},
		{"RemoveItem", storage.MetricRemoveTotal, func(b storage.Backend) error { return b.RemoveItem("k") }},
		{"Clear", storage.MetricClearTotal, func(b storage.Backend) error { return b.Clear() }},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			router, client := newMetricsHost(t)
			inner := mock.New(mock.Config{})
			b, err := storage.Instrument(inner, client)
			require.NoError(t, err)

			require.NoError(t, tc.call(b))

			assert.Len(t, inner.Calls(), 1)
			assert.Equal(t, []string{tc.metric}, counted(t, router))
			assert.Equal(t, 1, router.Mock("histogram").CallCount())
		})
	}
}

func TestInstrument_Failures(t *testing.T) {
	errQuota := errors.New("quota exceeded")
	router, client := newMetricsHost(t)
	inner := mock.New(mock.Config{}).FailOn(mock.OpSetItem, errQuota)

	b, err := storage.Instrument(inner, client)
	require.NoError(t, err)

	err = b.SetItem("k", "1")
	assert.Same(t, errQuota, err)
	assert.Equal(t, []string{storage.MetricSetTotal, storage.MetricErrorsTotal}, counted(t, router))
}

func TestInstrument_PassesResultsThrough(t *testing.T) {
	_, client := newMetricsHost(t)
	inner := mock.New(mock.Config{Seed: map[string]string{"name": payloadJSON}})
	b, err := storage.Instrument(inner, client)
	require.NoError(t, err)

	v, ok, err := b.GetItem("name")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payloadJSON, v)

	_, ok, err = b.GetItem("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_WithMetrics(t *testing.T) {
	router, client := newMetricsHost(t)
	inner := mock.New(mock.Config{})

	s, err := storage.New(storage.Config{Backend: inner, Metrics: client})
	require.NoError(t, err)

	require.NoError(t, s.Set("name", payload))
	v, err := s.Get("name")
	require.NoError(t, err)
	assert.Equal(t, payload, v)
	require.NoError(t, s.Remove("name"))
	require.NoError(t, s.Clear())

	assert.Equal(t, []string{
		storage.MetricSetTotal,
		storage.MetricGetTotal,
		storage.MetricRemoveTotal,
		storage.MetricClearTotal,
	}, counted(t, router))
	assert.Len(t, inner.Calls(), 4)
}
