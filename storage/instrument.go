package storage

import (
	"time"

	"github.com/tarmac-project/localstorage/metrics"
)

// Metric names emitted by an instrumented backend.
const (
	MetricGetTotal    = "storage_get_total"
	MetricSetTotal    = "storage_set_total"
	MetricRemoveTotal = "storage_remove_total"
	MetricClearTotal  = "storage_clear_total"
	MetricErrorsTotal = "storage_errors_total"
	MetricDuration    = "storage_op_duration_seconds"
)

type instrumented struct {
	next Backend

	gets     *metrics.Counter
	sets     *metrics.Counter
	removes  *metrics.Counter
	clears   *metrics.Counter
	failures *metrics.Counter
	duration *metrics.Histogram
}

var _ Backend = (*instrumented)(nil)

// Instrument wraps next so every primitive increments a counter and records
// its latency through the host metrics capability. Results from next are
// returned unchanged.
func Instrument(next Backend, client metrics.Client) (Backend, error) {
	in := &instrumented{next: next}

	counters := []struct {
		name string
		dst  **metrics.Counter
	}{
		{MetricGetTotal, &in.gets},
		{MetricSetTotal, &in.sets},
		{MetricRemoveTotal, &in.removes},
		{MetricClearTotal, &in.clears},
		{MetricErrorsTotal, &in.failures},
	}
	for _, c := range counters {
		counter, err := client.NewCounter(c.name)
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}

	h, err := client.NewHistogram(MetricDuration)
	if err != nil {
		return nil, err
	}
	in.duration = h

	return in, nil
}

func (in *instrumented) observe(counter *metrics.Counter, start time.Time, err error) {
	counter.Inc()
	in.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		in.failures.Inc()
	}
}

func (in *instrumented) GetItem(key string) (string, bool, error) {
	start := time.Now()
	v, ok, err := in.next.GetItem(key)
	in.observe(in.gets, start, err)
	return v, ok, err
}

func (in *instrumented) SetItem(key, value string) error {
	start := time.Now()
	err := in.next.SetItem(key, value)
	in.observe(in.sets, start, err)
	return err
}

func (in *instrumented) RemoveItem(key string) error {
	start := time.Now()
	err := in.next.RemoveItem(key)
	in.observe(in.removes, start, err)
	return err
}

func (in *instrumented) Clear() error {
	start := time.Now()
	err := in.next.Clear()
	in.observe(in.clears, start, err)
	return err
}
