package metrics

import (
	"errors"
	"regexp"

	proto "github.com/tarmac-project/protobuf-go/sdk/metrics"
	"github.com/tarmac-project/localstorage"
	wapc "github.com/wapc/wapc-guest-tinygo"
)

const (
	capabilityName = "metrics"
	fnCounter      = "counter"
	fnHistogram    = "histogram"
)

var (
	// ErrInvalidMetricName indicates a metric name that does not match the supported format.
	ErrInvalidMetricName = errors.New("metric name is invalid")

	isMetricNameValid = regexp.MustCompile(`^[a-zA-Z0-9_:][a-zA-Z0-9_:]*$`)
)

// Client defines the metrics capability interface.
type Client interface {
	// NewCounter creates a named counter metric handle.
	NewCounter(name string) (*Counter, error)

	// NewHistogram creates a named histogram metric handle.
	NewHistogram(name string) (*Histogram, error)
}

// Config controls how a Client instance interacts with the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig localstorage.RuntimeConfig

	// HostCall overrides the waPC host function used for metrics operations.
	HostCall localstorage.HostCall
}

// HostMetrics is the metrics capability client implementation.
type HostMetrics struct {
	runtime  localstorage.RuntimeConfig
	hostCall localstorage.HostCall
}

var _ Client = (*HostMetrics)(nil)

// metric is the state shared by every handle type.
type metric struct {
	name      string
	namespace string
	hostCall  localstorage.HostCall
}

// emit sends a payload to the host as a best-effort call.
func (m metric) emit(fn string, payload []byte, err error) {
	if err != nil {
		return
	}
	_, _ = m.hostCall(m.namespace, capabilityName, fn, payload)
}

// Counter is a named counter metric handle.
type Counter struct{ metric }

// Histogram is a named histogram metric handle.
type Histogram struct{ metric }

// New creates a metrics client with namespace defaults and optional host-call override.
func New(config Config) (*HostMetrics, error) {
	hostCall := config.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	return &HostMetrics{runtime: config.SDKConfig.WithDefaults(), hostCall: hostCall}, nil
}

func (c *HostMetrics) handle(name string) (metric, error) {
	if !isMetricNameValid.MatchString(name) {
		return metric{}, ErrInvalidMetricName
	}
	return metric{name: name, namespace: c.runtime.Namespace, hostCall: c.hostCall}, nil
}

// NewCounter creates a named counter metric handle.
func (c *HostMetrics) NewCounter(name string) (*Counter, error) {
	m, err := c.handle(name)
	if err != nil {
		return nil, err
	}
	return &Counter{m}, nil
}

// NewHistogram creates a named histogram metric handle.
func (c *HostMetrics) NewHistogram(name string) (*Histogram, error) {
	m, err := c.handle(name)
	if err != nil {
		return nil, err
	}
	return &Histogram{m}, nil
}

// Inc increments the counter by one.
func (c *Counter) Inc() {
	payload, err := (&proto.MetricsCounter{Name: c.name}).MarshalVT()
	c.emit(fnCounter, payload, err)
}

// Observe records a value for the histogram.
func (h *Histogram) Observe(value float64) {
	payload, err := (&proto.MetricsHistogram{Name: h.name, Value: value}).MarshalVT()
	h.emit(fnHistogram, payload, err)
}
