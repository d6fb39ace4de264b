package metrics

import (
	"errors"
	"reflect"
	"testing"

	proto "github.com/tarmac-project/protobuf-go/sdk/metrics"
	"github.com/tarmac-project/localstorage"
	"github.com/tarmac-project/localstorage/hostmock"
)

func TestNew(t *testing.T) {
	t.Parallel()

	customHostCall := func(string, string, string, []byte) ([]byte, error) {
		return nil, nil
	}

	tt := []struct {
		name        string
		namespace   string
		hostCall    localstorage.HostCall
		wantNS      string
		wantHostPtr uintptr
	}{
		{
			name:      "custom namespace",
			namespace: "custom",
			wantNS:    "custom",
		},
		{
			name:        "default namespace with override",
			hostCall:    customHostCall,
			wantNS:      localstorage.DefaultNamespace,
			wantHostPtr: reflect.ValueOf(customHostCall).Pointer(),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c, err := New(Config{SDKConfig: localstorage.RuntimeConfig{Namespace: tc.namespace}, HostCall: tc.hostCall})
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			if c.runtime.Namespace != tc.wantNS {
				t.Fatalf("namespace mismatch: want %q, got %q", tc.wantNS, c.runtime.Namespace)
			}
			if tc.wantHostPtr != 0 {
				if got := reflect.ValueOf(c.hostCall).Pointer(); got != tc.wantHostPtr {
					t.Fatalf("hostcall pointer mismatch: want %v, got %v", tc.wantHostPtr, got)
				}
			}
		})
	}
}

func TestMetricConstructors(t *testing.T) {
	t.Parallel()

	c, _ := New(Config{HostCall: func(string, string, string, []byte) ([]byte, error) { return nil, nil }})

	tt := []struct {
		name        string
		constructor func(string) error
		metricName  string
		wantErr     error
	}{
		{
			name: "counter valid",
			constructor: func(name string) error {
				_, err := c.NewCounter(name)
				return err
			},
			metricName: "storage_get_total",
		},
		{
			name: "histogram valid",
			constructor: func(name string) error {
				_, err := c.NewHistogram(name)
				return err
			},
			metricName: "storage_op_duration_seconds",
		},
		{
			name: "counter empty name",
			constructor: func(name string) error {
				_, err := c.NewCounter(name)
				return err
			},
			metricName: "",
			wantErr:    ErrInvalidMetricName,
		},
		{
			name: "histogram whitespace name",
			constructor: func(name string) error {
				_, err := c.NewHistogram(name)
				return err
			},
			metricName: " \n\t ",
			wantErr:    ErrInvalidMetricName,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := tc.constructor(tc.metricName); !errors.Is(err, tc.wantErr) {
				t.Fatalf("unexpected error: want %v got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCounterInc(t *testing.T) {
	t.Parallel()

	mock, _ := hostmock.New(hostmock.Config{
		ExpectedNamespace:  localstorage.DefaultNamespace,
		ExpectedCapability: capabilityName,
		ExpectedFunction:   fnCounter,
		PayloadValidator: func(payload []byte) error {
			var req proto.MetricsCounter
			if err := req.UnmarshalVT(payload); err != nil {
				return err
			}
			if req.GetName() != "storage_get_total" {
				return errors.New("metric name mismatch")
			}
			return nil
		},
	})

	c, _ := New(Config{HostCall: mock.HostCall})
	counter, err := c.NewCounter("storage_get_total")
	if err != nil {
		t.Fatalf("NewCounter returned error: %v", err)
	}

	counter.Inc()
	counter.Inc()

	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 host calls, got %d", mock.CallCount())
	}
}

func TestHistogramObserve(t *testing.T) {
	t.Parallel()

	var observed float64
	mock, _ := hostmock.New(hostmock.Config{
		ExpectedCapability: capabilityName,
		ExpectedFunction:   fnHistogram,
		PayloadValidator: func(payload []byte) error {
			var req proto.MetricsHistogram
			if err := req.UnmarshalVT(payload); err != nil {
				return err
			}
			observed = req.GetValue()
			return nil
		},
	})

	c, _ := New(Config{HostCall: mock.HostCall})
	h, err := c.NewHistogram("storage_op_duration_seconds")
	if err != nil {
		t.Fatalf("NewHistogram returned error: %v", err)
	}

	h.Observe(0.25)

	if observed != 0.25 {
		t.Fatalf("expected observed value 0.25, got %v", observed)
	}
}

func TestHostFailureDoesNotPanic(t *testing.T) {
	t.Parallel()

	mock, _ := hostmock.New(hostmock.Config{Fail: true, Error: errors.New("host failure should not panic")})
	c, _ := New(Config{HostCall: mock.HostCall})

	counter, _ := c.NewCounter("storage_errors_total")
	counter.Inc()

	h, _ := c.NewHistogram("storage_op_duration_seconds")
	h.Observe(1)

	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 host calls, got %d", mock.CallCount())
	}
}
