package storage

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/tarmac-project/localstorage"
	"github.com/tarmac-project/localstorage/kv"
	"github.com/tarmac-project/localstorage/logging"
	"github.com/tarmac-project/localstorage/metrics"
)

// Config controls how a Storage instance reaches its backend.
type Config struct {
	// SDKConfig provides the runtime namespace used when Storage creates its
	// own host KV client.
	SDKConfig localstorage.RuntimeConfig

	// HostCall overrides the waPC host function for the default KV client.
	HostCall localstorage.HostCall

	// Backend replaces the host KV store. When nil, Storage talks to the
	// Tarmac kvstore capability.
	Backend Backend

	// Logger, when set, receives a debug entry for every stored value that
	// could not be decoded and a warning for every value that could not be
	// encoded.
	Logger logging.Client

	// Metrics, when set, wraps the backend with Instrument.
	Metrics metrics.Client
}

// State describes what a Lookup found under a key.
type State int

const (
	// Absent means the backend holds no entry for the key.
	Absent State = iota
	// Present means the entry held valid JSON.
	Present
	// Malformed means an entry exists but is not valid JSON.
	Malformed
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Malformed:
		return "malformed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Entry is the result of a Lookup.
type Entry struct {
	Key   string
	Value any
	State State
}

// Storage keeps JSON encoded values in a string key-value Backend.
type Storage struct {
	backend Backend
	logger  logging.Client
}

// New creates a Storage. Without an explicit Backend it builds a kv client
// for the host store using SDKConfig and HostCall.
func New(cfg Config) (*Storage, error) {
	backend := cfg.Backend
	if backend == nil {
		client, err := kv.New(kv.Config{SDKConfig: cfg.SDKConfig, HostCall: cfg.HostCall})
		if err != nil {
			return nil, fmt.Errorf("create kv client: %w", err)
		}
		backend = NewKVBackend(client)
	}

	if cfg.Metrics != nil {
		instrumented, err := Instrument(backend, cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("instrument backend: %w", err)
		}
		backend = instrumented
	}

	return &Storage{backend: backend, logger: cfg.Logger}, nil
}

// Get returns the decoded value stored under key. Missing keys and values that
// are not valid JSON both yield nil with no error; only backend failures are
// returned. Objects decode to map[string]any, arrays to []any and numbers to
// float64.
func (s *Storage) Get(key string) (any, error) {
	e, err := s.Lookup(key)
	if err != nil {
		return nil, err
	}
	return e.Value, nil
}

// Lookup is Get with the outcome spelled out, so callers can tell a missing
// entry from a corrupt one.
func (s *Storage) Lookup(key string) (Entry, error) {
	raw, ok, err := s.backend.GetItem(key)
	if err != nil {
		return Entry{Key: key}, err
	}
	if !ok {
		return Entry{Key: key, State: Absent}, nil
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.discard(key, err)
		return Entry{Key: key, State: Malformed}, nil
	}
	return Entry{Key: key, Value: v, State: Present}, nil
}

// GetInto decodes the value stored under key into target, which must be a
// non-nil pointer. It reports false, leaving target untouched, when the entry
// is missing or cannot be decoded into target's type. On success target is
// replaced, not merged.
func (s *Storage) GetInto(key string, target any) (bool, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false, ErrInvalidTarget
	}

	raw, ok, err := s.backend.GetItem(key)
	if err != nil || !ok {
		return false, err
	}

	fresh := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal([]byte(raw), fresh.Interface()); err != nil {
		s.discard(key, err)
		return false, nil
	}
	rv.Elem().Set(fresh.Elem())
	return true, nil
}

// GetAs is the generic form of GetInto. It returns the zero value of T when
// the entry is missing or cannot be decoded.
func GetAs[T any](s *Storage, key string) (T, bool, error) {
	var v T
	ok, err := s.GetInto(key, &v)
	return v, ok, err
}

// Set encodes value with encoding/json and stores it under key. Values the
// encoder rejects produce a *SerializationError and nothing is written.
func (s *Storage) Set(key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn(fmt.Sprintf("storage: cannot encode value for key %q: %v", key, err))
		}
		return &SerializationError{Key: key, Err: err}
	}
	return s.backend.SetItem(key, string(b))
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Storage) Remove(key string) error {
	return s.backend.RemoveItem(key)
}

// Clear deletes every entry in the backend, including ones Storage did not write.
func (s *Storage) Clear() error {
	return s.backend.Clear()
}

func (s *Storage) discard(key string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Debug(fmt.Sprintf("storage: ignoring undecodable value for key %q: %v", key, err))
}
