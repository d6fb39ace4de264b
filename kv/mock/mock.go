package mock

import (
	"sort"
	"sync"

	"github.com/tarmac-project/localstorage/kv"
)

// Operation names recorded in Call.Op.
const (
	OpGet    = "GET"
	OpSet    = "SET"
	OpDelete = "DELETE"
	OpKeys   = "KEYS"
	OpClear  = "CLEAR"
)

// Config configures the mock client.
type Config struct {
	// Seed pre-populates the in-memory store.
	Seed map[string][]byte
}

// Call records an operation performed against the mock.
type Call struct {
	Op    string
	Key   string
	Value []byte
}

// override is a scripted outcome for one operation and key.
type override struct {
	value   []byte
	keys    []string
	err     error
	hasKeys bool
}

type target struct {
	op  string
	key string
}

// Client implements kv.KV for tests.
type Client struct {
	mu        sync.Mutex
	store     map[string][]byte
	overrides map[target]override
	calls     []Call
}

// Ensure Client satisfies kv.KV at compile time.
var _ kv.KV = (*Client)(nil)

// New creates a new mock KV client.
func New(cfg Config) *Client {
	st := make(map[string][]byte, len(cfg.Seed))
	for k, v := range cfg.Seed {
		st[k] = append([]byte(nil), v...)
	}
	return &Client{
		store:     st,
		overrides: make(map[target]override),
	}
}

// Override configures the outcome of a single operation.
type Override struct {
	m *Client
	t target
}

// OnGet configures a GET response for key.
func (m *Client) OnGet(key string) *Override { return &Override{m: m, t: target{OpGet, key}} }

// OnSet configures a SET response for key.
func (m *Client) OnSet(key string) *Override { return &Override{m: m, t: target{OpSet, key}} }

// OnDelete configures a DELETE response for key.
func (m *Client) OnDelete(key string) *Override { return &Override{m: m, t: target{OpDelete, key}} }

// OnKeys configures the KEYS response.
func (m *Client) OnKeys() *Override { return &Override{m: m, t: target{op: OpKeys}} }

// OnClear configures the CLEAR response.
func (m *Client) OnClear() *Override { return &Override{m: m, t: target{op: OpClear}} }

// ReturnValue sets the bytes returned by GET.
func (o *Override) ReturnValue(v []byte) *Override {
	o.update(func(r *override) { r.value = append([]byte(nil), v...) })
	return o
}

// ReturnKeys sets the keys returned by KEYS.
func (o *Override) ReturnKeys(keys []string) *Override {
	o.update(func(r *override) {
		r.keys = append([]string(nil), keys...)
		r.hasKeys = true
	})
	return o
}

// ReturnError makes the operation fail with err. The store is left untouched.
func (o *Override) ReturnError(err error) *Client {
	o.update(func(r *override) { r.err = err })
	return o.m
}

func (o *Override) update(fn func(*override)) {
	o.m.mu.Lock()
	defer o.m.mu.Unlock()
	r := o.m.overrides[o.t]
	fn(&r)
	o.m.overrides[o.t] = r
}

// Calls returns a copy of the recorded operations in order.
func (m *Client) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// Count reports how many times op was called.
func (m *Client) Count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// lookup records the call and returns any override for it. Callers must hold mu.
func (m *Client) lookup(c Call) (override, bool) {
	m.calls = append(m.calls, c)
	r, ok := m.overrides[target{c.Op, c.Key}]
	return r, ok
}

// Get implements kv.KV.
func (m *Client) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.lookup(Call{Op: OpGet, Key: key})
	if key == "" {
		return nil, kv.ErrInvalidKey
	}
	if ok {
		if r.err != nil {
			return nil, r.err
		}
		return append([]byte(nil), r.value...), nil
	}

	v, found := m.store[key]
	if !found {
		return nil, kv.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set implements kv.KV.
func (m *Client) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.lookup(Call{Op: OpSet, Key: key, Value: append([]byte(nil), value...)})
	if key == "" {
		return kv.ErrInvalidKey
	}
	if value == nil {
		return kv.ErrInvalidValue
	}
	if ok && r.err != nil {
		return r.err
	}
	m.store[key] = append([]byte(nil), value...)
	return nil
}

// Delete implements kv.KV.
func (m *Client) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.lookup(Call{Op: OpDelete, Key: key})
	if key == "" {
		return kv.ErrInvalidKey
	}
	if ok && r.err != nil {
		return r.err
	}
	if _, found := m.store[key]; !found {
		return kv.ErrKeyNotFound
	}
	delete(m.store, key)
	return nil
}

// Keys implements kv.KV. Keys are returned sorted.
func (m *Client) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.lookup(Call{Op: OpKeys}); ok {
		if r.err != nil {
			return nil, r.err
		}
		if r.hasKeys {
			return append([]string(nil), r.keys...), nil
		}
	}

	keys := make([]string, 0, len(m.store))
	for k := range m.store {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Clear implements kv.KV.
func (m *Client) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.lookup(Call{Op: OpClear}); ok && r.err != nil {
		return r.err
	}
	m.store = make(map[string][]byte)
	return nil
}

// Close implements kv.KV.
func (m *Client) Close() error { return nil }
