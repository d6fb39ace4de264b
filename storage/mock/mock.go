package mock

import (
	"sync"

	"github.com/tarmac-project/localstorage/storage"
)

// Primitive names recorded in Call.Op.
const (
	OpGetItem    = "GetItem"
	OpSetItem    = "SetItem"
	OpRemoveItem = "RemoveItem"
	OpClear      = "Clear"
)

// Config configures the mock backend.
type Config struct {
	// Seed pre-populates the in-memory store with raw string values.
	Seed map[string]string
}

// Call records a primitive invoked on the backend.
type Call struct {
	Op    string
	Key   string
	Value string
}

type getStub struct {
	value string
	ok    bool
	err   error
}

// Backend is an in-memory storage.Backend that records every call and can be
// scripted per key.
type Backend struct {
	mu       sync.Mutex
	items    map[string]string
	getStubs map[string]getStub
	failures map[string]error
	calls    []Call
}

var _ storage.Backend = (*Backend)(nil)

// New creates a mock backend.
func New(cfg Config) *Backend {
	items := make(map[string]string, len(cfg.Seed))
	for k, v := range cfg.Seed {
		items[k] = v
	}
	return &Backend{
		items:    items,
		getStubs: make(map[string]getStub),
		failures: make(map[string]error),
	}
}

// GetStub scripts the result of GetItem for one key.
type GetStub struct {
	b   *Backend
	key string
}

// OnGetItem starts scripting GetItem for key. Scripted results take precedence
// over the in-memory store.
func (b *Backend) OnGetItem(key string) *GetStub {
	return &GetStub{b: b, key: key}
}

// Return makes GetItem report raw as the stored value.
func (s *GetStub) Return(raw string) *Backend {
	return s.set(getStub{value: raw, ok: true})
}

// Missing makes GetItem report the key as absent.
func (s *GetStub) Missing() *Backend {
	return s.set(getStub{})
}

// Error makes GetItem fail with err.
func (s *GetStub) Error(err error) *Backend {
	return s.set(getStub{err: err})
}

func (s *GetStub) set(st getStub) *Backend {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	s.b.getStubs[s.key] = st
	return s.b
}

// FailOn makes every call of op return err. A nil err removes the failure.
func (b *Backend) FailOn(op string, err error) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		delete(b.failures, op)
		return b
	}
	b.failures[op] = err
	return b
}

// Calls returns a copy of the recorded calls in order.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// Count reports how many times op was called.
func (b *Backend) Count(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Items returns a snapshot of the in-memory store.
func (b *Backend) Items() map[string]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]string, len(b.items))
	for k, v := range b.items {
		out[k] = v
	}
	return out
}

// Reset forgets recorded calls but keeps stored items and scripts.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
}

// begin records a call and returns the configured failure for it. Callers must hold mu.
func (b *Backend) begin(c Call) error {
	b.calls = append(b.calls, c)
	return b.failures[c.Op]
}

// GetItem implements storage.Backend.
func (b *Backend) GetItem(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.begin(Call{Op: OpGetItem, Key: key}); err != nil {
		return "", false, err
	}
	if st, ok := b.getStubs[key]; ok {
		return st.value, st.ok, st.err
	}
	v, ok := b.items[key]
	return v, ok, nil
}

// SetItem implements storage.Backend.
func (b *Backend) SetItem(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.begin(Call{Op: OpSetItem, Key: key, Value: value}); err != nil {
		return err
	}
	b.items[key] = value
	return nil
}

// RemoveItem implements storage.Backend.
func (b *Backend) RemoveItem(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.begin(Call{Op: OpRemoveItem, Key: key}); err != nil {
		return err
	}
	delete(b.items, key)
	return nil
}

// Clear implements storage.Backend.
func (b *Backend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.begin(Call{Op: OpClear}); err != nil {
		return err
	}
	b.items = make(map[string]string)
	return nil
}
