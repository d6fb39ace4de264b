package storage

import (
	"errors"

	"github.com/tarmac-project/localstorage/kv"
)

// Backend is the host-provided string store that Storage wraps. Each Storage
// operation maps to exactly one call of the matching primitive.
type Backend interface {
	// GetItem returns the raw value for key. ok is false when the key is absent.
	GetItem(key string) (value string, ok bool, err error)

	// SetItem stores value under key.
	SetItem(key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(key string) error

	// Clear deletes every key in the store.
	Clear() error
}

// kvBackend exposes a kv.KV capability client as a Backend.
type kvBackend struct {
	client kv.KV
}

var _ Backend = (*kvBackend)(nil)

// NewKVBackend adapts a Tarmac key-value client to the Backend interface.
// kv.ErrKeyNotFound is reported as an absent entry by GetItem and ignored by
// RemoveItem.
func NewKVBackend(client kv.KV) Backend {
	return &kvBackend{client: client}
}

func (b *kvBackend) GetItem(key string) (string, bool, error) {
	v, err := b.client.Get(key)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(v), true, nil
}

func (b *kvBackend) SetItem(key, value string) error {
	return b.client.Set(key, []byte(value))
}

func (b *kvBackend) RemoveItem(key string) error {
	if err := b.client.Delete(key); err != nil && !errors.Is(err, kv.ErrKeyNotFound) {
		return err
	}
	return nil
}

func (b *kvBackend) Clear() error {
	return b.client.Clear()
}
