// Package storage keeps JSON values in the Tarmac host key-value store.
//
// A Storage wraps a [Backend], a plain string store with four primitives
// (GetItem, SetItem, RemoveItem, Clear), and adds JSON encoding on the way in
// and decoding on the way out. Reads never fail because of stored data: a
// missing key and a value that is not valid JSON both come back as nil.
//
// # Basic Usage
//
//	s, err := storage.New(storage.Config{})
//	if err != nil {
//		return err
//	}
//
//	_ = s.Set("name", map[string]string{"first": "john", "last": "smith"})
//
//	v, _ := s.Get("name") // map[string]any{"first": "john", "last": "smith"}
//
// # Typed Reads
//
// Get decodes into generic JSON shapes. Use GetInto or GetAs to decode into a
// concrete type:
//
//	type Name struct {
//		First string `json:"first"`
//		Last  string `json:"last"`
//	}
//
//	n, ok, err := storage.GetAs[Name](s, "name")
//
// # Backends
//
// With a zero Config, Storage talks to the host through the kv package.
// Tests pass their own Backend, usually the recording one from storage/mock.
// Instrument wraps any Backend with host metrics.
package storage
