/*
Package mock provides an in-memory implementation of the kv.KV interface.

It can be pre-seeded with data, configured with per-operation overrides, and it
records calls for assertions in tests.

	m := mock.New(mock.Config{Seed: map[string][]byte{"a": []byte("1")}})
	m.OnGet("missing").ReturnError(kv.ErrKeyNotFound)
	m.OnClear().ReturnError(errors.New("host unavailable"))

	for _, c := range m.Calls() {
		// c.Op, c.Key, c.Value
	}
*/
package mock
