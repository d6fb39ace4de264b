/*
Package mock provides a recording in-memory storage.Backend for tests.

Every primitive call is recorded, so tests can assert that a Storage operation
reached the backend exactly once and with the expected arguments. GetItem
results can be scripted per key, and any primitive can be made to fail.

	b := mock.New(mock.Config{})
	b.OnGetItem("name").Return(`{"first":"john","last":"smith"}`)
	b.OnGetItem("broken").Return("not: json")
	b.FailOn(mock.OpClear, errors.New("quota exceeded"))

	s, _ := storage.New(storage.Config{Backend: b})
	v, _ := s.Get("name")

	b.Count(mock.OpGetItem) // 1
*/
package mock
