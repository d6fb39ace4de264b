/*
Package localstorage holds the runtime configuration and host errors shared by
the capability clients in this module.

Guest functions usually reach for the storage package, which keeps JSON values
in the host key-value store:

	s, err := storage.New(storage.Config{})
	if err != nil {
		return err
	}
	_ = s.Set("name", map[string]string{"first": "john", "last": "smith"})
	v, _ := s.Get("name")

RuntimeConfig scopes host calls to a namespace. A zero value falls back to
DefaultNamespace, and LoadRuntimeConfig reads TARMAC_NAMESPACE from the
environment.
*/
package localstorage
