/*
Package hostmock provides a pretend waPC host for tests.

It lets a test check exactly what a capability client sends to the host
without a real Tarmac runtime behind it: the namespace, capability and
function of each call, and the protobuf payload.

Quick start

	m, _ := hostmock.New(hostmock.Config{
	  ExpectedNamespace:  "tarmac",
	  ExpectedCapability: "kvstore",
	  ExpectedFunction:   "get",
	  PayloadValidator: func(p []byte) error {
	    // Unmarshal and assert fields here
	    return nil
	  },
	  Response: func() []byte { return okResponse },
	})

	client, _ := kv.New(kv.Config{HostCall: m.HostCall})

Behavior

  - Every call is recorded; Calls and CallCount expose the history.
  - If Fail is true, HostCall returns Error, or ErrOperationFailed when Error is nil.
  - Expected namespace, capability and function are enforced only when set.
  - PayloadValidator runs before Response; its error is returned as is.
  - Without a Response, HostCall returns nil bytes and a nil error.

Operations that need more than one host function, such as kv.Clear which
lists keys and then deletes them, can use a Router that picks a Mock by
function name.
*/
package hostmock
