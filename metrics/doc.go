/*
Package metrics provides a client for creating custom metrics through the
Tarmac host runtime.

Counter and Histogram handles send protobuf payloads over waPC host calls.
Inc and Observe are best-effort and do not return errors; marshal or host-call
failures are swallowed so metrics never change the caller's control flow.
*/
package metrics
