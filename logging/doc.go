/*
Package logging offers a client for emitting log entries from Tarmac WebAssembly
functions to the host runtime.

The Client interface has one method per level (Trace, Debug, Info, Warn,
Error). Entries below Config.Level are dropped inside the guest, so a quiet
logger costs no host call. Logging is best effort: host failures are ignored.
*/
package logging
