/*
Package kv provides a client for the Tarmac key-value capability from
WebAssembly guest functions.

The client serializes requests with the Tarmac protobufs, forwards them to the
host with waPC, and maps the host status onto sentinel errors. Zero-value
Config options fall back to localstorage.DefaultNamespace and wapc.HostCall.

Construct a Client with New, then call Set, Get, Delete, Keys and Clear. The
host has no bulk delete, so Clear lists keys and deletes them one by one.

Tests can inject host behaviour with Config.HostCall (see the hostmock
package) or swap the whole client for the in-memory kv/mock implementation.
*/
package kv
