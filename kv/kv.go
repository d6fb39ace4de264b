package kv

import (
	"errors"
	"fmt"

	sdkproto "github.com/tarmac-project/protobuf-go/sdk"
	proto "github.com/tarmac-project/protobuf-go/sdk/kvstore"
	"github.com/tarmac-project/localstorage"
	wapc "github.com/wapc/wapc-guest-tinygo"
)

const (
	capabilityName = "kvstore"
	fnGet          = "get"
	fnSet          = "set"
	fnDelete       = "delete"
	fnKeys         = "keys"

	hostStatusOK       = int32(200)
	hostStatusPartial  = int32(206)
	hostStatusBadInput = int32(400)
	hostStatusMissing  = int32(404)
	hostStatusError    = int32(500)
)

// KV is the key-value capability exposed by the Tarmac host.
type KV interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Missing keys are reported as ErrKeyNotFound.
	Delete(key string) error

	// Keys lists every key held by the host store.
	Keys() ([]string, error)

	// Clear removes every key held by the host store.
	Clear() error

	// Close releases resources held by the client.
	Close() error
}

// Config controls how a Client instance interacts with the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig localstorage.RuntimeConfig

	// HostCall overrides the waPC host function used for KV operations.
	HostCall localstorage.HostCall
}

var (
	// ErrInvalidKey is returned for empty keys; no host call is made.
	ErrInvalidKey = errors.New("key is invalid")

	// ErrInvalidValue is returned when Set receives a nil value.
	ErrInvalidValue = errors.New("value is invalid")

	// ErrKeyNotFound means the host has no entry for the key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrMarshalRequest wraps failures while encoding the request payload.
	ErrMarshalRequest = errors.New("failed to marshal request")

	// ErrHostCall, ErrHostResponseInvalid and ErrHostError mirror the shared
	// host errors so callers only need to import this package.
	ErrHostCall            = localstorage.ErrHostCall
	ErrHostResponseInvalid = localstorage.ErrHostResponseInvalid
	ErrHostError           = localstorage.ErrHostError
)

// Client implements KV over waPC host calls.
type Client struct {
	runtime  localstorage.RuntimeConfig
	hostCall localstorage.HostCall
}

// Ensure Client satisfies the KV interface at compile time.
var _ KV = (*Client)(nil)

// request is a protobuf message that can encode itself.
type request interface {
	MarshalVT() ([]byte, error)
}

// response is a protobuf message carrying a host status.
type response interface {
	UnmarshalVT([]byte) error
	GetStatus() *sdkproto.Status
}

// New creates a KV client. Zero-value config fields fall back to
// localstorage.DefaultNamespace and wapc.HostCall.
func New(config Config) (*Client, error) {
	hostCall := config.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	return &Client{runtime: config.SDKConfig.WithDefaults(), hostCall: hostCall}, nil
}

// Get retrieves the value stored under key.
func (c *Client) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	var resp proto.KVStoreGetResponse
	if err := c.call(fnGet, &proto.KVStoreGet{Key: key}, &resp); err != nil {
		return nil, err
	}
	return resp.GetData(), nil
}

// Set stores value under key.
func (c *Client) Set(key string, value []byte) error {
	if key == "" {
		return ErrInvalidKey
	}
	if value == nil {
		return ErrInvalidValue
	}

	var resp proto.KVStoreSetResponse
	return c.call(fnSet, &proto.KVStoreSet{Key: key, Data: value}, &resp)
}

// Delete removes key from the host store.
func (c *Client) Delete(key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	var resp proto.KVStoreDeleteResponse
	return c.call(fnDelete, &proto.KVStoreDelete{Key: key}, &resp)
}

// Keys lists the keys held by the host store.
func (c *Client) Keys() ([]string, error) {
	var resp proto.KVStoreKeysResponse
	if err := c.call(fnKeys, &proto.KVStoreKeys{}, &resp); err != nil {
		return nil, err
	}
	return resp.GetKeys(), nil
}

// Clear deletes every key the host reports. The host has no bulk delete, so
// this lists keys and removes them one at a time; keys deleted concurrently by
// someone else are skipped.
func (c *Client) Clear() error {
	keys, err := c.Keys()
	if err != nil {
		return err
	}

	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := c.Delete(key); err != nil && !errors.Is(err, ErrKeyNotFound) {
			return fmt.Errorf("clear %q: %w", key, err)
		}
	}
	return nil
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	return nil
}

// call marshals req, invokes the host function and decodes the reply into
// resp, translating the host status into an error.
func (c *Client) call(fn string, req request, resp response) error {
	b, err := req.MarshalVT()
	if err != nil {
		return errors.Join(ErrMarshalRequest, err)
	}

	respBytes, callErr := c.hostCall(c.runtime.Namespace, capabilityName, fn, b)
	if callErr != nil && len(respBytes) == 0 {
		return errors.Join(ErrHostCall, callErr)
	}

	if unmarshalErr := resp.UnmarshalVT(respBytes); unmarshalErr != nil {
		if callErr != nil {
			return errors.Join(ErrHostCall, callErr, ErrHostResponseInvalid, unmarshalErr)
		}
		return errors.Join(ErrHostResponseInvalid, unmarshalErr)
	}

	return validateStatus(resp.GetStatus(), callErr)
}

func validateStatus(status *sdkproto.Status, callErr error) error {
	if status == nil {
		if callErr != nil {
			return errors.Join(ErrHostCall, callErr, ErrHostResponseInvalid)
		}
		return ErrHostResponseInvalid
	}

	code := status.GetCode()
	switch code {
	case hostStatusOK, hostStatusPartial:
		if callErr != nil {
			return errors.Join(ErrHostCall, callErr)
		}
		return nil
	case hostStatusMissing:
		return ErrKeyNotFound
	case hostStatusBadInput, hostStatusError:
		detail := fmt.Sprintf("host status %d", code)
		if msg := status.GetStatus(); msg != "" {
			detail = fmt.Sprintf("%s: %s", detail, msg)
		}
		if callErr != nil {
			return errors.Join(ErrHostCall, callErr, ErrHostError, errors.New(detail))
		}
		return errors.Join(ErrHostError, errors.New(detail))
	default:
		statusErr := fmt.Errorf("unexpected host status code %d", code)
		if callErr != nil {
			return errors.Join(ErrHostCall, callErr, ErrHostResponseInvalid, statusErr)
		}
		return errors.Join(ErrHostResponseInvalid, statusErr)
	}
}
