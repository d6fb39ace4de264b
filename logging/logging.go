package logging

import (
	"fmt"
	"strings"

	"github.com/tarmac-project/localstorage"
	wapc "github.com/wapc/wapc-guest-tinygo"
)

const capabilityName = "logging"

// Level orders log severities. Messages below the configured Level are dropped
// without a host call.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// host function names, indexed by Level.
var levelFunctions = [...]string{"Trace", "Debug", "Info", "Warn", "Error"}

func (l Level) String() string {
	if l < LevelTrace || l > LevelError {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelFunctions[l]
}

// ParseLevel converts a case-insensitive level name. An empty string yields LevelTrace.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return LevelTrace, nil
	}
	for i, name := range levelFunctions {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelTrace, fmt.Errorf("unknown log level %q", s)
}

// Client exposes convenience helpers for sending log entries to the host runtime.
type Client interface {
	Info(message string)
	Warn(message string)
	Error(message string)
	Debug(message string)
	Trace(message string)
}

// Config controls how a Client instance interacts with the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig localstorage.RuntimeConfig

	// HostCall overrides the waPC host function used for logging operations.
	HostCall localstorage.HostCall

	// Level is the minimum severity forwarded to the host. The zero value
	// forwards everything.
	Level Level
}

// HostLogger implements Client using the configured host call entrypoint.
type HostLogger struct {
	runtime  localstorage.RuntimeConfig
	hostCall localstorage.HostCall
	level    Level
}

var _ Client = (*HostLogger)(nil)

// New creates a Client that emits logs through the configured host capability.
func New(cfg Config) (*HostLogger, error) {
	hostCall := cfg.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	return &HostLogger{
		runtime:  cfg.SDKConfig.WithDefaults(),
		hostCall: hostCall,
		level:    cfg.Level,
	}, nil
}

func (c *HostLogger) Trace(message string) { c.log(LevelTrace, message) }
func (c *HostLogger) Debug(message string) { c.log(LevelDebug, message) }
func (c *HostLogger) Info(message string)  { c.log(LevelInfo, message) }
func (c *HostLogger) Warn(message string)  { c.log(LevelWarn, message) }
func (c *HostLogger) Error(message string) { c.log(LevelError, message) }

// log is best effort; host failures never reach the caller.
func (c *HostLogger) log(level Level, message string) {
	if level < c.level {
		return
	}
	_, _ = c.hostCall(c.runtime.Namespace, capabilityName, level.String(), []byte(message))
}
