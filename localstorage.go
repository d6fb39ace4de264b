package localstorage

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// DefaultNamespace is used when no explicit namespace is provided.
const DefaultNamespace = "tarmac"

// HostCall is the waPC host function signature shared by every capability client.
type HostCall func(namespace, capability, function string, payload []byte) ([]byte, error)

// RuntimeConfig carries the settings capability clients need to reach the host.
type RuntimeConfig struct {
	// Namespace is the function namespace used to scope host interactions.
	Namespace string `env:"TARMAC_NAMESPACE" envDefault:"tarmac"`
}

// LoadRuntimeConfig reads the runtime configuration from the environment.
func LoadRuntimeConfig() (RuntimeConfig, error) {
	var cfg RuntimeConfig
	if err := env.Parse(&cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg.WithDefaults(), nil
}

// WithDefaults returns a copy of the configuration with empty fields filled in.
func (c RuntimeConfig) WithDefaults() RuntimeConfig {
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	return c
}
