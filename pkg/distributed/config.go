package distributed

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTimeout bounds cluster API calls when the config does not set one.
const DefaultTimeout = 30 * time.Second

// ErrNoEndpoint is returned when a config names no cluster endpoint.
var ErrNoEndpoint = errors.New("distributed: cluster endpoint is required")

// Config describes a cluster connection, usually loaded from a cluster.yaml
// file next to the job being submitted.
type Config struct {
	Name           string `yaml:"name"`                      // display name of the cluster
	Endpoint       string `yaml:"endpoint"`                  // job API base URL (http or https)
	Token          string `yaml:"token,omitempty"`           // optional bearer token
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"` // per-call timeout, DefaultTimeout when zero
}

// LoadConfig reads and validates a cluster config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("distributed: read cluster config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("distributed: parse cluster config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the config can open a connection.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return ErrNoEndpoint
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("distributed: negative timeout_seconds %d", c.TimeoutSeconds)
	}
	return nil
}

// Timeout returns the per-call timeout, DefaultTimeout when unset.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
