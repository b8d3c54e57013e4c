// Package config handles imapcodec configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nugget/imapwire/codec"
)

// DefaultSearchPaths returns the config file search order.
// An explicit path (from -config flag) is checked first.
// Then: ./config.yaml, ~/.config/imapcodec/config.yaml,
// /config/config.yaml, /etc/imapcodec/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"config.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "imapcodec", "config.yaml"))
	}

	paths = append(paths, "/config/config.yaml") // Container convention
	paths = append(paths, "/etc/imapcodec/config.yaml")
	return paths
}

// searchPathsFunc is swapped out by tests so they never find a real
// config file on a developer machine.
var searchPathsFunc = DefaultSearchPaths

// FindConfig locates a config file. If explicit is non-empty, it must exist.
// Otherwise, searches DefaultSearchPaths and returns the first that exists.
// Returns the path found, or an error if nothing was found.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range searchPathsFunc() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no config file found (searched: %v)", searchPathsFunc())
}

// Config holds all imapcodec configuration.
type Config struct {
	// MaxMessageSize caps how many bytes of any single message the
	// fragmentizer buffers. Zero means the built-in default; set
	// unbounded to disable the cap entirely.
	MaxMessageSize uint32 `yaml:"max_message_size"`

	// Unbounded disables the message size cap. Only safe against
	// trusted peers.
	Unbounded bool `yaml:"unbounded"`

	// RecursionLimit bounds nesting depth in the recursive grammar
	// productions. Zero means the codec package default.
	RecursionLimit int `yaml:"recursion_limit"`

	// Quirks selects per-connection parsing leniencies.
	Quirks codec.QuirksConfig `yaml:"quirks"`

	LogLevel string `yaml:"log_level"`
}

// DefaultMaxMessageSize bounds a message to 1 MiB unless configured
// otherwise: comfortably above any sane command or response line,
// while keeping a hostile peer from ballooning memory.
const DefaultMaxMessageSize = 1 << 20

// Load reads configuration from a YAML file, expands environment
// variables, applies defaults for any unset fields, and validates
// the result. After Load returns successfully, all fields are usable
// without additional nil/empty checks.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${HOME}). This is a
	// convenience for container deployments; the recommended approach
	// is to put values directly in the config file.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// applyDefaults fills in zero-value fields with sensible defaults.
// Called automatically by Load. After this, callers can read any field
// without checking for empty strings or zero values.
func (c *Config) applyDefaults() {
	if c.MaxMessageSize == 0 && !c.Unbounded {
		c.MaxMessageSize = DefaultMaxMessageSize
	}
	if c.RecursionLimit == 0 {
		c.RecursionLimit = codec.DefaultRecursionLimit
	}
}

// Validate checks that the configuration is internally consistent.
// It runs after applyDefaults, so it can assume defaults are populated.
// Returns an error describing the first problem found, or nil.
func (c *Config) Validate() error {
	if c.Unbounded && c.MaxMessageSize != 0 {
		return fmt.Errorf("max_message_size and unbounded are mutually exclusive")
	}
	if c.RecursionLimit < 0 {
		return fmt.Errorf("recursion_limit %d must not be negative", c.RecursionLimit)
	}
	if c.LogLevel != "" {
		if _, err := ParseLogLevel(c.LogLevel); err != nil {
			return err
		}
	}
	return nil
}

// CodecOptions builds the codec options this configuration describes.
func (c *Config) CodecOptions() codec.Options {
	return codec.Options{
		Quirks:         c.Quirks.ToQuirks(),
		RecursionLimit: c.RecursionLimit,
	}
}

// Default returns a default configuration suitable for interactive
// use. All defaults are already applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
