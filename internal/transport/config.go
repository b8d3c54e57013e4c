package transport

import (
	"fmt"

	"github.com/nugget/imapwire/codec"
)

// Config describes one connection's transport settings.
type Config struct {
	// MaxMessageSize caps how many bytes of any single peer message
	// the fragmentizer buffers.
	MaxMessageSize uint32 `yaml:"max_message_size"`

	// ReadChunkSize is how many bytes are read from the connection
	// per read when the fragmentizer asks for more input.
	ReadChunkSize int `yaml:"read_chunk_size"`

	// Quirks selects per-connection parsing leniencies, so a proxy
	// can apply server-specific tolerance to one upstream without
	// affecting another.
	Quirks codec.QuirksConfig `yaml:"quirks"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = 1 << 20
	}
	if c.ReadChunkSize == 0 {
		c.ReadChunkSize = 4096
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.ReadChunkSize < 1 {
		return fmt.Errorf("read_chunk_size %d must be positive", c.ReadChunkSize)
	}
	return nil
}
