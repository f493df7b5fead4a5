package config

import (
	"errors"
	"fmt"

	errspkg "github.com/drblury/protoargs/internal/runtime/errors"
)

const (
	DefaultKeyPrefixCapacity = 64
	DefaultMetricsNamespace  = "protoargs"
	DefaultTracerName        = "protoargs"
)

// Config groups the settings of a Flattener. The zero value is usable; empty
// fields fall back to the defaults above.
type Config struct {
	// KeyPrefixCapacity is the number of bytes preallocated for each key
	// path of a parser.
	KeyPrefixCapacity int

	// AllowedFields limits which top-level field tags are reflected. Nil
	// reflects every field; extension fields are always reflected.
	AllowedFields []uint32

	// Metrics configuration.
	MetricsEnabled   bool
	MetricsNamespace string

	// Tracing configuration.
	TracingEnabled bool
	TracerName     string

	// ArgsTopic names the topic that flattened arg sets are published to by
	// the Watermill handler.
	ArgsTopic string
}

// WithDefaults returns a copy of the config with empty fields filled in.
func (c Config) WithDefaults() Config {
	if c.KeyPrefixCapacity == 0 {
		c.KeyPrefixCapacity = DefaultKeyPrefixCapacity
	}
	if c.MetricsNamespace == "" {
		c.MetricsNamespace = DefaultMetricsNamespace
	}
	if c.TracerName == "" {
		c.TracerName = DefaultTracerName
	}
	return c
}

func (c Config) String() string {
	type configAlias Config
	return fmt.Sprintf("%+v", configAlias(c))
}

// Validate reports every problem found in the configuration.
func (c *Config) Validate() error {
	var errs []error

	if c.KeyPrefixCapacity < 0 {
		errs = append(errs, fmt.Errorf("protoargs: key prefix capacity cannot be negative (%d)", c.KeyPrefixCapacity))
	}
	errs = append(errs, c.validateAllowedFields()...)

	return errors.Join(errs...)
}

func (c *Config) validateAllowedFields() []error {
	var errs []error
	seen := make(map[uint32]struct{}, len(c.AllowedFields))
	for _, tag := range c.AllowedFields {
		if tag == 0 {
			errs = append(errs, errors.New("protoargs: allowed field tag 0 is not a valid field number"))
			continue
		}
		if _, dup := seen[tag]; dup {
			errs = append(errs, fmt.Errorf("protoargs: allowed field tag %d listed twice", tag))
			continue
		}
		seen[tag] = struct{}{}
	}
	return errs
}

// ValidateConfig is a convenience function to validate a config pointer.
func ValidateConfig(c *Config) error {
	if c == nil {
		return errspkg.ErrConfigRequired
	}
	return c.Validate()
}
