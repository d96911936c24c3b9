package cliconfig

import (
	"fmt"
	"strconv"

	"github.com/bft-labs/shardmerge/internal/domain"
)

// DefaultFirstShard is the first shard merged when none is given.
const DefaultFirstShard = "diffusion_pytorch_model-00001-of-00003.safetensors"

// Config holds CLI configuration for shardmerge.
type Config struct {
	FirstShard      string
	OutputModelName string
	OutputDir       string

	Overwrite  bool
	PurgeShard bool
	Strict     bool

	LogLevel string

	// Derived by ResolveShardInfo.
	SearchDir  string
	OutputPath string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		FirstShard: DefaultFirstShard,
		PurgeShard: true,
		LogLevel:   "info",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.FirstShard == "" {
		return fmt.Errorf("%w: first-shard is required", domain.ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts what strconv.ParseBool accepts; anything else is an error.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	v, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%w: %s: invalid boolean %q", domain.ErrInvalidConfig, flag, value)
	}
	*dst = v
	return nil
}
