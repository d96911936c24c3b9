package cliconfig

import (
	"fmt"
	"os"
)

// ApplyEnvConfig applies configuration from environment variables (SHARDMERGE_*).
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("first-shard", os.Getenv("SHARDMERGE_FIRST_SHARD"), &cfg.FirstShard)
	s.setString("output-model-name", os.Getenv("SHARDMERGE_OUTPUT_MODEL_NAME"), &cfg.OutputModelName)
	s.setString("output-dir", os.Getenv("SHARDMERGE_OUTPUT_DIR"), &cfg.OutputDir)
	s.setString("log-level", os.Getenv("SHARDMERGE_LOG_LEVEL"), &cfg.LogLevel)

	bools := []struct {
		flag, env string
		dst       *bool
	}{
		{"overwrite", "SHARDMERGE_OVERWRITE", &cfg.Overwrite},
		{"purge-shard", "SHARDMERGE_PURGE_SHARD", &cfg.PurgeShard},
		{"strict", "SHARDMERGE_STRICT", &cfg.Strict},
	}
	for _, b := range bools {
		if err := s.setBoolFromString(b.flag, os.Getenv(b.env), b.dst); err != nil {
			return fmt.Errorf("%s: %w", b.env, err)
		}
	}
	return nil
}
