package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config for TOML. Booleans are pointers so an absent
// key leaves the default untouched.
type FileConfig struct {
	FirstShard      string `toml:"first_shard"`
	OutputModelName string `toml:"output_model_name"`
	OutputDir       string `toml:"output_dir"`
	Overwrite       *bool  `toml:"overwrite"`
	PurgeShard      *bool  `toml:"purge_shard"`
	Strict          *bool  `toml:"strict"`
	LogLevel        string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.shardmerge/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".shardmerge", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("first-shard", fc.FirstShard, &cfg.FirstShard)
	s.setString("output-model-name", fc.OutputModelName, &cfg.OutputModelName)
	s.setString("output-dir", fc.OutputDir, &cfg.OutputDir)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setBool("overwrite", fc.Overwrite, &cfg.Overwrite)
	s.setBool("purge-shard", fc.PurgeShard, &cfg.PurgeShard)
	s.setBool("strict", fc.Strict, &cfg.Strict)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
