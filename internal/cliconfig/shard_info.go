package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bft-labs/shardmerge/internal/domain"
)

var getwd = os.Getwd

// ResolveShardInfo normalises the first-shard path and derives the search
// directory and output path if they are not already set.
func ResolveShardInfo(cfg *Config) error {
	cfg.FirstShard = filepath.FromSlash(strings.ReplaceAll(cfg.FirstShard, `\`, "/"))

	if cfg.SearchDir == "" {
		wd, err := getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		cfg.SearchDir = wd
	}

	if cfg.OutputPath != "" {
		return nil
	}

	base := filepath.Base(cfg.FirstShard)
	ext := filepath.Ext(base)

	name := cfg.OutputModelName
	if name == "" {
		name = domain.ModelName(base, ext)
	}

	dir := cfg.OutputDir
	if dir == "" {
		dir = cfg.SearchDir
	}
	cfg.OutputPath = filepath.Join(dir, domain.OutputFileName(name, ext))
	return nil
}
