package shardmerge

import (
	"fmt"

	"github.com/bft-labs/shardmerge/internal/domain"
)

// Config describes one merge run.
type Config struct {
	// FirstShard is the path of the shard numbered 00001.
	FirstShard string

	// SearchDir is listed for siblings when FirstShard is a bare filename.
	// Defaults to the current directory.
	SearchDir string

	// OutputPath is where the merged model is written.
	OutputPath string

	// Overwrite permits replacing an existing OutputPath.
	Overwrite bool

	// Purge releases every shard right after it has been merged.
	Purge bool

	// Strict aborts on the first shard that fails to load.
	Strict bool
}

// Validate checks that the required fields are set.
func (c Config) Validate() error {
	if c.FirstShard == "" {
		return fmt.Errorf("%w: FirstShard is required", domain.ErrInvalidConfig)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("%w: OutputPath is required", domain.ErrInvalidConfig)
	}
	return nil
}
