package domain

import (
	"errors"
	"fmt"
)

// Domain errors returned by a merge run. Check them with errors.Is.
var (
	// ErrNoShards is returned when discovery finds no shard files.
	ErrNoShards = errors.New("shardmerge: no shard files found")

	// ErrOutputExists is returned when the output file exists and overwrite is not allowed.
	ErrOutputExists = errors.New("shardmerge: output file already exists")

	// ErrNothingMerged is returned when every shard failed to load.
	ErrNothingMerged = errors.New("shardmerge: no tensors were combined")

	// ErrWrite is returned when the merged model cannot be written.
	ErrWrite = errors.New("shardmerge: write failed")

	// ErrShardLoad is returned in strict mode when a shard fails to load.
	ErrShardLoad = errors.New("shardmerge: shard load failed")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("shardmerge: invalid configuration")
)

// ShardError ties a load failure to the shard that caused it.
type ShardError struct {
	Shard Shard
	Err   error
}

// Error implements the error interface.
func (e *ShardError) Error() string {
	return fmt.Sprintf("shard %d (%s): %v", e.Shard.Index, e.Shard.Name, e.Err)
}

// Unwrap returns the underlying load error.
func (e *ShardError) Unwrap() error {
	return e.Err
}
