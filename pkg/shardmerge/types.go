package shardmerge

import (
	"github.com/bft-labs/shardmerge/internal/domain"
	"github.com/bft-labs/shardmerge/internal/ports"
	"github.com/bft-labs/shardmerge/pkg/log"
)

// Re-export domain types so callers and custom adapters need only this
// package.
type (
	// Shard is one file of a numbered shard set.
	Shard = domain.Shard

	// Tensor is a single named tensor.
	Tensor = domain.Tensor

	// TensorMap maps tensor names to tensors.
	TensorMap = domain.TensorMap

	// Model is the merged tensor mapping plus metadata.
	Model = domain.Model

	// Report summarises a merge run.
	Report = domain.Report

	// ShardError ties a load failure to its shard.
	ShardError = domain.ShardError

	// Logger is the interface for structured logging.
	Logger = log.Logger

	// DirLister lists directory entries for shard discovery.
	DirLister = ports.DirLister

	// ShardSource opens shards.
	ShardSource = ports.ShardSource

	// ShardHandle is an opened shard.
	ShardHandle = ports.ShardHandle

	// ModelStore persists the merged model.
	ModelStore = ports.ModelStore

	// MemoryReclaimer returns freed memory to the OS after a purge.
	MemoryReclaimer = ports.MemoryReclaimer
)

// Sentinel errors returned by Run.
var (
	ErrNoShards      = domain.ErrNoShards
	ErrOutputExists  = domain.ErrOutputExists
	ErrNothingMerged = domain.ErrNothingMerged
	ErrWrite         = domain.ErrWrite
	ErrShardLoad     = domain.ErrShardLoad
	ErrInvalidConfig = domain.ErrInvalidConfig
)

// ParseShard splits a shard path into its naming attributes.
func ParseShard(path string) Shard {
	return domain.ParseShard(path)
}

// ModelName derives the merged model's base name from a shard filename.
func ModelName(filename, ext string) string {
	return domain.ModelName(filename, ext)
}
