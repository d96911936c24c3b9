package ports

import (
	"context"

	"github.com/bft-labs/shardmerge/internal/domain"
)

// ShardSource opens shard files for reading.
type ShardSource interface {
	// Open deserializes the shard's header and exposes its tensors.
	// Returns an error if the file cannot be read or is malformed.
	Open(ctx context.Context, shard domain.Shard) (ShardHandle, error)
}

// ShardHandle is an opened shard. Tensor data may alias resources owned by
// the handle, so it is only valid until Close.
type ShardHandle interface {
	// Tensors returns the shard's tensor mapping.
	Tensors() domain.TensorMap

	// Metadata returns the shard's free-form metadata, nil when absent.
	Metadata() map[string]string

	// Close releases the shard's resources.
	Close() error
}
