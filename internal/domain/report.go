package domain

import "time"

// LoadResult is the outcome of loading one shard: either its tensors or
// the error that prevented loading them.
type LoadResult struct {
	Shard    Shard
	Tensors  TensorMap
	Metadata map[string]string
	Err      error
}

// OK returns true if the shard loaded.
func (r LoadResult) OK() bool {
	return r.Err == nil
}

// Report summarises a merge run.
type Report struct {
	// Shards are the discovered shards in merge order.
	Shards []Shard

	// Loaded counts shards merged into the output.
	Loaded int

	// Failures holds one ShardError per shard that could not be loaded.
	Failures []*ShardError

	// Tensors is the number of tensors in the merged model.
	Tensors int

	// Collisions counts keys overwritten by a later shard.
	Collisions int

	// OutputPath is where the merged model was (or would have been) written.
	OutputPath string

	// BytesWritten is the size of the output file.
	BytesWritten int64

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Complete returns true if every discovered shard was merged and the shard
// count matches the total declared in the shard names.
func (r Report) Complete() bool {
	if len(r.Failures) > 0 || r.Loaded != len(r.Shards) {
		return false
	}
	declared := r.DeclaredTotal()
	return declared == 0 || declared == len(r.Shards)
}

// DeclaredTotal returns the shard count carried by the first shard's name,
// or 0 when unknown.
func (r Report) DeclaredTotal() int {
	if len(r.Shards) == 0 {
		return 0
	}
	return r.Shards[0].Total
}
