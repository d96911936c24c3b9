// Package domain contains the core entities of a shard merge run.
//
// This package has no dependencies on infrastructure concerns (file system,
// codecs, logging) and holds only naming rules and merge semantics.
//
// # Entities
//
//   - [Shard]: one file of a numbered shard set (prefix, index, total, extension)
//   - [Tensor], [TensorMap]: opaque named tensors
//   - [Model]: the accumulated tensor mapping plus merged metadata
//   - [LoadResult]: the outcome of loading one shard
//   - [Report]: the per-run summary of discovered, loaded and failed shards
package domain
