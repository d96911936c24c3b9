// Package ports defines the interfaces that connect the merge pipeline to
// the file system and the tensor codec.
//
// # Port Interfaces
//
//   - [DirLister]: lists candidate shard filenames in a directory
//   - [ShardSource]: opens a shard and exposes its tensors
//   - [ModelStore]: checks for and writes the merged output file
//   - [MemoryReclaimer]: returns freed memory to the OS after a purge
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them, which lets
// discovery and merging be tested against in-memory fakes.
package ports
