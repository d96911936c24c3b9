package ports

// MemoryReclaimer returns memory released by a purged shard to the OS.
type MemoryReclaimer interface {
	Reclaim()
}
