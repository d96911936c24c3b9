// Package mem implements ports.MemoryReclaimer.
package mem

import "runtime/debug"

// RuntimeReclaimer forces a garbage collection and returns as much memory
// to the operating system as possible.
type RuntimeReclaimer struct{}

// NewRuntimeReclaimer creates a new RuntimeReclaimer.
func NewRuntimeReclaimer() *RuntimeReclaimer {
	return &RuntimeReclaimer{}
}

// Reclaim implements ports.MemoryReclaimer.
func (RuntimeReclaimer) Reclaim() {
	debug.FreeOSMemory()
}
