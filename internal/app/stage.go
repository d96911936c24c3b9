package app

import "github.com/bft-labs/shardmerge/internal/domain"

// Stage is a step of the merge pipeline.
type Stage int

const (
	StageIdle Stage = iota
	StageDiscovering
	StageMerging
	StageWriting
	StageDone
	StageFailed
)

// String returns a human-readable representation of the stage.
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "Idle"
	case StageDiscovering:
		return "Discovering"
	case StageMerging:
		return "Merging"
	case StageWriting:
		return "Writing"
	case StageDone:
		return "Done"
	case StageFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// EventEmitter receives pipeline progress. Calls are made synchronously
// from the merging goroutine.
type EventEmitter interface {
	OnStageChange(previous, current Stage)
	OnShardLoaded(shard domain.Shard, tensors int)
	OnShardFailed(shard domain.Shard, err error)
	OnShardPurged(shard domain.Shard)
}

// noopEmitter discards all events.
type noopEmitter struct{}

func (noopEmitter) OnStageChange(Stage, Stage)        {}
func (noopEmitter) OnShardLoaded(domain.Shard, int)   {}
func (noopEmitter) OnShardFailed(domain.Shard, error) {}
func (noopEmitter) OnShardPurged(domain.Shard)        {}
