package shardmerge

import "github.com/bft-labs/shardmerge/internal/app"

// Stage is a step of a merge run.
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

// StageChangeEvent is emitted when a run moves to a new stage.
type StageChangeEvent struct {
	Previous Stage
	Current  Stage
}

// ShardLoadedEvent is emitted after a shard has been merged.
type ShardLoadedEvent struct {
	Shard   Shard
	Tensors int
}

// ShardFailedEvent is emitted when a shard cannot be loaded.
type ShardFailedEvent struct {
	Shard Shard
	Error error
}

// ShardPurgedEvent is emitted after a merged shard has been released.
type ShardPurgedEvent struct {
	Shard Shard
}

// EventHandler receives progress notifications from Run.
type EventHandler interface {
	OnStageChange(event StageChangeEvent)
	OnShardLoaded(event ShardLoadedEvent)
	OnShardFailed(event ShardFailedEvent)
	OnShardPurged(event ShardPurgedEvent)
}

// BaseEventHandler implements EventHandler with no-ops. Embed it to handle
// only the events you need.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStageChange(StageChangeEvent) {}
func (BaseEventHandler) OnShardLoaded(ShardLoadedEvent) {}
func (BaseEventHandler) OnShardFailed(ShardFailedEvent) {}
func (BaseEventHandler) OnShardPurged(ShardPurgedEvent) {}

// eventEmitterWrapper adapts EventHandler to the internal emitter interface.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStageChange(previous, current app.Stage) {
	if e.handler == nil {
		return
	}
	e.handler.OnStageChange(StageChangeEvent{
		Previous: publicStage(previous),
		Current:  publicStage(current),
	})
}

func (e *eventEmitterWrapper) OnShardLoaded(shard Shard, tensors int) {
	if e.handler == nil {
		return
	}
	e.handler.OnShardLoaded(ShardLoadedEvent{Shard: shard, Tensors: tensors})
}

func (e *eventEmitterWrapper) OnShardFailed(shard Shard, err error) {
	if e.handler == nil {
		return
	}
	e.handler.OnShardFailed(ShardFailedEvent{Shard: shard, Error: err})
}

func (e *eventEmitterWrapper) OnShardPurged(shard Shard) {
	if e.handler == nil {
		return
	}
	e.handler.OnShardPurged(ShardPurgedEvent{Shard: shard})
}

func publicStage(s app.Stage) Stage {
	switch s {
	case app.StageDiscovering:
		return StageDiscovering
	case app.StageMerging:
		return StageMerging
	case app.StageWriting:
		return StageWriting
	case app.StageDone:
		return StageDone
	case app.StageFailed:
		return StageFailed
	default:
		return StageIdle
	}
}
