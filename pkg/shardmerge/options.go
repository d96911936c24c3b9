package shardmerge

import (
	"github.com/bft-labs/shardmerge/internal/adapters/fs"
	"github.com/bft-labs/shardmerge/internal/adapters/mem"
	"github.com/bft-labs/shardmerge/pkg/log"
)

// Option configures optional behavior of Run.
type Option func(*options)

// options holds the optional configuration for a merge run.
type options struct {
	logger       Logger
	lister       DirLister
	source       ShardSource
	store        ModelStore
	reclaimer    MemoryReclaimer
	eventHandler EventHandler
}

// defaultOptions returns options backed by the local file system.
func defaultOptions() options {
	return options{
		logger:    log.NewNoopLogger(),
		lister:    fs.NewDirLister(),
		source:    fs.NewSafeTensorsSource(),
		store:     fs.NewModelFileStore(),
		reclaimer: mem.NewRuntimeReclaimer(),
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDirLister replaces directory listing used by shard discovery.
func WithDirLister(lister DirLister) Option {
	return func(o *options) {
		o.lister = lister
	}
}

// WithSource replaces the shard loader.
func WithSource(source ShardSource) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithStore replaces the output writer.
func WithStore(store ModelStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithReclaimer replaces the hook invoked after each purged shard.
func WithReclaimer(reclaimer MemoryReclaimer) Option {
	return func(o *options) {
		o.reclaimer = reclaimer
	}
}

// WithEventHandler sets a handler for merge events.
// Events are called synchronously from the merging goroutine.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}
