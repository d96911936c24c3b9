package shardmerge

import (
	"context"

	"github.com/bft-labs/shardmerge/internal/app"
	"github.com/bft-labs/shardmerge/pkg/log"
)

// Run discovers the shards that belong with cfg.FirstShard, merges them and
// writes the result to cfg.OutputPath. It blocks until the output has been
// written or the run fails.
//
// The returned Report is filled as far as the run got, also on error.
func Run(ctx context.Context, cfg Config, opts ...Option) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{OutputPath: cfg.OutputPath}, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewNoopLogger()
	}

	var emitter app.EventEmitter
	if o.eventHandler != nil {
		emitter = &eventEmitterWrapper{handler: o.eventHandler}
	}

	pipeline := app.NewPipeline(app.PipelineConfig{
		FirstShard: cfg.FirstShard,
		SearchDir:  cfg.SearchDir,
		OutputPath: cfg.OutputPath,
		Overwrite:  cfg.Overwrite,
		Purge:      cfg.Purge,
		Strict:     cfg.Strict,
	}, o.lister, o.source, o.store, o.reclaimer, o.logger, emitter)

	return pipeline.Run(ctx)
}
