package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bft-labs/shardmerge/internal/domain"
	"github.com/bft-labs/shardmerge/internal/ports"
	"github.com/bft-labs/shardmerge/pkg/log"
)

// PipelineConfig contains the resolved settings for one merge run.
type PipelineConfig struct {
	// FirstShard is the path of shard 1.
	FirstShard string

	// SearchDir is listed when FirstShard has no directory component.
	SearchDir string

	// OutputPath is the merged file's destination.
	OutputPath string

	Overwrite bool
	Purge     bool
	Strict    bool
}

// Pipeline runs discovery, merge and write once.
type Pipeline struct {
	config  PipelineConfig
	lister  ports.DirLister
	store   ports.ModelStore
	merger  *Merger
	logger  log.Logger
	emitter EventEmitter
	stage   Stage
}

// NewPipeline creates a new pipeline with the given dependencies.
func NewPipeline(
	config PipelineConfig,
	lister ports.DirLister,
	source ports.ShardSource,
	store ports.ModelStore,
	reclaimer ports.MemoryReclaimer,
	logger log.Logger,
	emitter EventEmitter,
) *Pipeline {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if emitter == nil {
		emitter = noopEmitter{}
	}
	merger := NewMerger(MergerConfig{Purge: config.Purge, Strict: config.Strict}, source, reclaimer, logger, emitter)
	return &Pipeline{
		config:  config,
		lister:  lister,
		store:   store,
		merger:  merger,
		logger:  logger,
		emitter: emitter,
	}
}

// Stage returns the stage the pipeline last entered.
func (p *Pipeline) Stage() Stage {
	return p.stage
}

// Run executes the pipeline. The returned report is filled as far as the
// run got, also when an error is returned.
func (p *Pipeline) Run(ctx context.Context) (report domain.Report, err error) {
	start := time.Now()
	report.OutputPath = p.config.OutputPath
	defer func() {
		report.Duration = time.Since(start)
		if err != nil {
			p.transition(StageFailed)
		}
	}()

	p.transition(StageDiscovering)
	shards, err := DiscoverShards(p.lister, p.config.FirstShard, p.config.SearchDir)
	if err != nil {
		return report, err
	}
	report.Shards = shards
	p.logger.Info("found shard files", log.Int("count", len(shards)))
	if declared := report.DeclaredTotal(); declared > 0 && declared != len(shards) {
		p.logger.Warn("shard count differs from declared total",
			log.Int("found", len(shards)),
			log.Int("declared", declared))
	}

	if err := p.checkDestination(shards); err != nil {
		return report, err
	}

	p.transition(StageMerging)
	result, err := p.merger.Merge(ctx, shards)
	defer func() {
		if relErr := result.Release(); relErr != nil {
			p.logger.Warn("failed to release shards", log.Err(relErr))
		}
	}()
	report.Loaded = result.Loaded
	report.Failures = result.Failures
	report.Collisions = result.Collisions
	report.Tensors = result.Model.Len()
	if err != nil {
		return report, err
	}

	if result.Model.Empty() {
		return report, domain.ErrNothingMerged
	}

	// The destination may have appeared while shards were loading.
	if err := p.checkDestination(shards); err != nil {
		return report, err
	}

	p.transition(StageWriting)
	p.logger.Info("saving combined model",
		log.String("path", p.config.OutputPath),
		log.Int("tensors", report.Tensors),
		log.Bytes("size", result.Model.Tensors.Bytes()))
	n, err := p.store.Save(ctx, p.config.OutputPath, result.Model)
	if err != nil {
		return report, fmt.Errorf("%w: %s: %w", domain.ErrWrite, p.config.OutputPath, err)
	}
	report.BytesWritten = n

	p.logger.Info("combined model saved",
		log.String("path", p.config.OutputPath),
		log.Bytes("size", n))
	if len(report.Failures) > 0 {
		p.logger.Warn("some shards failed to load; the combined model is missing their tensors",
			log.Int("failed", len(report.Failures)),
			log.Int("loaded", report.Loaded))
	}

	p.transition(StageDone)
	return report, nil
}

// checkDestination enforces the overwrite guard. An output path naming one
// of the input shards is refused even with overwrite enabled.
func (p *Pipeline) checkDestination(shards []domain.Shard) error {
	for _, s := range shards {
		if samePath(s.Path(), p.config.OutputPath) {
			return fmt.Errorf("%w: %s is input shard %d", domain.ErrOutputExists, p.config.OutputPath, s.Index)
		}
	}

	exists, err := p.store.Exists(p.config.OutputPath)
	if err != nil {
		return fmt.Errorf("check output %s: %w", p.config.OutputPath, err)
	}
	if !exists {
		return nil
	}
	if !p.config.Overwrite {
		return fmt.Errorf("%w: %s (use --overwrite to replace it)", domain.ErrOutputExists, p.config.OutputPath)
	}
	p.logger.Info("output file already exists, overwriting", log.String("path", p.config.OutputPath))
	return nil
}

func samePath(a, b string) bool {
	if absA, err := filepath.Abs(a); err == nil {
		a = absA
	}
	if absB, err := filepath.Abs(b); err == nil {
		b = absB
	}
	return a == b
}

func (p *Pipeline) transition(next Stage) {
	prev := p.stage
	p.stage = next
	p.emitter.OnStageChange(prev, next)
}
