package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/bft-labs/shardmerge/internal/domain"
	"github.com/bft-labs/shardmerge/internal/ports"
	"github.com/bft-labs/shardmerge/pkg/log"
)

// MergerConfig controls how shards are folded into the model.
type MergerConfig struct {
	// Purge copies each shard's tensors out of the shard and releases the
	// shard right after merging it. Without purge, shards stay open and the
	// model aliases their data until MergeResult.Release.
	Purge bool

	// Strict aborts the merge on the first shard that fails to load.
	Strict bool
}

// Merger folds shards into a single model.
type Merger struct {
	config    MergerConfig
	source    ports.ShardSource
	reclaimer ports.MemoryReclaimer
	logger    log.Logger
	emitter   EventEmitter
}

// NewMerger creates a new merger with the given dependencies.
func NewMerger(
	config MergerConfig,
	source ports.ShardSource,
	reclaimer ports.MemoryReclaimer,
	logger log.Logger,
	emitter EventEmitter,
) *Merger {
	if emitter == nil {
		emitter = noopEmitter{}
	}
	if reclaimer == nil {
		reclaimer = noopReclaimer{}
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Merger{
		config:    config,
		source:    source,
		reclaimer: reclaimer,
		logger:    logger,
		emitter:   emitter,
	}
}

type noopReclaimer struct{}

func (noopReclaimer) Reclaim() {}

// MergeResult is the folded model plus per-shard outcomes.
type MergeResult struct {
	Model      *domain.Model
	Loaded     int
	Failures   []*domain.ShardError
	Collisions int

	// retained holds shards whose data the model still aliases.
	retained []ports.ShardHandle
}

// Release closes every shard still held by the result. The model must not
// be used afterwards unless it was built with purge enabled.
func (r *MergeResult) Release() error {
	var errs []error
	for _, h := range r.retained {
		if err := h.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.retained = nil
	return errors.Join(errs...)
}

// Merge loads every shard in order and folds its tensors into one model,
// later shards overwriting earlier keys.
//
// A shard that fails to load is recorded in MergeResult.Failures and
// skipped. In strict mode the first failure stops the merge and an error
// wrapping domain.ErrShardLoad is returned alongside the partial result.
func (m *Merger) Merge(ctx context.Context, shards []domain.Shard) (*MergeResult, error) {
	res := &MergeResult{Model: domain.NewModel()}

	for i, shard := range shards {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		m.logger.Info("loading shard",
			log.Int("shard", i+1),
			log.Int("of", len(shards)),
			log.String("path", shard.Path()))

		result, handle := m.load(ctx, shard)
		if !result.OK() {
			serr := &domain.ShardError{Shard: shard, Err: result.Err}
			res.Failures = append(res.Failures, serr)
			m.logger.Error("error loading shard",
				log.Int("shard", i+1),
				log.String("path", shard.Path()),
				log.Err(result.Err))
			m.emitter.OnShardFailed(shard, result.Err)
			if m.config.Strict {
				return res, fmt.Errorf("%w: %w", domain.ErrShardLoad, serr)
			}
			continue
		}

		collisions := res.Model.Merge(result.Tensors, result.Metadata)
		res.Collisions += collisions
		res.Loaded++
		if collisions > 0 {
			m.logger.Debug("shard overwrote existing tensors",
				log.Int("shard", i+1),
				log.Int("collisions", collisions))
		}
		m.logger.Info("shard loaded and combined",
			log.Int("shard", i+1),
			log.Int("of", len(shards)),
			log.Int("tensors", len(result.Tensors)),
			log.Bytes("size", result.Tensors.Bytes()))
		m.emitter.OnShardLoaded(shard, len(result.Tensors))

		if !m.config.Purge {
			res.retained = append(res.retained, handle)
			continue
		}
		if err := handle.Close(); err != nil {
			m.logger.Warn("failed to release shard", log.String("path", shard.Path()), log.Err(err))
		}
		m.reclaimer.Reclaim()
		m.logger.Info("shard purged from memory", log.Int("shard", i+1))
		m.emitter.OnShardPurged(shard)
	}

	return res, nil
}

// load opens one shard. With purge enabled the returned tensors are
// detached copies that outlive the handle.
func (m *Merger) load(ctx context.Context, shard domain.Shard) (domain.LoadResult, ports.ShardHandle) {
	handle, err := m.source.Open(ctx, shard)
	if err != nil {
		return domain.LoadResult{Shard: shard, Err: err}, nil
	}

	tensors := handle.Tensors()
	metadata := handle.Metadata()
	if m.config.Purge {
		detached := make(domain.TensorMap, len(tensors))
		for name, t := range tensors {
			detached[name] = t.Clone()
		}
		tensors = detached

		if metadata != nil {
			copied := make(map[string]string, len(metadata))
			for k, v := range metadata {
				copied[k] = v
			}
			metadata = copied
		}
	}

	return domain.LoadResult{Shard: shard, Tensors: tensors, Metadata: metadata}, handle
}
