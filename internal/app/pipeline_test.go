package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/shardmerge/internal/domain"
)

const testOutput = "out/model.safetensors"

func newTestPipeline(config PipelineConfig, src *fakeSource, store *fakeStore, emitter EventEmitter) *Pipeline {
	lister := &fakeLister{names: []string{
		"m-00002-of-00003.safetensors",
		"m-00001-of-00003.safetensors",
		"m-00003-of-00003.safetensors",
	}}
	if config.FirstShard == "" {
		config.FirstShard = "models/m-00001-of-00003.safetensors"
	}
	if config.OutputPath == "" {
		config.OutputPath = testOutput
	}
	return NewPipeline(config, lister, src, store, &countingReclaimer{}, nil, emitter)
}

func TestPipeline_Run(t *testing.T) {
	for _, purge := range []bool{true, false} {
		src := newFakeSource()
		threeShards(src)
		store := newFakeStore()
		emitter := &recordingEmitter{}

		p := newTestPipeline(PipelineConfig{Purge: purge}, src, store, emitter)
		report, err := p.Run(context.Background())
		require.NoError(t, err)

		assert.Len(t, report.Shards, 3)
		assert.Equal(t, 3, report.Loaded)
		assert.Equal(t, 4, report.Tensors)
		assert.Equal(t, testOutput, report.OutputPath)
		assert.True(t, report.Complete())
		assert.Positive(t, report.BytesWritten)

		saved := store.saved[testOutput]
		require.NotNil(t, saved)
		assert.Equal(t, []byte{3, 3}, saved.Tensors["shared"].Data)
		assert.Equal(t, map[string]string{"format": "np"}, saved.Metadata)

		assert.Equal(t, StageDone, p.Stage())
		assert.Equal(t, []Stage{StageDiscovering, StageMerging, StageWriting, StageDone}, emitter.stages)

		// Every shard is closed once the run is over.
		assert.Len(t, src.closedPaths(), 3)
	}
}

func TestPipeline_OverwriteGuard(t *testing.T) {
	src := newFakeSource()
	threeShards(src)
	store := newFakeStore()
	store.existing[testOutput] = true

	p := newTestPipeline(PipelineConfig{}, src, store, nil)
	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrOutputExists)
	assert.Empty(t, src.opened, "no shard is loaded when the output exists")
	assert.Nil(t, store.saved[testOutput])
	assert.Equal(t, StageFailed, p.Stage())

	p = newTestPipeline(PipelineConfig{Overwrite: true}, src, store, nil)
	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, report.Tensors)
	assert.NotNil(t, store.saved[testOutput])
}

func TestPipeline_NoShards(t *testing.T) {
	store := newFakeStore()
	p := newTestPipeline(PipelineConfig{FirstShard: "models/x-00001-of-00002.safetensors"}, newFakeSource(), store, nil)

	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoShards)
	assert.Empty(t, store.saved)
}

func TestPipeline_AllShardsFail(t *testing.T) {
	src := newFakeSource()
	for _, s := range threeShards(src) {
		src.fail(s.Path(), errors.New("bad shard"))
	}
	store := newFakeStore()

	p := newTestPipeline(PipelineConfig{Purge: true}, src, store, nil)
	report, err := p.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrNothingMerged)
	assert.Len(t, report.Failures, 3)
	assert.Zero(t, report.Loaded)
	assert.Empty(t, store.saved)
}

func TestPipeline_PartialFailureStillWrites(t *testing.T) {
	src := newFakeSource()
	shards := threeShards(src)
	src.fail(shards[2].Path(), errors.New("bad shard"))
	store := newFakeStore()

	p := newTestPipeline(PipelineConfig{Purge: true}, src, store, nil)
	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Complete())
	assert.Len(t, report.Failures, 1)
	assert.Equal(t, []byte{1, 1}, store.saved[testOutput].Tensors["shared"].Data)
}

func TestPipeline_StrictFailure(t *testing.T) {
	src := newFakeSource()
	shards := threeShards(src)
	src.fail(shards[0].Path(), errors.New("bad shard"))
	store := newFakeStore()

	p := newTestPipeline(PipelineConfig{Purge: true, Strict: true}, src, store, nil)
	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrShardLoad)
	assert.Empty(t, store.saved)
}

func TestPipeline_WriteFailure(t *testing.T) {
	src := newFakeSource()
	threeShards(src)
	store := newFakeStore()
	diskErr := errors.New("no space left on device")
	store.saveErr = diskErr

	p := newTestPipeline(PipelineConfig{}, src, store, nil)
	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrWrite)
	assert.ErrorIs(t, err, diskErr)
	assert.Len(t, src.closedPaths(), 3, "retained shards are released on failure")
}

func TestPipeline_RefusesToReplaceInputShard(t *testing.T) {
	for _, overwrite := range []bool{false, true} {
		src := newFakeSource()
		shards := threeShards(src)
		store := newFakeStore()
		store.existing[shards[0].Path()] = true

		p := newTestPipeline(PipelineConfig{OutputPath: shards[0].Path(), Overwrite: overwrite}, src, store, nil)
		_, err := p.Run(context.Background())
		assert.ErrorIs(t, err, domain.ErrOutputExists)
		assert.Empty(t, src.opened, "no shard is loaded when the output is an input")
		assert.Empty(t, store.saved)
	}
}
