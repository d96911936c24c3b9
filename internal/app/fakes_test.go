package app

import (
	"context"
	"errors"
	"sync"

	"github.com/bft-labs/shardmerge/internal/domain"
	"github.com/bft-labs/shardmerge/internal/ports"
)

type fakeLister struct {
	names  []string
	err    error
	listed []string
}

func (l *fakeLister) ListDir(dir string) ([]string, error) {
	l.listed = append(l.listed, dir)
	if l.err != nil {
		return nil, l.err
	}
	return l.names, nil
}

type fakeShard struct {
	tensors  domain.TensorMap
	metadata map[string]string
	err      error
}

// fakeSource serves shards from memory keyed by path.
type fakeSource struct {
	mu     sync.Mutex
	shards map[string]fakeShard
	opened []string
	closed []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{shards: make(map[string]fakeShard)}
}

func (s *fakeSource) add(path string, tensors domain.TensorMap, metadata map[string]string) {
	s.shards[path] = fakeShard{tensors: tensors, metadata: metadata}
}

func (s *fakeSource) fail(path string, err error) {
	s.shards[path] = fakeShard{err: err}
}

func (s *fakeSource) Open(_ context.Context, shard domain.Shard) (ports.ShardHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened = append(s.opened, shard.Path())
	fs, ok := s.shards[shard.Path()]
	if !ok {
		return nil, errors.New("no such shard")
	}
	if fs.err != nil {
		return nil, fs.err
	}
	return &fakeHandle{source: s, path: shard.Path(), tensors: fs.tensors, metadata: fs.metadata}, nil
}

func (s *fakeSource) closedPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.closed...)
}

type fakeHandle struct {
	source   *fakeSource
	path     string
	tensors  domain.TensorMap
	metadata map[string]string
}

func (h *fakeHandle) Tensors() domain.TensorMap   { return h.tensors }
func (h *fakeHandle) Metadata() map[string]string { return h.metadata }

func (h *fakeHandle) Close() error {
	h.source.mu.Lock()
	defer h.source.mu.Unlock()
	h.source.closed = append(h.source.closed, h.path)
	return nil
}

// fakeStore records saved models; a snapshot is taken at save time.
type fakeStore struct {
	existing map[string]bool
	saveErr  error
	saved    map[string]*domain.Model
}

func newFakeStore() *fakeStore {
	return &fakeStore{existing: make(map[string]bool), saved: make(map[string]*domain.Model)}
}

func (s *fakeStore) Exists(path string) (bool, error) {
	return s.existing[path], nil
}

func (s *fakeStore) Save(_ context.Context, path string, model *domain.Model) (int64, error) {
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	snap := domain.NewModel()
	for name, t := range model.Tensors {
		snap.Tensors[name] = t.Clone()
	}
	if model.Metadata != nil {
		snap.Metadata = make(map[string]string, len(model.Metadata))
		for k, v := range model.Metadata {
			snap.Metadata[k] = v
		}
	}
	s.saved[path] = snap
	s.existing[path] = true
	return snap.Tensors.Bytes(), nil
}

type countingReclaimer struct {
	calls int
}

func (r *countingReclaimer) Reclaim() { r.calls++ }

type recordingEmitter struct {
	stages []Stage
	loaded []string
	failed []string
	purged []string
}

func (e *recordingEmitter) OnStageChange(_, cur Stage) {
	e.stages = append(e.stages, cur)
}

func (e *recordingEmitter) OnShardLoaded(s domain.Shard, _ int) {
	e.loaded = append(e.loaded, s.Name)
}

func (e *recordingEmitter) OnShardFailed(s domain.Shard, _ error) {
	e.failed = append(e.failed, s.Name)
}

func (e *recordingEmitter) OnShardPurged(s domain.Shard) {
	e.purged = append(e.purged, s.Name)
}

func u8(vals ...byte) domain.Tensor {
	return domain.Tensor{DType: "U8", Shape: []int64{int64(len(vals))}, Data: vals}
}
