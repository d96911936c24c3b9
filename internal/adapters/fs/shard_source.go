package fs

import (
	"context"

	"github.com/bft-labs/shardmerge/internal/domain"
	"github.com/bft-labs/shardmerge/internal/ports"
	"github.com/bft-labs/shardmerge/pkg/safetensors"
)

// SafeTensorsSource implements ports.ShardSource by memory-mapping
// SafeTensors shard files.
type SafeTensorsSource struct{}

// NewSafeTensorsSource creates a new SafeTensorsSource.
func NewSafeTensorsSource() *SafeTensorsSource {
	return &SafeTensorsSource{}
}

// Open maps the shard and parses its header.
func (SafeTensorsSource) Open(ctx context.Context, shard domain.Shard) (ports.ShardHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := safetensors.Open(shard.Path())
	if err != nil {
		return nil, err
	}
	tensors, err := f.Tensors()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	m := make(domain.TensorMap, len(tensors))
	for name, t := range tensors {
		m[name] = domain.Tensor{DType: string(t.DType), Shape: t.Shape, Data: t.Data}
	}
	return &safeTensorsHandle{file: f, tensors: m}, nil
}

// safeTensorsHandle keeps the mapping alive while tensors alias it.
type safeTensorsHandle struct {
	file    *safetensors.File
	tensors domain.TensorMap
}

func (h *safeTensorsHandle) Tensors() domain.TensorMap {
	return h.tensors
}

func (h *safeTensorsHandle) Metadata() map[string]string {
	return h.file.Metadata()
}

func (h *safeTensorsHandle) Close() error {
	h.tensors = nil
	return h.file.Close()
}
