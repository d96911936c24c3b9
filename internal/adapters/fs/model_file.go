package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bft-labs/shardmerge/internal/domain"
	"github.com/bft-labs/shardmerge/pkg/safetensors"
)

// ModelFileStore implements ports.ModelStore with SafeTensors files.
type ModelFileStore struct {
	perm os.FileMode
}

// NewModelFileStore creates a store writing files with mode 0o644.
func NewModelFileStore() *ModelFileStore {
	return &ModelFileStore{perm: 0o644}
}

// Exists reports whether anything is present at path.
func (s *ModelFileStore) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Save writes the model atomically: a temp file in the destination
// directory is written, synced and then renamed over path.
func (s *ModelFileStore) Save(ctx context.Context, path string, model *domain.Model) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	tensors := make(map[string]safetensors.Tensor, len(model.Tensors))
	for name, t := range model.Tensors {
		tensors[name] = safetensors.Tensor{DType: safetensors.DType(t.DType), Shape: t.Shape, Data: t.Data}
	}

	n, err := safetensors.Write(tmp, tensors, model.Metadata)
	if err != nil {
		return n, err
	}
	if err := tmp.Chmod(s.perm); err != nil {
		return n, fmt.Errorf("chmod: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return n, fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return n, fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return n, fmt.Errorf("rename: %w", err)
	}
	committed = true
	return n, nil
}
