package ports

import (
	"context"

	"github.com/bft-labs/shardmerge/internal/domain"
)

// ModelStore persists the merged model.
type ModelStore interface {
	// Exists reports whether a file is already present at path.
	Exists(path string) (bool, error)

	// Save writes the model to path and returns the number of bytes written.
	// The implementation should write atomically (temp file, then rename)
	// so a failed save never leaves a partial file at path.
	Save(ctx context.Context, path string, model *domain.Model) (int64, error)
}
