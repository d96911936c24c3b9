package app

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/shardmerge/internal/domain"
)

func shardNames(shards []domain.Shard) []string {
	names := make([]string, len(shards))
	for i, s := range shards {
		names[i] = s.Name
	}
	return names
}

func TestDiscoverShards(t *testing.T) {
	tests := []struct {
		name  string
		first string
		files []string
		want  []string
	}{
		{
			name:  "listing order does not matter",
			first: "models/m-00001-of-00003.safetensors",
			files: []string{
				"m-00003-of-00003.safetensors",
				"notes.txt",
				"m-00001-of-00003.safetensors",
				"m-00002-of-00003.safetensors",
			},
			want: []string{
				"m-00001-of-00003.safetensors",
				"m-00002-of-00003.safetensors",
				"m-00003-of-00003.safetensors",
			},
		},
		{
			name:  "stops at first gap",
			first: "models/m-00001-of-00004.safetensors",
			files: []string{
				"m-00001-of-00004.safetensors",
				"m-00002-of-00004.safetensors",
				"m-00004-of-00004.safetensors",
			},
			want: []string{
				"m-00001-of-00004.safetensors",
				"m-00002-of-00004.safetensors",
			},
		},
		{
			name:  "other extensions and prefixes are ignored",
			first: "models/m-00001-of-00002.safetensors",
			files: []string{
				"m-00001-of-00002.safetensors",
				"m-00002-of-00002.bin",
				"x-00002-of-00002.safetensors",
				"m-00002-of-00002.safetensors",
			},
			want: []string{
				"m-00001-of-00002.safetensors",
				"m-00002-of-00002.safetensors",
			},
		},
		{
			name:  "glob characters in prefix match literally",
			first: "models/m[1]-00001-of-00001.safetensors",
			files: []string{
				"m1-00001-of-00001.safetensors",
				"m[1]-00001-of-00001.safetensors",
			},
			want: []string{"m[1]-00001-of-00001.safetensors"},
		},
		{
			name:  "prefix stops at first hyphen",
			first: "models/diffusion_pytorch_model-00001-of-00002.safetensors",
			files: []string{
				"diffusion_pytorch_model-00002-of-00002.safetensors",
				"diffusion_pytorch_model-00001-of-00002.safetensors",
			},
			want: []string{
				"diffusion_pytorch_model-00001-of-00002.safetensors",
				"diffusion_pytorch_model-00002-of-00002.safetensors",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := &fakeLister{names: tt.files}
			shards, err := DiscoverShards(lister, tt.first, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, shardNames(shards))
			assert.Equal(t, []string{"models"}, lister.listed)
			for _, s := range shards {
				assert.Equal(t, filepath.Join("models", s.Name), s.Path())
			}
		})
	}
}

func TestDiscoverShards_BareNameUsesCwd(t *testing.T) {
	lister := &fakeLister{names: []string{"m-00001-of-00001.safetensors"}}
	shards, err := DiscoverShards(lister, "m-00001-of-00001.safetensors", "/work")
	require.NoError(t, err)
	require.Len(t, shards, 1)
	assert.Equal(t, []string{"/work"}, lister.listed)
	assert.Equal(t, filepath.Join("/work", "m-00001-of-00001.safetensors"), shards[0].Path())

	lister = &fakeLister{names: []string{"m-00001-of-00001.safetensors"}}
	_, err = DiscoverShards(lister, "m-00001-of-00001.safetensors", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"."}, lister.listed)
}

func TestDiscoverShards_NoShards(t *testing.T) {
	_, err := DiscoverShards(&fakeLister{names: []string{"m-00002-of-00002.safetensors"}},
		"models/m-00001-of-00002.safetensors", "")
	assert.ErrorIs(t, err, domain.ErrNoShards)

	listErr := errors.New("permission denied")
	_, err = DiscoverShards(&fakeLister{err: listErr}, "models/m-00001-of-00002.safetensors", "")
	assert.ErrorIs(t, err, domain.ErrNoShards)
	assert.ErrorIs(t, err, listErr)
}
