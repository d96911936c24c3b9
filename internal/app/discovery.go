package app

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bft-labs/shardmerge/internal/domain"
	"github.com/bft-labs/shardmerge/internal/ports"
)

// DiscoverShards returns every sibling of firstShard that belongs to the
// same shard set, sorted by path.
//
// The prefix is the first shard's filename up to its first hyphen. Starting
// at index 1, names matching "<prefix>-<NNNNN>-of-*<ext>" are collected;
// discovery stops at the first index with no match, so shard numbering must
// be contiguous. When firstShard has no directory component, cwd is listed.
func DiscoverShards(lister ports.DirLister, firstShard, cwd string) ([]domain.Shard, error) {
	first := domain.ParseShard(firstShard)

	dir := first.Dir
	if dir == "" {
		dir = cwd
	}
	if dir == "" {
		dir = "."
	}

	names, err := lister.ListDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNoShards, err)
	}

	var shards []domain.Shard
	for i := 1; ; i++ {
		pattern := shardPattern(first.Prefix, i, first.Ext)
		matched := 0
		for _, name := range names {
			if ok, _ := path.Match(pattern, name); ok {
				shards = append(shards, domain.ParseShard(filepath.Join(dir, name)))
				matched++
			}
		}
		if matched == 0 {
			break
		}
	}

	if len(shards) == 0 {
		return nil, fmt.Errorf("%w for %s", domain.ErrNoShards, firstShard)
	}

	sort.Slice(shards, func(i, j int) bool {
		return shards[i].Path() < shards[j].Path()
	})
	return shards, nil
}

// shardPattern builds the glob for shard number i.
func shardPattern(prefix string, i int, ext string) string {
	return escapeGlob(prefix) + "-" + domain.FormatIndex(i) + "-of-*" + escapeGlob(ext)
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`)

// escapeGlob quotes path.Match metacharacters so s matches literally.
func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}
