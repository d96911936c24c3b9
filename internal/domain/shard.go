package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// IndexWidth is the zero-padded width of the shard index and total fields.
const IndexWidth = 5

// shardSuffix matches "-NNNNN-of-NNNNN" and captures the index and total.
var shardSuffix = regexp.MustCompile(`^(.*?)-(\d{5})-of-(\d{5})`)

// Shard is one file of a numbered shard set, e.g.
// "model-00002-of-00003.safetensors".
type Shard struct {
	// Dir is the directory holding the shard.
	Dir string

	// Name is the base filename.
	Name string

	// Prefix is the filename up to the first hyphen.
	Prefix string

	// Index is the 1-based shard number, 0 when the name carries none.
	Index int

	// Total is the declared shard count, 0 when the name carries none.
	Total int

	// Ext is the filename extension including the dot.
	Ext string
}

// ParseShard splits a shard path into its naming attributes. Names without
// a "-NNNNN-of-NNNNN" field parse with zero Index and Total.
func ParseShard(path string) Shard {
	dir, name := filepath.Split(path)
	if dir != "" {
		dir = filepath.Clean(dir)
	}
	s := Shard{
		Dir:    dir,
		Name:   name,
		Prefix: ShardPrefix(name),
		Ext:    filepath.Ext(name),
	}
	if m := shardSuffix.FindStringSubmatch(name); m != nil {
		s.Index, _ = strconv.Atoi(m[2])
		s.Total, _ = strconv.Atoi(m[3])
	}
	return s
}

// Path returns the shard's full path.
func (s Shard) Path() string {
	if s.Dir == "" {
		return s.Name
	}
	return filepath.Join(s.Dir, s.Name)
}

// String implements fmt.Stringer.
func (s Shard) String() string {
	if s.Total > 0 {
		return fmt.Sprintf("%d/%d %s", s.Index, s.Total, s.Path())
	}
	return s.Path()
}

// ShardPrefix returns the filename up to the first hyphen, or the whole
// name when it has none.
func ShardPrefix(name string) string {
	prefix, _, _ := strings.Cut(name, "-")
	return prefix
}

// FormatIndex zero-pads a shard number to IndexWidth digits.
func FormatIndex(i int) string {
	return fmt.Sprintf("%0*d", IndexWidth, i)
}
