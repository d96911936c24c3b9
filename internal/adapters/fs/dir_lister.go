package fs

import "os"

// DirLister implements ports.DirLister on the local file system.
type DirLister struct{}

// NewDirLister creates a new DirLister.
func NewDirLister() *DirLister {
	return &DirLister{}
}

// ListDir returns the names of the non-directory entries in dir.
func (DirLister) ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
