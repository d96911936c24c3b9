package ports

// DirLister lists the regular file names in a directory.
// Order is unspecified; callers sort as needed.
type DirLister interface {
	ListDir(dir string) ([]string, error)
}
