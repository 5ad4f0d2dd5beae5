package filesystem

import (
	"io/fs"
)

// ReadFS is the read side used by the resolver and the enumerators.
// Names are slash-separated and relative to the installation root, as in io/fs.
type ReadFS interface {
	fs.ReadDirFS
	fs.StatFS
	fs.ReadFileFS
}

// WriteFS defines the interface for write operations on a file system.
type WriteFS interface {
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

// FileSystem combines read and write operations.
type FileSystem interface {
	ReadFS
	WriteFS
}
