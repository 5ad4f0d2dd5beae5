package filesystem

import (
	"io/fs"
	"sync"
	"testing/fstest"
	"time"
)

// TestFileSystem extends fstest.MapFS to implement our FileSystem interface.
// Individual operations can be made to fail per path, which lets tests
// exercise unreadable metadata and failed writes without touching the disk.
type TestFileSystem struct {
	fstest.MapFS

	mu           sync.Mutex
	statErrors   map[string]error
	readErrors   map[string]error
	writeErrors  map[string]error
	readDirError map[string]error
	writes       []string
}

// NewTestFileSystem creates a new test filesystem based on fstest.MapFS
func NewTestFileSystem() *TestFileSystem {
	return NewTestFileSystemFromMap(make(fstest.MapFS))
}

// NewTestFileSystemFromMap creates a test filesystem from an existing map
func NewTestFileSystemFromMap(files map[string]*fstest.MapFile) *TestFileSystem {
	return &TestFileSystem{
		MapFS:        files,
		statErrors:   make(map[string]error),
		readErrors:   make(map[string]error),
		writeErrors:  make(map[string]error),
		readDirError: make(map[string]error),
	}
}

// AddFile registers a regular file with the given content and modification time.
func (tfs *TestFileSystem) AddFile(name string, data []byte, modTime time.Time) {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	tfs.MapFS[name] = &fstest.MapFile{Data: data, Mode: 0644, ModTime: modTime}
}

// AddDir registers an explicit, possibly empty, directory.
func (tfs *TestFileSystem) AddDir(name string) {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	tfs.MapFS[name] = &fstest.MapFile{Mode: fs.ModeDir | 0755}
}

// FailStat makes Stat on name return err.
func (tfs *TestFileSystem) FailStat(name string, err error) {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	tfs.statErrors[name] = err
}

// FailRead makes ReadFile on name return err.
func (tfs *TestFileSystem) FailRead(name string, err error) {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	tfs.readErrors[name] = err
}

// FailWrite makes WriteFile on name return err without writing.
func (tfs *TestFileSystem) FailWrite(name string, err error) {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	tfs.writeErrors[name] = err
}

// FailReadDir makes ReadDir on name return err.
func (tfs *TestFileSystem) FailReadDir(name string, err error) {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	tfs.readDirError[name] = err
}

// Writes returns the names passed to successful WriteFile calls, in order.
func (tfs *TestFileSystem) Writes() []string {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	out := make([]string, len(tfs.writes))
	copy(out, tfs.writes)
	return out
}

// Stat implements fs.StatFS
func (tfs *TestFileSystem) Stat(name string) (fs.FileInfo, error) {
	if err := tfs.injected(tfs.statErrors, name); err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	return tfs.MapFS.Stat(name)
}

// ReadFile implements fs.ReadFileFS
func (tfs *TestFileSystem) ReadFile(name string) ([]byte, error) {
	if err := tfs.injected(tfs.readErrors, name); err != nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	return tfs.MapFS.ReadFile(name)
}

// ReadDir implements fs.ReadDirFS
func (tfs *TestFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := tfs.injected(tfs.readDirError, name); err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: err}
	}
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	return tfs.MapFS.ReadDir(name)
}

// WriteFile implements WriteFS for testing
func (tfs *TestFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "writefile", Path: name, Err: fs.ErrInvalid}
	}
	if err := tfs.injected(tfs.writeErrors, name); err != nil {
		return &fs.PathError{Op: "writefile", Path: name, Err: err}
	}
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	tfs.MapFS[name] = &fstest.MapFile{
		Data:    buf,
		Mode:    perm,
		ModTime: time.Now(),
	}
	tfs.writes = append(tfs.writes, name)
	return nil
}

func (tfs *TestFileSystem) injected(errs map[string]error, name string) error {
	tfs.mu.Lock()
	defer tfs.mu.Unlock()
	return errs[name]
}
