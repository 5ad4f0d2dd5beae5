// Package resolver finds the per-server settings directories under the
// installation root by matching directory name suffixes.
package resolver

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/evesync/pkg/evesync/core"
	"github.com/arthur-debert/evesync/pkg/evesync/filesystem"
	"github.com/rs/zerolog"
)

// Dir is a resolved server directory.
type Dir struct {
	// Name is the directory name relative to the installation root.
	Name string
	// Path is the host path of the directory.
	Path string
}

// Resolver looks up server directories directly under root.
type Resolver struct {
	fsys   filesystem.ReadFS
	root   string
	logger zerolog.Logger
}

// New creates a resolver over fsys, whose names are relative to root.
func New(fsys filesystem.ReadFS, root string, logger zerolog.Logger) *Resolver {
	return &Resolver{fsys: fsys, root: root, logger: logger}
}

// ResolveDir returns the single directory under the root whose name ends
// with suffix. Files are never matched; links are followed.
func (r *Resolver) ResolveDir(suffix string) (Dir, error) {
	entries, err := r.fsys.ReadDir(".")
	if err != nil {
		return Dir{}, &core.DirectoryNotFoundError{Root: r.root, Suffix: suffix, Cause: err}
	}

	var matches []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), suffix) && r.isDir(entry) {
			matches = append(matches, entry.Name())
		}
	}

	switch len(matches) {
	case 0:
		return Dir{}, &core.DirectoryNotFoundError{Root: r.root, Suffix: suffix}
	case 1:
		name := matches[0]
		return Dir{Name: name, Path: filepath.Join(r.root, name)}, nil
	default:
		sort.Strings(matches)
		return Dir{}, &core.AmbiguousDirectoryError{Root: r.root, Suffix: suffix, Matches: matches}
	}
}

// isDir reports whether entry is a directory, or a link or junction that
// leads to one.
func (r *Resolver) isDir(entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 && entry.Type()&fs.ModeIrregular == 0 {
		return false
	}
	info, err := r.fsys.Stat(entry.Name())
	if err != nil {
		r.logger.Debug().Err(err).Str("entry", entry.Name()).Msg("skipping dangling link")
		return false
	}
	return info.IsDir()
}

// ResolveServers resolves every server and stops at the first one that
// cannot be found.
func (r *Resolver) ResolveServers(servers []core.Server) (*Layout, error) {
	layout := &Layout{
		root: r.root,
		dirs: make(map[string]Dir, len(servers)),
	}
	for _, server := range servers {
		dir, err := r.ResolveDir(server.Suffix)
		if err != nil {
			return nil, fmt.Errorf("server %s: %w", server.Name, err)
		}
		r.logger.Debug().
			Str("server", server.Name).
			Str("dir", dir.Path).
			Msg("resolved server directory")
		layout.dirs[server.Name] = dir
		layout.order = append(layout.order, server.Name)
	}
	return layout, nil
}

// Layout maps server names to their resolved directories. It is built once
// at startup and read-only afterwards.
type Layout struct {
	root  string
	dirs  map[string]Dir
	order []string
}

// Root returns the installation root the layout was resolved under.
func (l *Layout) Root() string {
	return l.root
}

// Servers returns the server names in configuration order.
func (l *Layout) Servers() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Dir returns the resolved directory of server.
func (l *Layout) Dir(server string) (Dir, error) {
	dir, ok := l.dirs[server]
	if !ok {
		return Dir{}, &core.UnknownServerError{Name: server, Known: l.Servers()}
	}
	return dir, nil
}

// ProfileDir returns the fs name of a profile directory under server.
// The profile must be a single path element.
func (l *Layout) ProfileDir(server, profile string) (string, error) {
	dir, err := l.Dir(server)
	if err != nil {
		return "", err
	}
	if profile == "" || profile == "." || profile == ".." || strings.ContainsAny(profile, `/\`) {
		return "", fmt.Errorf("%w: profile %q", core.ErrInvalidSelection, profile)
	}
	return path.Join(dir.Name, profile), nil
}
