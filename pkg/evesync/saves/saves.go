// Package saves enumerates profile directories and the account and
// character settings files inside them.
package saves

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/evesync/pkg/evesync/core"
	"github.com/arthur-debert/evesync/pkg/evesync/filesystem"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// UnknownLabel replaces the timestamp when a file's metadata cannot be read.
const UnknownLabel = "Unknown"

// DefaultTimeFormat is the layout used for modification time labels.
const DefaultTimeFormat = "2006-01-02 15:04:05"

// DefaultWorkers bounds concurrent stat calls within one listing.
const DefaultWorkers = 8

// Save is one account or character settings file.
type Save struct {
	Kind    core.SaveKind
	ID      string
	Name    string
	ModTime time.Time
	// Known is false when the modification time could not be read.
	Known bool
	Label string
}

// Options controls labelling and stat fan-out.
type Options struct {
	TimeFormat string
	Location   *time.Location
	Workers    int
	Logger     zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.TimeFormat == "" {
		o.TimeFormat = DefaultTimeFormat
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	return o
}

// Profiles returns the names of every directory directly under serverDir.
// No naming filter is applied; see FilterProfiles.
func Profiles(fsys filesystem.ReadFS, serverDir string) ([]string, error) {
	entries, err := fsys.ReadDir(serverDir)
	if err != nil {
		return nil, &core.ProfileListUnavailableError{Dir: serverDir, Cause: err}
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// FilterProfiles keeps names starting with prefix, sorted.
func FilterProfiles(names []string, prefix string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// List returns the saves of kind in profileDir, ordered by id. A file whose
// metadata cannot be read is still listed, labelled UnknownLabel.
func List(ctx context.Context, fsys filesystem.ReadFS, profileDir string, kind core.SaveKind, opts Options) ([]Save, error) {
	opts = opts.withDefaults()

	entries, err := fsys.ReadDir(profileDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s saves in %s: %w", kind, profileDir, err)
	}

	var names []SaveName
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parsed, ok := ParseSaveName(entry.Name())
		if !ok || parsed.Kind != kind {
			continue
		}
		names = append(names, parsed)
	}

	result := make([]Save, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, n := range names {
		i, n := i, n
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result[i] = stat(fsys, profileDir, n, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(result, func(a, b int) bool {
		return lessID(result[a].ID, result[b].ID)
	})
	return result, nil
}

func stat(fsys fs.StatFS, dir string, n SaveName, opts Options) Save {
	name := n.FileName()
	save := Save{Kind: n.Kind, ID: n.ID, Name: name}

	info, err := fsys.Stat(path.Join(dir, name))
	if err != nil {
		opts.Logger.Warn().
			Err(&core.MetadataUnavailableError{Path: path.Join(dir, name), Cause: err}).
			Str("kind", n.Kind.String()).
			Str("id", n.ID).
			Msg("using placeholder label")
		save.Label = fmt.Sprintf("%s - %s", n.ID, UnknownLabel)
		return save
	}

	save.Known = true
	save.ModTime = info.ModTime()
	save.Label = fmt.Sprintf("%s - %s", n.ID, save.ModTime.In(opts.Location).Format(opts.TimeFormat))
	return save
}

// lessID orders purely numeric ids by value without parsing them, since ids
// can exceed the int64 range.
func lessID(a, b string) bool {
	ta, tb := strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		return len(ta) < len(tb)
	}
	if ta != tb {
		return ta < tb
	}
	return a < b
}
