package evesync_test

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/evesync/pkg/evesync"
	"github.com/arthur-debert/evesync/pkg/evesync/config"
	"github.com/arthur-debert/evesync/pkg/evesync/core"
	"github.com/arthur-debert/evesync/pkg/evesync/filesystem"
	"github.com/arthur-debert/evesync/pkg/evesync/transfer"
)

const (
	tqDir = "XYZ_tq_tranquility"
	tdDir = "XYZ_thunderdome_thunderdome"
)

func writeFile(t *testing.T, name string, data string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0755))
	require.NoError(t, os.WriteFile(name, []byte(data), 0644))
	require.NoError(t, os.Chtimes(name, mtime, mtime))
}

// newInstall lays out a client settings root on disk and opens a Service on it.
func newInstall(t *testing.T) (string, *evesync.Service, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	mtime := time.Date(2024, 5, 17, 21, 4, 5, 0, time.Local)

	writeFile(t, filepath.Join(root, tqDir, "settings_Default", "core_user_1000.dat"), "tq account", mtime)
	writeFile(t, filepath.Join(root, tqDir, "settings_Default", "core_char_2000.dat"), "tq character", mtime)
	writeFile(t, filepath.Join(root, tqDir, "settings_Default", "prefs.ini"), "[default]\nwindowMode=1", mtime)
	require.NoError(t, os.MkdirAll(filepath.Join(root, tqDir, "cache"), 0755))
	writeFile(t, filepath.Join(root, tdDir, "settings_Test", "core_user_3000.dat"), "td account", mtime)
	writeFile(t, filepath.Join(root, tdDir, "settings_Test", "core_char_4000.dat"), "td character", mtime)

	cfg := config.Default()
	cfg.Root = root

	var logs bytes.Buffer
	svc, err := evesync.Open(cfg, evesync.NewLogger(&logs, zerolog.DebugLevel))
	require.NoError(t, err)
	return root, svc, &logs
}

func TestServiceQueries(t *testing.T) {
	_, svc, _ := newInstall(t)
	ctx := context.Background()

	assert.Equal(t, []string{"Tranquility", "Thunderdome"}, svc.Servers())

	profiles, err := svc.Profiles(ctx, "Tranquility")
	require.NoError(t, err)
	assert.Equal(t, []string{"settings_Default"}, profiles)

	accounts, err := svc.Accounts(ctx, "Tranquility", "settings_Default")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "1000", accounts[0].ID)
	assert.Equal(t, "1000 - 2024-05-17 21:04:05", accounts[0].Label)

	characters, err := svc.Characters(ctx, "Tranquility", "settings_Default")
	require.NoError(t, err)
	require.Len(t, characters, 1)
	assert.Equal(t, "2000", characters[0].ID)

	_, err = svc.Profiles(ctx, "Singularity")
	assert.ErrorIs(t, err, core.ErrUnknownServer)
}

func TestServiceMissingProfileListsNothing(t *testing.T) {
	_, svc, logs := newInstall(t)

	accounts, err := svc.Accounts(context.Background(), "Tranquility", "settings_Gone")
	require.NoError(t, err)
	assert.Empty(t, accounts)
	assert.Contains(t, logs.String(), "listing saves failed")
}

func TestServiceCopy(t *testing.T) {
	root, svc, logs := newInstall(t)

	from := core.Selection{Server: "Tranquility", Profile: "settings_Default", Account: "1000", Character: "2000"}
	to := core.Selection{Server: "Thunderdome", Profile: "settings_Test", Account: "3000", Character: "4000"}

	result, err := svc.Copy(context.Background(), from, to)
	require.NoError(t, err)
	assert.True(t, result.Success)

	for src, dst := range map[string]string{
		filepath.Join(root, tqDir, "settings_Default", "core_user_1000.dat"): filepath.Join(root, tdDir, "settings_Test", "core_user_3000.dat"),
		filepath.Join(root, tqDir, "settings_Default", "core_char_2000.dat"): filepath.Join(root, tdDir, "settings_Test", "core_char_4000.dat"),
	} {
		want, err := os.ReadFile(src)
		require.NoError(t, err)
		got, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Contains(t, logs.String(), result.RequestID)
}

func TestServiceCopyDryRun(t *testing.T) {
	root, svc, _ := newInstall(t)

	from := core.Selection{Server: "Tranquility", Profile: "settings_Default", Account: "1000", Character: "2000"}
	to := core.Selection{Server: "Thunderdome", Profile: "settings_Test", Account: "3000", Character: "4000"}

	result, err := svc.Copy(context.Background(), from, to, transfer.WithDryRun(true))
	require.NoError(t, err)
	assert.True(t, result.DryRun)

	data, err := os.ReadFile(filepath.Join(root, tdDir, "settings_Test", "core_user_3000.dat"))
	require.NoError(t, err)
	assert.Equal(t, "td account", string(data))
}

func TestServiceCopyIncomplete(t *testing.T) {
	_, svc, _ := newInstall(t)

	from := core.Selection{Server: "Tranquility", Profile: "settings_Default", Account: "1000"}
	to := core.Selection{Server: "Thunderdome", Profile: "settings_Test", Account: "3000", Character: "4000"}

	result, err := svc.Copy(context.Background(), from, to)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, core.ErrIncompleteSelection)
}

func TestServiceBrackets(t *testing.T) {
	root, svc, _ := newInstall(t)
	ctx := context.Background()
	prefsFile := filepath.Join(root, tqDir, "settings_Default", "prefs.ini")
	original, err := os.ReadFile(prefsFile)
	require.NoError(t, err)

	on, err := svc.BracketsEnabled(ctx, "Tranquility", "settings_Default")
	require.NoError(t, err)
	assert.False(t, on)

	on, err = svc.ToggleBrackets(ctx, "Tranquility", "settings_Default")
	require.NoError(t, err)
	assert.True(t, on)

	on, err = svc.ToggleBrackets(ctx, "Tranquility", "settings_Default")
	require.NoError(t, err)
	assert.False(t, on)

	after, err := os.ReadFile(prefsFile)
	require.NoError(t, err)
	assert.Equal(t, original, after)

	_, err = svc.BracketsEnabled(ctx, "Thunderdome", "settings_Test")
	assert.ErrorIs(t, err, core.ErrPreferenceUnreadable)
}

func TestOpenFailsWithoutServerDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, tqDir), 0755))

	cfg := config.Default()
	cfg.Root = root
	svc, err := evesync.Open(cfg, zerolog.Nop())
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, core.ErrDirectoryNotFound)
	assert.True(t, strings.Contains(err.Error(), "_thunderdome_thunderdome"))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Servers = nil
	_, err := evesync.New(cfg, filesystem.NewTestFileSystem(), zerolog.Nop())
	assert.ErrorContains(t, err, "invalid config")
}

func TestServiceUnreadableServerDirectory(t *testing.T) {
	testFS := filesystem.NewTestFileSystem()
	testFS.AddDir(tqDir)
	testFS.AddDir(tdDir)
	testFS.FailReadDir(tdDir, fs.ErrPermission)

	var logs bytes.Buffer
	cfg := config.Default()
	cfg.Root = "/eve"
	svc, err := evesync.New(cfg, testFS, zerolog.New(&logs))
	require.NoError(t, err)

	profiles, err := svc.Profiles(context.Background(), "Thunderdome")
	require.NoError(t, err)
	assert.Empty(t, profiles)
	assert.Contains(t, logs.String(), "listing profiles failed")
}

func TestServiceUnreadableSaveMetadata(t *testing.T) {
	testFS := filesystem.NewTestFileSystem()
	mtime := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	testFS.AddFile(tqDir+"/settings_Default/core_char_1.dat", nil, mtime)
	testFS.AddFile(tqDir+"/settings_Default/core_char_2.dat", nil, mtime)
	testFS.AddDir(tdDir)
	testFS.FailStat(tqDir+"/settings_Default/core_char_1.dat", fs.ErrPermission)

	cfg := config.Default()
	cfg.Root = "/eve"
	svc, err := evesync.New(cfg, testFS, zerolog.Nop())
	require.NoError(t, err)

	characters, err := svc.Characters(context.Background(), "Tranquility", "settings_Default")
	require.NoError(t, err)
	require.Len(t, characters, 2)
	assert.Equal(t, "1 - Unknown", characters[0].Label)
	assert.Equal(t, "2 - 2024-01-02 03:04:05", characters[1].Label)
}
