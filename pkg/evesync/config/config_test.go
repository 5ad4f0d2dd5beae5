package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps Load away from the developer's own config and .env files.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "settings_", cfg.ProfilePrefix)
	assert.Equal(t, []string{"Tranquility", "Thunderdome"}, []string{cfg.Servers[0].Name, cfg.Servers[1].Name})
	assert.Equal(t, "_tq_tranquility", cfg.CoreServers()[0].Suffix)
	assert.True(t, strings.HasSuffix(cfg.Root, filepath.Join("AppData", "Local", "CCP", "EVE")), cfg.Root)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty root", func(c *Config) { c.Root = " " }},
		{"no workers", func(c *Config) { c.StatWorkers = 0 }},
		{"no servers", func(c *Config) { c.Servers = nil }},
		{"missing suffix", func(c *Config) { c.Servers[0].Suffix = "" }},
		{"duplicate name", func(c *Config) { c.Servers[1].Name = c.Servers[0].Name }},
		{"duplicate suffix", func(c *Config) { c.Servers[1].Suffix = c.Servers[0].Suffix }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(NewViper(), "", "")
	require.NoError(t, err)
	assert.Equal(t, DfltLogLevel, cfg.LogLevel)
	assert.Equal(t, DfltStatWorkers, cfg.StatWorkers)
	assert.Len(t, cfg.Servers, 2)
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "evesync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
root: /games/eve
profile_prefix: profile_
stat_workers: 2
servers:
  - name: Singularity
    suffix: _sisi_singularity
`), 0644))

	cfg, err := Load(NewViper(), path, "")
	require.NoError(t, err)
	assert.Equal(t, "/games/eve", cfg.Root)
	assert.Equal(t, "profile_", cfg.ProfilePrefix)
	assert.Equal(t, 2, cfg.StatWorkers)
	assert.Equal(t, []ServerConfig{{Name: "Singularity", Suffix: "_sisi_singularity"}}, cfg.Servers)
	assert.Equal(t, DfltTimeFormat, cfg.TimeFormat)
}

func TestLoadDefaultConfigDir(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "evesync"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "evesync", "config.yaml"), []byte("log_level: debug\n"), 0644))

	cfg, err := Load(NewViper(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "evesync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: /from/file\n"), 0644))
	t.Setenv("EVESYNC_ROOT", "/from/env")

	cfg, err := Load(NewViper(), path, "")
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Root)
}

func TestLoadEnvFile(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, "evesync.env")
	require.NoError(t, os.WriteFile(envFile, []byte("EVESYNC_TIME_FORMAT=02.01.2006 15:04\n"), 0644))
	t.Setenv("EVESYNC_TIME_FORMAT", "")
	require.NoError(t, os.Unsetenv("EVESYNC_TIME_FORMAT"))

	cfg, err := Load(NewViper(), "", envFile)
	require.NoError(t, err)
	assert.Equal(t, "02.01.2006 15:04", cfg.TimeFormat)
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(NewViper(), filepath.Join(dir, "missing.yaml"), "")
	assert.Error(t, err)

	_, err = Load(NewViper(), "", filepath.Join(dir, "missing.env"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("stat_workers: -1\n"), 0644))
	_, err = Load(NewViper(), bad, "")
	assert.ErrorContains(t, err, "stat_workers")
}
