// Package config loads evesync settings from flags, environment variables,
// an optional .env file and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/evesync/pkg/evesync/core"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix         = "EVESYNC"
	DfltProfilePrefix = "settings_"
	DfltTimeFormat    = "2006-01-02 15:04:05"
	DfltStatWorkers   = 8
	DfltLogLevel      = "warn"
	DfltEnvFile       = ".env"
	configName        = "config"
	configType        = "yaml"
	configDirName     = "evesync"
	tranquilitySuffix = "_tq_tranquility"
	thunderdomeSuffix = "_thunderdome_thunderdome"
)

// ServerConfig names a server and the suffix of its settings directory.
type ServerConfig struct {
	Name   string `mapstructure:"name"`
	Suffix string `mapstructure:"suffix"`
}

// Config is the resolved configuration of one evesync process.
type Config struct {
	Root          string         `mapstructure:"root"`
	LogLevel      string         `mapstructure:"log_level"`
	ProfilePrefix string         `mapstructure:"profile_prefix"`
	TimeFormat    string         `mapstructure:"time_format"`
	StatWorkers   int            `mapstructure:"stat_workers"`
	Servers       []ServerConfig `mapstructure:"servers"`
}

// DefaultRoot returns the client's settings root under the user's home.
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, "AppData", "Local", "CCP", "EVE")
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Root:          DefaultRoot(),
		LogLevel:      DfltLogLevel,
		ProfilePrefix: DfltProfilePrefix,
		TimeFormat:    DfltTimeFormat,
		StatWorkers:   DfltStatWorkers,
		Servers: []ServerConfig{
			{Name: "Tranquility", Suffix: tranquilitySuffix},
			{Name: "Thunderdome", Suffix: thunderdomeSuffix},
		},
	}
}

// Validate checks the configuration for values no component can work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return errors.New("root must not be empty")
	}
	if c.StatWorkers <= 0 {
		return fmt.Errorf("stat_workers must be positive, got %d", c.StatWorkers)
	}
	if len(c.Servers) == 0 {
		return errors.New("at least one server must be configured")
	}
	names := make(map[string]bool, len(c.Servers))
	suffixes := make(map[string]bool, len(c.Servers))
	for i, s := range c.Servers {
		if s.Name == "" || s.Suffix == "" {
			return fmt.Errorf("server #%d needs both a name and a suffix", i+1)
		}
		if names[s.Name] {
			return fmt.Errorf("duplicate server name %q", s.Name)
		}
		if suffixes[s.Suffix] {
			return fmt.Errorf("duplicate server suffix %q", s.Suffix)
		}
		names[s.Name] = true
		suffixes[s.Suffix] = true
	}
	return nil
}

// CoreServers converts the configured servers to core.Server values.
func (c *Config) CoreServers() []core.Server {
	out := make([]core.Server, 0, len(c.Servers))
	for _, s := range c.Servers {
		out = append(out, core.Server{Name: s.Name, Suffix: s.Suffix})
	}
	return out
}

// NewViper returns a viper instance with evesync defaults and environment
// binding. Flags are bound by the caller.
func NewViper() *viper.Viper {
	dflt := Default()
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	v.SetDefault("root", dflt.Root)
	v.SetDefault("log_level", dflt.LogLevel)
	v.SetDefault("profile_prefix", dflt.ProfilePrefix)
	v.SetDefault("time_format", dflt.TimeFormat)
	v.SetDefault("stat_workers", dflt.StatWorkers)
	return v
}

// DefaultConfigDir returns the directory searched for config.yaml.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configDirName)
}

// Load reads envFile and configFile into v and returns the validated
// configuration. Empty names fall back to ./.env and the default config
// directory, both of which may be absent.
func Load(v *viper.Viper, configFile, envFile string) (*Config, error) {
	if err := loadEnv(envFile); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else if dir := DefaultConfigDir(); dir != "" {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := Default()
	if v.IsSet("servers") {
		cfg.Servers = nil
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
		return nil
	}
	if _, err := os.Stat(DfltEnvFile); err != nil {
		return nil
	}
	if err := godotenv.Load(DfltEnvFile); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", DfltEnvFile, err)
	}
	return nil
}
