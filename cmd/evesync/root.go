package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/evesync/pkg/evesync"
	"github.com/arthur-debert/evesync/pkg/evesync/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// skipSetup marks commands that run without resolving the installation.
const skipSetup = "evesync/skip-setup"

// app carries what PersistentPreRunE builds for the subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
	envFile string
	verbose int

	cfg    *config.Config
	logger zerolog.Logger
	svc    *evesync.Service
}

// Execute builds the root command and runs it.
// This is called by main.main().
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{v: config.NewViper()}

	cmd := &cobra.Command{
		Use:   "evesync",
		Short: "Copy EVE Online client settings between profiles",
		Long: `evesync finds the Tranquility and Thunderdome settings directories of an
EVE Online installation, lists their profiles and the account and character
settings files in each, and copies an account/character pair from one
profile to another.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSetup] == "true" {
				return nil
			}
			return a.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/evesync/config.yaml)")
	flags.StringVar(&a.envFile, "env-file", "", "env file to load before reading EVESYNC_* variables (default is ./.env)")
	flags.String("root", config.DefaultRoot(), "EVE settings root containing the per-server directories")
	flags.String("log-level", config.DfltLogLevel, "log level (trace, debug, info, warn, error)")
	flags.String("profile-prefix", config.DfltProfilePrefix, "only list profiles starting with this prefix")
	flags.String("time-format", config.DfltTimeFormat, "Go time layout for modification times")
	flags.CountVarP(&a.verbose, "verbose", "v", "increase verbosity (overrides --log-level)")

	for key, name := range map[string]string{
		"root":           "root",
		"log_level":      "log-level",
		"profile_prefix": "profile-prefix",
		"time_format":    "time-format",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	cmd.AddCommand(newVersionCommand())
	cmd.AddCommand(newServersCommand(a))
	cmd.AddCommand(newProfilesCommand(a))
	cmd.AddCommand(newSavesCommand(a, "accounts"))
	cmd.AddCommand(newSavesCommand(a, "characters"))
	cmd.AddCommand(newCopyCommand(a))
	cmd.AddCommand(newBracketsCommand(a))

	return cmd
}

// setup loads the configuration and resolves the server directories. A
// missing server directory ends the process before any command runs.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.cfgFile, a.envFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger, err = evesync.NewCLILogger(cmd.ErrOrStderr(), a.verbose, cfg.LogLevel)
	if err != nil {
		return err
	}

	svc, err := evesync.Open(cfg, a.logger)
	if err != nil {
		return fmt.Errorf("missing folder in %s: %w", cfg.Root, err)
	}
	a.svc = svc
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version number",
		Long:        `Print the version number of evesync`,
		Annotations: map[string]string{skipSetup: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "evesync version %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
