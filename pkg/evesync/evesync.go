// Package evesync copies EVE Online client settings between profiles.
//
// A Service is built once from a config.Config: the per-server settings
// directories are resolved at construction and the result is threaded
// through every query and mutation. Listing operations are best effort and
// degrade to empty or partial results, which are logged. Mutations (Copy,
// ToggleBrackets) return every failure to the caller.
package evesync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arthur-debert/evesync/pkg/evesync/config"
	"github.com/arthur-debert/evesync/pkg/evesync/core"
	"github.com/arthur-debert/evesync/pkg/evesync/filesystem"
	"github.com/arthur-debert/evesync/pkg/evesync/prefs"
	"github.com/arthur-debert/evesync/pkg/evesync/resolver"
	"github.com/arthur-debert/evesync/pkg/evesync/saves"
	"github.com/arthur-debert/evesync/pkg/evesync/transfer"
	"github.com/rs/zerolog"
)

// Service exposes the queries and mutations offered to a front end.
type Service struct {
	cfg    *config.Config
	fsys   filesystem.FileSystem
	layout *resolver.Layout
	logger zerolog.Logger
}

// Open resolves cfg.Root on the OS filesystem.
func Open(cfg *config.Config, logger zerolog.Logger) (*Service, error) {
	return New(cfg, filesystem.NewOSFileSystem(cfg.Root), logger)
}

// New validates cfg and resolves every configured server directory in fsys.
// A missing or ambiguous server directory is returned as an error and the
// Service must not be used.
func New(cfg *config.Config, fsys filesystem.FileSystem, logger zerolog.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	layout, err := resolver.New(fsys, cfg.Root, logger).ResolveServers(cfg.CoreServers())
	if err != nil {
		return nil, err
	}
	return &Service{
		cfg:    cfg,
		fsys:   fsys,
		layout: layout,
		logger: logger,
	}, nil
}

// Layout returns the resolved server directories.
func (s *Service) Layout() *resolver.Layout {
	return s.layout
}

// Servers lists the configured server names.
func (s *Service) Servers() []string {
	return s.layout.Servers()
}

// Profiles lists the profiles of server that carry the configured prefix.
// An unreadable server directory yields an empty list.
func (s *Service) Profiles(ctx context.Context, server string) ([]string, error) {
	dir, err := s.layout.Dir(server)
	if err != nil {
		return nil, err
	}
	names, err := saves.Profiles(s.fsys, dir.Name)
	if err != nil {
		s.logger.Warn().Err(err).Str("server", server).Msg("listing profiles failed")
		return []string{}, nil
	}
	return saves.FilterProfiles(names, s.cfg.ProfilePrefix), nil
}

// Accounts lists the account saves of a profile.
func (s *Service) Accounts(ctx context.Context, server, profile string) ([]saves.Save, error) {
	return s.list(ctx, server, profile, core.KindAccount)
}

// Characters lists the character saves of a profile.
func (s *Service) Characters(ctx context.Context, server, profile string) ([]saves.Save, error) {
	return s.list(ctx, server, profile, core.KindCharacter)
}

func (s *Service) list(ctx context.Context, server, profile string, kind core.SaveKind) ([]saves.Save, error) {
	dir, err := s.layout.ProfileDir(server, profile)
	if err != nil {
		return nil, err
	}
	list, err := saves.List(ctx, s.fsys, dir, kind, saves.Options{
		TimeFormat: s.cfg.TimeFormat,
		Location:   time.Local,
		Workers:    s.cfg.StatWorkers,
		Logger:     s.logger,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		s.logger.Warn().
			Err(err).
			Str("server", server).
			Str("profile", profile).
			Str("kind", kind.String()).
			Msg("listing saves failed")
		return []saves.Save{}, nil
	}
	return list, nil
}

// Copy copies the source account and character files over the destination
// ones. See transfer.Engine.Execute for the partial failure semantics.
func (s *Service) Copy(ctx context.Context, from, to core.Selection, opts ...transfer.Option) (*transfer.Result, error) {
	req, err := transfer.NewRequest(s.layout, from, to)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("request", req.ID).
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("starting transfer")

	opts = append([]transfer.Option{transfer.WithLogger(s.logger)}, opts...)
	return transfer.NewEngine(opts...).Execute(ctx, s.fsys, req)
}

// BracketsEnabled reports whether the profile always shows ship names on brackets.
func (s *Service) BracketsEnabled(ctx context.Context, server, profile string) (bool, error) {
	dir, err := s.layout.ProfileDir(server, profile)
	if err != nil {
		return false, err
	}
	return prefs.Enabled(s.fsys, prefs.Path(dir), prefs.BracketsLine)
}

// ToggleBrackets flips the bracket preference of the profile and returns
// the new state.
func (s *Service) ToggleBrackets(ctx context.Context, server, profile string) (bool, error) {
	dir, err := s.layout.ProfileDir(server, profile)
	if err != nil {
		return false, err
	}
	on, err := prefs.Toggle(s.fsys, prefs.Path(dir), prefs.BracketsLine)
	if err != nil {
		s.logger.Error().Err(err).Str("server", server).Str("profile", profile).Msg("toggling brackets failed")
		return false, err
	}
	s.logger.Info().Str("server", server).Str("profile", profile).Bool("enabled", on).Msg("toggled brackets")
	return on, nil
}
