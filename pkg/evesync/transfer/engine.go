package transfer

import (
	"context"
	"io/fs"
	"path"
	"time"

	"github.com/arthur-debert/evesync/pkg/evesync/core"
	"github.com/arthur-debert/evesync/pkg/evesync/filesystem"
	"github.com/rs/zerolog"
)

// StepResult holds the outcome of a single copy step.
type StepResult struct {
	Step     Step
	Status   core.StepStatus
	Error    error
	Bytes    int
	Duration time.Duration
}

// Result holds the outcome of a transfer.
type Result struct {
	RequestID string
	DryRun    bool
	Success   bool
	Steps     []StepResult
	Duration  time.Duration
}

// Partial reports whether some steps wrote their file and a later one did not.
// The written files are left in place.
func (r *Result) Partial() bool {
	succeeded, incomplete := false, false
	for _, s := range r.Steps {
		switch s.Status {
		case core.StatusSuccess:
			succeeded = true
		case core.StatusFailed, core.StatusSkipped:
			incomplete = true
		}
	}
	return succeeded && incomplete
}

// Engine executes transfer requests.
type Engine struct {
	logger zerolog.Logger
	dryRun bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithDryRun checks the sources and reports the plan without writing.
func WithDryRun(dryRun bool) Option {
	return func(e *Engine) {
		e.dryRun = dryRun
	}
}

// WithLogger sets the engine's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine. The zero configuration logs nothing.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs the steps of req one after another. The first failure marks
// every later step skipped and is returned as a *core.CopyFailedError; steps
// that already succeeded are not undone. Destination files are overwritten.
func (e *Engine) Execute(ctx context.Context, fsys filesystem.FileSystem, req *Request) (*Result, error) {
	start := time.Now()
	result := &Result{RequestID: req.ID, DryRun: e.dryRun}
	logger := e.logger.With().Str("request", req.ID).Logger()

	steps, err := Plan(req)
	if err != nil {
		return result, err
	}

	var firstErr error
	for _, step := range steps {
		if firstErr == nil {
			if err := ctx.Err(); err != nil {
				firstErr = err
			}
		}
		if firstErr != nil {
			logger.Debug().Str("step", step.Name).Msg("skipping step")
			result.Steps = append(result.Steps, StepResult{Step: step, Status: core.StatusSkipped})
			continue
		}

		stepStart := time.Now()
		var n int
		if e.dryRun {
			err = checkStep(fsys, step)
		} else {
			n, err = copyFile(fsys, step)
		}
		sr := StepResult{Step: step, Bytes: n, Duration: time.Since(stepStart)}

		switch {
		case err != nil:
			sr.Status = core.StatusFailed
			sr.Error = err
			firstErr = err
			logger.Error().Err(err).Str("step", step.Name).Msg("copy step failed")
		case e.dryRun:
			sr.Status = core.StatusPlanned
			logger.Info().
				Str("step", step.Name).
				Str("src", step.Source).
				Str("dst", step.Destination).
				Msg("would copy")
		default:
			sr.Status = core.StatusSuccess
			logger.Info().
				Str("step", step.Name).
				Str("src", step.Source).
				Str("dst", step.Destination).
				Int("bytes", n).
				Msg("copied")
		}
		result.Steps = append(result.Steps, sr)
	}

	result.Duration = time.Since(start)
	result.Success = firstErr == nil
	return result, firstErr
}

func sourceInfo(fsys filesystem.ReadFS, step Step) (fs.FileInfo, error) {
	info, err := fsys.Stat(step.Source)
	if err != nil {
		return nil, copyFailed(step, step.Source, err)
	}
	if info.IsDir() {
		return nil, copyFailed(step, step.Source, &fs.PathError{Op: "copy", Path: step.Source, Err: fs.ErrInvalid})
	}
	return info, nil
}

// checkStep verifies what a copy needs without writing: a regular source file
// and an existing destination directory.
func checkStep(fsys filesystem.ReadFS, step Step) error {
	if _, err := sourceInfo(fsys, step); err != nil {
		return err
	}
	dir := path.Dir(step.Destination)
	info, err := fsys.Stat(dir)
	if err != nil {
		return copyFailed(step, dir, err)
	}
	if !info.IsDir() {
		return copyFailed(step, dir, &fs.PathError{Op: "copy", Path: dir, Err: fs.ErrInvalid})
	}
	return nil
}

func copyFile(fsys filesystem.FileSystem, step Step) (int, error) {
	info, err := sourceInfo(fsys, step)
	if err != nil {
		return 0, err
	}
	data, err := fsys.ReadFile(step.Source)
	if err != nil {
		return 0, copyFailed(step, step.Source, err)
	}

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = 0644
	}
	if err := fsys.WriteFile(step.Destination, data, perm); err != nil {
		return 0, copyFailed(step, step.Destination, err)
	}
	return len(data), nil
}

func copyFailed(step Step, at string, cause error) error {
	return &core.CopyFailedError{
		Kind:        step.Kind,
		Source:      step.Source,
		Destination: step.Destination,
		Path:        at,
		Cause:       cause,
	}
}
