// Package generator sequences the core primitives (directory copier,
// manifest merger, env upserter, toolchain) into complete projects, one
// orchestrator per framework. Orchestrators are thin composition layers:
// every step runs to completion before the next begins, and only the
// orchestrator decides which failures are fatal to the run.
package generator

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/stackforge/stackforge/internal/config"
	"github.com/stackforge/stackforge/internal/manifest"
	"github.com/stackforge/stackforge/internal/toolchain"
	"github.com/stackforge/stackforge/internal/ui"
)

// Result summarizes the outcome of a generation run.
type Result struct {
	// CreatedDirs and CreatedFiles are paths relative to the project
	// directory, for reporting and tests.
	CreatedDirs  []string
	CreatedFiles []string

	// Warnings collects non-fatal step failures (install, git setup).
	Warnings []string
}

// Generator materializes a project from a resolved ProjectConfig.
type Generator interface {
	Generate(ctx context.Context, cfg *config.ProjectConfig) (*Result, error)
}

// runner carries the shared collaborators every orchestrator needs.
type runner struct {
	templates fs.FS
	logger    *slog.Logger
	reporter  ui.Reporter
	tools     *toolchain.Runner
	merger    *manifest.Merger
}

// Option configures the shared runner.
type Option func(*runner)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *runner) { r.logger = logger }
}

// WithReporter sets the progress reporter.
func WithReporter(rep ui.Reporter) Option {
	return func(r *runner) { r.reporter = rep }
}

// WithToolchain sets the external-command runner.
func WithToolchain(t *toolchain.Runner) Option {
	return func(r *runner) { r.tools = t }
}

// New returns the Generator for cfg.Type. templates is the template corpus
// root (in production the embedded FS; in tests a fstest.MapFS).
func New(cfg *config.ProjectConfig, templates fs.FS, opts ...Option) (Generator, error) {
	r := &runner{templates: templates}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.reporter == nil {
		r.reporter = ui.NewHeadlessReporter(io.Discard)
	}
	if r.tools == nil {
		r.tools = toolchain.NewRunner(r.logger)
	}
	r.merger = manifest.NewMerger(r.logger)

	switch cfg.Type {
	case config.TypeNextJS:
		return &nextjsGenerator{runner: r}, nil
	case config.TypeExpo:
		return &expoGenerator{runner: r}, nil
	case config.TypeTauri:
		return &tauriGenerator{runner: r}, nil
	case config.TypeFlutter:
		return &flutterGenerator{runner: r}, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidProjectType, cfg.Type)
	}
}

// warnf records a non-fatal step failure on the result and the log.
func (r *runner) warnf(result *Result, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	result.Warnings = append(result.Warnings, msg)
	r.reporter.Warn("%s", msg)
	r.logger.Warn(msg)
}
