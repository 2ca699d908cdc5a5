// Package toolchain shells out to external developer tools: package-manager
// detection and version gating, dependency installation, and git setup.
// Commands run as blocking child processes; callers decide which failures
// are fatal.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// MinPnpmVersion is the oldest pnpm able to produce the workspace layout.
const MinPnpmVersion = "8.0.0"

// Sentinel errors for tool checks.
var (
	// ErrToolNotFound indicates the executable is not on PATH.
	ErrToolNotFound = errors.New("toolchain: tool not found")

	// ErrVersionTooOld indicates the detected tool version is below the minimum.
	ErrVersionTooOld = errors.New("toolchain: version too old")
)

// Runner executes toolchain commands. The zero value is not usable; use
// NewRunner.
type Runner struct {
	logger *slog.Logger

	// lookPath is swappable for tests.
	lookPath func(string) (string, error)
}

// NewRunner creates a Runner. A nil logger discards output.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{logger: logger, lookPath: exec.LookPath}
}

// Detect reports whether the named tool is available on PATH.
func (r *Runner) Detect(name string) bool {
	_, err := r.lookPath(name)
	return err == nil
}

// PnpmVersion returns the installed pnpm version string.
func (r *Runner) PnpmVersion(ctx context.Context) (string, error) {
	if !r.Detect("pnpm") {
		return "", fmt.Errorf("%w: pnpm", ErrToolNotFound)
	}
	out, err := exec.CommandContext(ctx, "pnpm", "--version").Output()
	if err != nil {
		return "", fmt.Errorf("pnpm --version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// EnsurePnpm verifies pnpm is present and at least MinPnpmVersion.
// Used as the config resolver's monorepo gate.
func (r *Runner) EnsurePnpm(ctx context.Context) error {
	v, err := r.PnpmVersion(ctx)
	if err != nil {
		return err
	}
	ok, err := atLeast(v, MinPnpmVersion)
	if err != nil {
		return fmt.Errorf("parse pnpm version %q: %w", v, err)
	}
	if !ok {
		return fmt.Errorf("%w: pnpm %s < %s", ErrVersionTooOld, v, MinPnpmVersion)
	}
	r.logger.Debug("pnpm available", "version", v)
	return nil
}

// Install runs "<pm> install" in dir with inherited stdio. It blocks until
// the install exits; there is no timeout beyond ctx cancellation.
func (r *Runner) Install(ctx context.Context, dir, pm string) error {
	if !r.Detect(pm) {
		return fmt.Errorf("%w: %s", ErrToolNotFound, pm)
	}
	cmd := exec.CommandContext(ctx, pm, "install")
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	r.logger.Info("installing dependencies", "packageManager", pm, "dir", dir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s install: %w", pm, err)
	}
	return nil
}

// FlutterPubGet fetches Flutter project dependencies in dir.
func (r *Runner) FlutterPubGet(ctx context.Context, dir string) error {
	if !r.Detect("flutter") {
		return fmt.Errorf("%w: flutter", ErrToolNotFound)
	}
	cmd := exec.CommandContext(ctx, "flutter", "pub", "get")
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("flutter pub get: %w", err)
	}
	return nil
}

// InitGit initializes a git repository in dir. Callers treat failure as a
// warning, never aborting generation.
func (r *Runner) InitGit(ctx context.Context, dir string) error {
	if !r.Detect("git") {
		return fmt.Errorf("%w: git", ErrToolNotFound)
	}
	cmd := exec.CommandContext(ctx, "git", "init", "--quiet")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git init: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// SetupGitHooks wires the repository's hooks directory. Failure here is
// logged by callers and generation proceeds.
func (r *Runner) SetupGitHooks(ctx context.Context, dir string) error {
	if !r.Detect("git") {
		return fmt.Errorf("%w: git", ErrToolNotFound)
	}
	cmd := exec.CommandContext(ctx, "git", "config", "core.hooksPath", ".hooks")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git hooks setup: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// atLeast reports whether version v is >= min, comparing numeric
// major.minor.patch segments. Pre-release suffixes are ignored.
func atLeast(v, min string) (bool, error) {
	vp, err := parseSemver(v)
	if err != nil {
		return false, err
	}
	mp, err := parseSemver(min)
	if err != nil {
		return false, err
	}
	for i := range 3 {
		if vp[i] != mp[i] {
			return vp[i] > mp[i], nil
		}
	}
	return true, nil
}

// parseSemver extracts the numeric major.minor.patch triple. Missing
// segments default to zero.
func parseSemver(v string) ([3]int, error) {
	var out [3]int
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}
	parts := strings.Split(v, ".")
	if len(parts) == 0 || parts[0] == "" {
		return out, fmt.Errorf("empty version")
	}
	for i := 0; i < len(parts) && i < 3; i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return out, fmt.Errorf("segment %q: %w", parts[i], err)
		}
		out[i] = n
	}
	return out, nil
}
