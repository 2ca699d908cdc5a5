// Package config resolves raw CLI input into a validated, fully-populated
// ProjectConfig. It performs no filesystem writes; the only I/O is an
// existence check on the target directory and the injected package-manager
// gate for monorepo layouts.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for configuration resolution.
var (
	// ErrInvalidProjectType indicates an unsupported project type.
	ErrInvalidProjectType = errors.New("config: invalid project type")

	// ErrInvalidTemplate indicates a template not in the catalog for its type.
	ErrInvalidTemplate = errors.New("config: invalid template")

	// ErrInvalidDatabase indicates an unsupported database selection.
	ErrInvalidDatabase = errors.New("config: invalid database")

	// ErrInvalidORM indicates an unsupported ORM selection.
	ErrInvalidORM = errors.New("config: invalid orm")

	// ErrInvalidStorage indicates an unsupported storage provider selection.
	ErrInvalidStorage = errors.New("config: invalid storage provider")

	// ErrInvalidAuth indicates an unsupported auth provider selection.
	ErrInvalidAuth = errors.New("config: invalid auth provider")

	// ErrInvalidDeployment indicates an unsupported deployment target.
	ErrInvalidDeployment = errors.New("config: invalid deployment target")

	// ErrInvalidPackageManager indicates an unsupported package manager.
	ErrInvalidPackageManager = errors.New("config: invalid package manager")

	// ErrDirectoryExists indicates the target directory pre-exists and
	// --force was not given.
	ErrDirectoryExists = errors.New("config: target directory already exists")

	// ErrPnpmRequired indicates the monorepo layout was requested but a
	// compatible pnpm is not available. Fatal before generation begins.
	ErrPnpmRequired = errors.New("config: monorepo layout requires pnpm")

	// ErrInvalidConfig is the umbrella sentinel for validation failures.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// ValidationError describes one rejected field. Wrapped carries the matching
// sentinel so callers can branch on the failure kind with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Value   any
	Wrapped error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("validation error: field %q: %s", e.Field, e.Message)
	if e.Value != nil {
		msg += fmt.Sprintf(" (got: %v)", e.Value)
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}

// ValidationErrors aggregates every field failure from a resolve pass so the
// CLI can report them all at once instead of stopping at the first.
type ValidationErrors struct {
	Errors []ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation: no errors"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "validation failed with %d error(s): ", len(e.Errors))
	for i := range e.Errors {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Errors[i].Error())
	}
	return b.String()
}

// Is matches ErrInvalidConfig unconditionally and otherwise reports whether
// any contained error wraps the target sentinel.
func (e *ValidationErrors) Is(target error) bool {
	if target == ErrInvalidConfig {
		return true
	}
	for i := range e.Errors {
		if w := e.Errors[i].Wrapped; w != nil && errors.Is(w, target) {
			return true
		}
	}
	return false
}
