package config

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
)

// RawOptions carries unvalidated CLI/wizard input into Resolve.
type RawOptions struct {
	Name      string
	Directory string
	Type      string
	Template  string
	Force     bool

	// Simple forces a flat (non-monorepo) layout and wins over Monorepo.
	Simple bool

	// Monorepo is tri-state: nil means "not specified", defaulting to true.
	Monorepo *bool

	Database   string
	ORM        string
	Storage    string
	Auth       string
	Deployment string

	PackageManager string
	Install        bool
	Staged         bool
}

// PnpmGate verifies a compatible pnpm is available. Injected by the caller
// so the resolver stays free of child-process execution; internal/toolchain
// provides the production implementation.
type PnpmGate func(ctx context.Context) error

// Resolve validates raw input and returns a fully-populated ProjectConfig.
// It performs no filesystem writes. Validation failures are reported before
// anything touches disk; a missing pnpm for monorepo layouts is fatal.
func Resolve(ctx context.Context, raw RawOptions, gate PnpmGate) (*ProjectConfig, error) {
	projectType := ProjectType(raw.Type)
	if !projectType.IsValid() {
		return nil, &ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ProjectTypeStrings(), ", ")),
			Value:   raw.Type,
			Wrapped: ErrInvalidProjectType,
		}
	}

	template := raw.Template
	if template == "" {
		template = DefaultTemplate(projectType)
	}
	if !IsValidTemplate(projectType, template) {
		return nil, &ValidationError{
			Field:   "template",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(TemplatesFor(projectType), ", ")),
			Value:   template,
			Wrapped: ErrInvalidTemplate,
		}
	}

	cfg := &ProjectConfig{
		Name:       raw.Name,
		Directory:  raw.Directory,
		Type:       projectType,
		Template:   template,
		Force:      raw.Force,
		Database:   normalizeFeature(raw.Database),
		ORM:        normalizeFeature(raw.ORM),
		Storage:    normalizeFeature(raw.Storage),
		Auth:       normalizeFeature(raw.Auth),
		Deployment: normalizeFeature(raw.Deployment),
		Install:    raw.Install,
		Staged:     raw.Staged,
	}

	if cfg.Name == "" {
		cfg.Name = DefaultProjectName
	}
	if cfg.Directory == "" {
		cfg.Directory = cfg.Name
	}

	// Three-way monorepo precedence: --simple forces flat; else an explicit
	// --monorepo/--no-monorepo flag wins; else default true. Flutter projects
	// are always flat (no JS workspace to lay out).
	switch {
	case projectType == TypeFlutter:
		cfg.Monorepo = false
	case raw.Simple:
		cfg.Monorepo = false
	case raw.Monorepo != nil:
		cfg.Monorepo = *raw.Monorepo
	default:
		cfg.Monorepo = true
	}

	cfg.PackageManager = raw.PackageManager
	if cfg.PackageManager == "" {
		if cfg.Monorepo {
			cfg.PackageManager = PackageManagerPnpm
		} else {
			cfg.PackageManager = PackageManagerNpm
		}
	}

	if errs := validateFeatures(cfg); len(errs) > 0 {
		return nil, &ValidationErrors{Errors: errs}
	}

	// Directory guard: the resolver never creates the directory, it only
	// refuses to proceed when the target pre-exists without --force.
	if !cfg.Force {
		if _, err := os.Stat(cfg.Directory); err == nil {
			return nil, &ValidationError{
				Field:   "directory",
				Message: "already exists; pass --force to generate into it",
				Value:   cfg.Directory,
				Wrapped: ErrDirectoryExists,
			}
		}
	}

	// Monorepo layout cannot be produced without workspace tooling. The
	// validation above already pinned the package manager to pnpm for
	// monorepo layouts, so the gate runs whenever the layout resolves true.
	if cfg.Monorepo && gate != nil {
		if err := gate(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPnpmRequired, err)
		}
	}

	return cfg, nil
}

// normalizeFeature maps the empty string to the explicit "none" value.
func normalizeFeature(v string) string {
	if v == "" {
		return FeatureNone
	}
	return v
}

// validateFeatures checks every feature toggle against its fixed value set
// and cross-field consistency rules.
func validateFeatures(cfg *ProjectConfig) []ValidationError {
	var errs []ValidationError

	check := func(field, value string, valid []string, sentinel error) {
		if !slices.Contains(valid, value) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be one of: %s", strings.Join(valid, ", ")),
				Value:   value,
				Wrapped: sentinel,
			})
		}
	}

	check("database", cfg.Database, databases, ErrInvalidDatabase)
	check("orm", cfg.ORM, orms, ErrInvalidORM)
	check("storage", cfg.Storage, storages, ErrInvalidStorage)
	check("auth", cfg.Auth, auths, ErrInvalidAuth)
	check("deployment", cfg.Deployment, deployments, ErrInvalidDeployment)
	check("packageManager", cfg.PackageManager, packageManagers, ErrInvalidPackageManager)

	// The workspace layout is declared via pnpm-workspace.yaml; npm and bun
	// have no equivalent wired here, so a monorepo with either would leave
	// apps/ unlinked at the root.
	if cfg.Monorepo && cfg.PackageManager != PackageManagerPnpm {
		errs = append(errs, ValidationError{
			Field:   "packageManager",
			Message: "monorepo layout requires pnpm; pass --no-monorepo or --simple to use " + cfg.PackageManager,
			Value:   cfg.PackageManager,
			Wrapped: ErrInvalidPackageManager,
		})
	}

	// An ORM is meaningless without a database behind it.
	if cfg.HasORM() && !cfg.HasDatabase() {
		errs = append(errs, ValidationError{
			Field:   "orm",
			Message: "requires a database selection",
			Value:   cfg.ORM,
			Wrapped: ErrInvalidORM,
		})
	}

	// Mongoose only speaks MongoDB, and the SQL ORMs do not.
	if cfg.ORM == "mongoose" && cfg.Database != "mongodb" {
		errs = append(errs, ValidationError{
			Field:   "orm",
			Message: "mongoose requires database=mongodb",
			Value:   cfg.Database,
			Wrapped: ErrInvalidORM,
		})
	}
	if (cfg.ORM == "prisma" || cfg.ORM == "drizzle") && cfg.Database == "mongodb" {
		errs = append(errs, ValidationError{
			Field:   "database",
			Message: fmt.Sprintf("%s does not support mongodb", cfg.ORM),
			Value:   cfg.Database,
			Wrapped: ErrInvalidDatabase,
		})
	}

	// JS-side features require a Node-based framework.
	if !cfg.Type.IsNode() {
		for field, has := range map[string]bool{
			"orm":     cfg.HasORM(),
			"storage": cfg.HasStorage(),
			"auth":    cfg.HasAuth(),
		} {
			if has {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("not supported for %s projects", cfg.Type),
					Wrapped: ErrInvalidConfig,
				})
			}
		}
	}

	return errs
}
