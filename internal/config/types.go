package config

import (
	"maps"
	"slices"
)

// ProjectType selects which generator orchestrator runs. Immutable once
// resolved.
type ProjectType string

// Supported project types.
const (
	TypeNextJS  ProjectType = "nextjs"
	TypeExpo    ProjectType = "expo"
	TypeTauri   ProjectType = "tauri"
	TypeFlutter ProjectType = "flutter"
)

// projectTypes lists all valid project types in display order.
var projectTypes = []ProjectType{TypeNextJS, TypeExpo, TypeTauri, TypeFlutter}

// IsValid reports whether t is a supported project type.
func (t ProjectType) IsValid() bool {
	return slices.Contains(projectTypes, t)
}

// IsNode reports whether the type produces a Node package (package.json).
func (t ProjectType) IsNode() bool {
	return t == TypeNextJS || t == TypeExpo || t == TypeTauri
}

// ProjectTypes returns all valid project types.
func ProjectTypes() []ProjectType {
	return slices.Clone(projectTypes)
}

// ProjectTypeStrings returns all valid project types as plain strings.
func ProjectTypeStrings() []string {
	out := make([]string, len(projectTypes))
	for i, t := range projectTypes {
		out[i] = string(t)
	}
	return out
}

// ProjectConfig is the central value object passed through the generation
// pipeline. It is constructed once by Resolve, enriched (not mutated) by
// provisioning steps, and consumed read-only by the generators.
type ProjectConfig struct {
	// Name is the project identifier: directory naming, package name, slugs.
	Name string

	// Directory is the target path. Never created by the resolver itself.
	Directory string

	// Type selects the generator orchestrator.
	Type ProjectType

	// Template is one of the catalog entries for Type.
	Template string

	// Force skips the "directory already exists" guard.
	Force bool

	// Monorepo selects the apps/ + packages/ workspace layout.
	Monorepo bool

	// PackageManager is the tool used for install and workspace layout.
	PackageManager string

	// Optional feature toggles. Empty or "none" means not selected.
	Database   string
	ORM        string
	Storage    string
	Auth       string
	Deployment string

	// Install runs the package-manager install step after generation.
	Install bool

	// Staged copies template trees via a staging directory and moves files
	// into place only after the full copy succeeded.
	Staged bool

	// Fields below are attached after resolution by external provisioning
	// collaborators and merely carried through to the generators.

	// DatabaseConfig holds provider connection settings (e.g. turso URL).
	DatabaseConfig map[string]string

	// DatabaseCredentials holds provider secrets destined for env files.
	DatabaseCredentials map[string]string

	// BlobConfig holds storage provider settings destined for env files.
	BlobConfig map[string]string

	// PnpmVersion is the detected pnpm version, recorded for packageManager
	// pinning in the root manifest.
	PnpmVersion string

	// ShouldGenerateDocs toggles the docs app in monorepo layouts.
	ShouldGenerateDocs bool
}

// HasDatabase reports whether a database feature was selected.
func (c *ProjectConfig) HasDatabase() bool { return selected(c.Database) }

// HasORM reports whether an ORM feature was selected.
func (c *ProjectConfig) HasORM() bool { return selected(c.ORM) }

// HasStorage reports whether a storage provider was selected.
func (c *ProjectConfig) HasStorage() bool { return selected(c.Storage) }

// HasAuth reports whether an auth provider was selected.
func (c *ProjectConfig) HasAuth() bool { return selected(c.Auth) }

// HasDeployment reports whether a deployment target was selected.
func (c *ProjectConfig) HasDeployment() bool { return selected(c.Deployment) }

func selected(v string) bool { return v != "" && v != FeatureNone }

// clone returns a deep copy so enrichment never aliases the original maps.
func (c *ProjectConfig) clone() *ProjectConfig {
	out := *c
	out.DatabaseConfig = maps.Clone(c.DatabaseConfig)
	out.DatabaseCredentials = maps.Clone(c.DatabaseCredentials)
	out.BlobConfig = maps.Clone(c.BlobConfig)
	return &out
}

// WithDatabaseConfig returns a copy with provider connection settings attached.
func (c *ProjectConfig) WithDatabaseConfig(cfg map[string]string) *ProjectConfig {
	out := c.clone()
	out.DatabaseConfig = maps.Clone(cfg)
	return out
}

// WithDatabaseCredentials returns a copy with provider secrets attached.
func (c *ProjectConfig) WithDatabaseCredentials(creds map[string]string) *ProjectConfig {
	out := c.clone()
	out.DatabaseCredentials = maps.Clone(creds)
	return out
}

// WithBlobConfig returns a copy with storage provider settings attached.
func (c *ProjectConfig) WithBlobConfig(cfg map[string]string) *ProjectConfig {
	out := c.clone()
	out.BlobConfig = maps.Clone(cfg)
	return out
}

// WithPnpmVersion returns a copy with the detected pnpm version recorded.
func (c *ProjectConfig) WithPnpmVersion(v string) *ProjectConfig {
	out := c.clone()
	out.PnpmVersion = v
	return out
}

// WithDocs returns a copy with the docs-app toggle set.
func (c *ProjectConfig) WithDocs(enabled bool) *ProjectConfig {
	out := c.clone()
	out.ShouldGenerateDocs = enabled
	return out
}
