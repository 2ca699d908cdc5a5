package config

import "slices"

// FeatureNone is the explicit "not selected" value for feature toggles.
const FeatureNone = "none"

// DefaultProjectName is the placeholder used when no name is given.
const DefaultProjectName = "my-app"

// Package managers supported for install and workspace layout.
const (
	PackageManagerPnpm = "pnpm"
	PackageManagerNpm  = "npm"
	PackageManagerBun  = "bun"
)

var packageManagers = []string{PackageManagerPnpm, PackageManagerNpm, PackageManagerBun}

// PackageManagers returns the supported package managers.
func PackageManagers() []string { return slices.Clone(packageManagers) }

// templateCatalog is the static allow-list of templates per project type.
// A template not listed here for its type is a hard validation error.
var templateCatalog = map[ProjectType][]string{
	TypeNextJS:  {"default", "minimal", "marketing"},
	TypeExpo:    {"default", "tabs"},
	TypeTauri:   {"default", "cross-platform"},
	TypeFlutter: {"default"},
}

// defaultTemplates maps each type to its canonical default.
var defaultTemplates = map[ProjectType]string{
	TypeNextJS:  "default",
	TypeExpo:    "default",
	TypeTauri:   "default",
	TypeFlutter: "default",
}

// TemplatesFor returns the catalog entries for a project type.
func TemplatesFor(t ProjectType) []string {
	return slices.Clone(templateCatalog[t])
}

// DefaultTemplate returns the canonical default template for a type.
func DefaultTemplate(t ProjectType) string {
	return defaultTemplates[t]
}

// IsValidTemplate reports whether tmpl is in the catalog for t.
func IsValidTemplate(t ProjectType, tmpl string) bool {
	return slices.Contains(templateCatalog[t], tmpl)
}

// Feature value sets. Every optional feature validates against a fixed list.
var (
	databases   = []string{FeatureNone, "turso", "sqlite", "postgres", "mysql", "mongodb"}
	orms        = []string{FeatureNone, "prisma", "drizzle", "mongoose"}
	storages    = []string{FeatureNone, "r2", "s3", "supabase", "vercel-blob"}
	auths       = []string{FeatureNone, "better-auth", "clerk", "next-auth"}
	deployments = []string{FeatureNone, "vercel", "cloudflare", "aws"}
)

// Databases returns the valid database selections.
func Databases() []string { return slices.Clone(databases) }

// ORMs returns the valid ORM selections.
func ORMs() []string { return slices.Clone(orms) }

// StorageProviders returns the valid storage provider selections.
func StorageProviders() []string { return slices.Clone(storages) }

// AuthProviders returns the valid auth provider selections.
func AuthProviders() []string { return slices.Clone(auths) }

// DeploymentTargets returns the valid deployment target selections.
func DeploymentTargets() []string { return slices.Clone(deployments) }

// storageEnvKeys maps each storage provider to its required env variable set.
// The set is a pure function of the provider alone.
var storageEnvKeys = map[string][]string{
	"r2":          {"R2_ACCOUNT_ID", "R2_ACCESS_KEY_ID", "R2_SECRET_ACCESS_KEY", "R2_BUCKET_NAME"},
	"s3":          {"AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "S3_BUCKET_NAME"},
	"supabase":    {"SUPABASE_URL", "SUPABASE_ANON_KEY", "SUPABASE_SERVICE_ROLE_KEY"},
	"vercel-blob": {"BLOB_READ_WRITE_TOKEN"},
}

// StorageEnvKeys returns the env variable names a storage provider requires.
// Returns nil for "none" or unknown providers.
func StorageEnvKeys(provider string) []string {
	return slices.Clone(storageEnvKeys[provider])
}

// databaseEnvKeys maps each database to the env variables its client reads.
var databaseEnvKeys = map[string][]string{
	"turso":    {"TURSO_DATABASE_URL", "TURSO_AUTH_TOKEN"},
	"sqlite":   {"DATABASE_URL"},
	"postgres": {"DATABASE_URL"},
	"mysql":    {"DATABASE_URL"},
	"mongodb":  {"MONGODB_URI"},
}

// DatabaseEnvKeys returns the env variable names a database selection requires.
func DatabaseEnvKeys(database string) []string {
	return slices.Clone(databaseEnvKeys[database])
}
