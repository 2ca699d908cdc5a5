package generator

import (
	"path/filepath"

	"github.com/stackforge/stackforge/internal/config"
	"github.com/stackforge/stackforge/internal/defs"
	"github.com/stackforge/stackforge/internal/manifest"
)

// Pinned dependency versions for generated manifests. Kept together so
// version bumps touch one place.
var featureDeps = map[string]map[string]string{
	"turso":       {"@libsql/client": "^0.14.0"},
	"postgres":    {"pg": "^8.13.0"},
	"mysql":       {"mysql2": "^3.11.0"},
	"mongodb":     {},
	"sqlite":      {},
	"prisma":      {"@prisma/client": "^6.2.0"},
	"drizzle":     {"drizzle-orm": "^0.38.0"},
	"mongoose":    {"mongoose": "^8.9.0"},
	"r2":          {"@aws-sdk/client-s3": "^3.700.0"},
	"s3":          {"@aws-sdk/client-s3": "^3.700.0"},
	"supabase":    {"@supabase/supabase-js": "^2.47.0"},
	"vercel-blob": {"@vercel/blob": "^0.27.0"},
	"better-auth": {"better-auth": "^1.1.0"},
	"clerk":       {"@clerk/nextjs": "^6.9.0"},
	"next-auth":   {"next-auth": "^5.0.0-beta.25"},
}

var featureDevDeps = map[string]map[string]string{
	"prisma":  {"prisma": "^6.2.0"},
	"drizzle": {"drizzle-kit": "^0.30.0"},
}

// featureAdditions collects the dependency and script fragments implied by
// the selected features into a single package.json additions value.
// manifestPath points at the manifest being merged so script additions can
// chain onto what is already there instead of overwriting it.
func featureAdditions(cfg *config.ProjectConfig, manifestPath string) map[string]any {
	deps := map[string]string{}
	devDeps := map[string]string{}
	scripts := map[string]string{}

	collect := func(key string) {
		for k, v := range featureDeps[key] {
			deps[k] = v
		}
		for k, v := range featureDevDeps[key] {
			devDeps[k] = v
		}
	}

	if cfg.HasDatabase() {
		collect(cfg.Database)
	}
	if cfg.HasORM() {
		collect(cfg.ORM)
	}
	if cfg.HasStorage() {
		collect(cfg.Storage)
	}
	if cfg.HasAuth() {
		collect(cfg.Auth)
	}

	switch cfg.ORM {
	case "prisma":
		// prisma generate must run after every install. A pre-existing
		// postinstall keeps running first; the command is chained, never
		// overwritten.
		existing := manifest.ReadScript(manifestPath, "postinstall")
		scripts["postinstall"] = manifest.AppendScript(existing, "prisma generate")
		scripts["db:push"] = "prisma db push"
		scripts["db:studio"] = "prisma studio"
	case "drizzle":
		scripts["db:push"] = "drizzle-kit push"
		scripts["db:studio"] = "drizzle-kit studio"
	}

	return manifest.Additions(deps, devDeps, scripts)
}

// featureEnv builds the env-file updates implied by the selected features.
// Provisioned values from config enrichment win; otherwise each required
// key gets an empty placeholder so the user sees what to fill in.
func featureEnv(cfg *config.ProjectConfig) map[string]string {
	updates := map[string]string{}

	fill := func(keys []string, provisioned map[string]string) {
		for _, key := range keys {
			updates[key] = provisioned[key]
		}
	}

	if cfg.HasDatabase() {
		fill(config.DatabaseEnvKeys(cfg.Database), cfg.DatabaseCredentials)
		for k, v := range cfg.DatabaseConfig {
			updates[k] = v
		}
	}
	if cfg.HasStorage() {
		fill(config.StorageEnvKeys(cfg.Storage), cfg.BlobConfig)
	}
	if cfg.HasAuth() {
		switch cfg.Auth {
		case "better-auth":
			updates["BETTER_AUTH_SECRET"] = ""
			updates["BETTER_AUTH_URL"] = "http://localhost:3000"
		case "clerk":
			updates["NEXT_PUBLIC_CLERK_PUBLISHABLE_KEY"] = ""
			updates["CLERK_SECRET_KEY"] = ""
		case "next-auth":
			updates["AUTH_SECRET"] = ""
		}
	}

	return updates
}

// gitignoreLines are the additive entries appended (never upserted) to the
// generated .gitignore, so template-provided entries survive verbatim.
func gitignoreLines(cfg *config.ProjectConfig) []string {
	lines := []string{"node_modules/", ".env", ".env.local"}
	if cfg.ORM == "prisma" {
		lines = append(lines, "prisma/*.db")
	}
	if cfg.Database == "sqlite" || cfg.Database == "turso" {
		lines = append(lines, "*.db", "*.db-journal")
	}
	return lines
}

// envFilePath returns the env file the feature variables land in.
func envFilePath(appRoot string) string {
	return filepath.Join(appRoot, defs.EnvFile)
}
