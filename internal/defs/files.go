package defs

import "io/fs"

// Common file names produced or merged during generation.
const (
	// PackageJSON is the Node package manifest merged by the manifest package.
	PackageJSON = "package.json"

	// TSConfigJSON is the TypeScript compiler configuration manifest.
	TSConfigJSON = "tsconfig.json"

	// TurboJSON is the Turborepo pipeline configuration manifest.
	TurboJSON = "turbo.json"

	// AppJSON is the Expo application manifest.
	AppJSON = "app.json"

	// TauriConfJSON is the Tauri application configuration manifest.
	TauriConfJSON = "tauri.conf.json"

	// CargoTOML is the Rust crate manifest inside src-tauri/.
	CargoTOML = "Cargo.toml"

	// PnpmWorkspaceYAML declares the pnpm workspace package globs.
	PnpmWorkspaceYAML = "pnpm-workspace.yaml"

	// EnvFile is the default environment variable file.
	EnvFile = ".env"

	// EnvLocalFile is the local-override environment variable file.
	EnvLocalFile = ".env.local"

	// GitignoreFile is the git exclusion list.
	GitignoreFile = ".gitignore"

	// ReadmeMD is the generated project README.
	ReadmeMD = "README.md"
)

// Template corpus conventions.
const (
	// TmplSuffix marks files that pass through the renderer; the suffix is
	// stripped from the destination path.
	TmplSuffix = ".tmpl"

	// GitignorePlaceholder is the on-disk name for .gitignore inside template
	// trees. npm strips .gitignore from published packages, so the corpus
	// stores it without the leading dot.
	GitignorePlaceholder = "_gitignore"
)

// Filesystem permissions used by the copier and generators.
const (
	// DirPerm is the mode for created directories.
	DirPerm fs.FileMode = 0o755

	// FilePerm is the mode for regular generated files.
	FilePerm fs.FileMode = 0o644

	// ExecPerm is the mode for shell scripts deployed from templates.
	ExecPerm fs.FileMode = 0o755
)
