package generator

import (
	"context"
	"path"
	"path/filepath"

	"github.com/stackforge/stackforge/internal/config"
	"github.com/stackforge/stackforge/internal/defs"
)

// tauriGenerator assembles a Tauri desktop project. Beyond the shared
// steps it maintains the Rust crate manifest (src-tauri/Cargo.toml) and
// the Tauri application config, both with the same additive merge policy
// as package.json.
type tauriGenerator struct {
	*runner
}

func (g *tauriGenerator) Generate(ctx context.Context, cfg *config.ProjectConfig) (*Result, error) {
	result := &Result{}
	g.logger.Info("generating project",
		"type", cfg.Type,
		"template", cfg.Template,
		"name", cfg.Name,
		"monorepo", cfg.Monorepo,
	)
	g.reporter.Step("Creating Tauri project %q", cfg.Name)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.ensureProjectDir(cfg, result); err != nil {
		return nil, err
	}

	if cfg.Monorepo {
		if err := g.layoutWorkspace(cfg, result); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	appRoot, prefix := appDir(cfg, "desktop")
	if err := g.copyTemplate(cfg, path.Join("tauri", cfg.Template), appRoot, prefix, result); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.writeEnvFiles(cfg, appRoot, result); err != nil {
		return nil, err
	}

	slug := slugify(cfg.Name)

	cargoPath := filepath.Join(appRoot, "src-tauri", defs.CargoTOML)
	if err := g.merger.MergeTOML(cargoPath, map[string]any{
		"package": map[string]any{
			"name":    slug,
			"version": "0.1.0",
		},
	}); err != nil {
		return nil, err
	}

	tauriConfPath := filepath.Join(appRoot, "src-tauri", defs.TauriConfJSON)
	if err := g.merger.MergeJSON(tauriConfPath, map[string]any{
		"productName": cfg.Name,
		"identifier":  "com." + slug + ".app",
	}); err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(appRoot, defs.PackageJSON)
	if additions := featureAdditions(cfg, manifestPath); len(additions) > 0 {
		if err := g.merger.MergeJSON(manifestPath, additions); err != nil {
			return nil, err
		}
		g.reporter.Step("Merged feature dependencies into %s", defs.PackageJSON)
	}

	g.gitStep(ctx, cfg, result)
	g.installStep(ctx, cfg, result)

	g.logger.Info("project generated",
		"dirs", len(result.CreatedDirs),
		"files", len(result.CreatedFiles),
	)
	return result, nil
}
