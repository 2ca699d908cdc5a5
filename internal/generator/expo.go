package generator

import (
	"context"
	"path"
	"path/filepath"

	"github.com/stackforge/stackforge/internal/config"
	"github.com/stackforge/stackforge/internal/defs"
)

// expoGenerator assembles an Expo (React Native) project. On top of the
// shared steps it maintains app.json, Expo's own manifest.
type expoGenerator struct {
	*runner
}

func (g *expoGenerator) Generate(ctx context.Context, cfg *config.ProjectConfig) (*Result, error) {
	result := &Result{}
	g.logger.Info("generating project",
		"type", cfg.Type,
		"template", cfg.Template,
		"name", cfg.Name,
		"monorepo", cfg.Monorepo,
	)
	g.reporter.Step("Creating Expo project %q", cfg.Name)

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
	appRoot, prefix := appDir(cfg, "native")
	if err := g.copyTemplate(cfg, path.Join("expo", cfg.Template), appRoot, prefix, result); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.writeEnvFiles(cfg, appRoot, result); err != nil {
		return nil, err
	}

	// app.json carries the display name and slug Expo tooling reads.
	appJSONPath := filepath.Join(appRoot, defs.AppJSON)
	if err := g.merger.MergeJSON(appJSONPath, map[string]any{
		"expo": map[string]any{
			"name": cfg.Name,
			"slug": slugify(cfg.Name),
		},
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
