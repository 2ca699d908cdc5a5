package generator

import (
	"context"
	"path"
	"path/filepath"

	"github.com/stackforge/stackforge/internal/config"
	"github.com/stackforge/stackforge/internal/defs"
)

// nextjsGenerator assembles a Next.js project: template tree, feature
// dependencies and scripts, env vars, and the optional deployment manifest.
type nextjsGenerator struct {
	*runner
}

func (g *nextjsGenerator) Generate(ctx context.Context, cfg *config.ProjectConfig) (*Result, error) {
	result := &Result{}
	g.logger.Info("generating project",
		"type", cfg.Type,
		"template", cfg.Template,
		"name", cfg.Name,
		"monorepo", cfg.Monorepo,
	)
	g.reporter.Step("Creating Next.js project %q", cfg.Name)

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
	appRoot, prefix := appDir(cfg, "web")
	if err := g.copyTemplate(cfg, path.Join("nextjs", cfg.Template), appRoot, prefix, result); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.writeEnvFiles(cfg, appRoot, result); err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(appRoot, defs.PackageJSON)
	if additions := featureAdditions(cfg, manifestPath); len(additions) > 0 {
		if err := g.merger.MergeJSON(manifestPath, additions); err != nil {
			return nil, err
		}
		g.reporter.Step("Merged feature dependencies into %s", defs.PackageJSON)
	}

	if cfg.Deployment == "vercel" {
		vercelPath := filepath.Join(appRoot, "vercel.json")
		existed := fileExists(vercelPath)
		if err := g.merger.MergeJSON(vercelPath, map[string]any{
			"$schema":   "https://openapi.vercel.sh/vercel.json",
			"framework": "nextjs",
		}); err != nil {
			return nil, err
		}
		if !existed {
			result.CreatedFiles = append(result.CreatedFiles, path.Join(prefix, "vercel.json"))
		}
	}

	g.gitStep(ctx, cfg, result)
	g.installStep(ctx, cfg, result)

	g.logger.Info("project generated",
		"dirs", len(result.CreatedDirs),
		"files", len(result.CreatedFiles),
	)
	return result, nil
}
