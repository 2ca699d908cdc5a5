package generator

import (
	"context"
	"path"

	"github.com/stackforge/stackforge/internal/config"
)

// flutterGenerator assembles a Flutter project. Flutter layouts are always
// flat (no JS workspace) and carry no package.json; pubspec.yaml comes
// fully rendered from the template tree.
type flutterGenerator struct {
	*runner
}

func (g *flutterGenerator) Generate(ctx context.Context, cfg *config.ProjectConfig) (*Result, error) {
	result := &Result{}
	g.logger.Info("generating project",
		"type", cfg.Type,
		"template", cfg.Template,
		"name", cfg.Name,
	)
	g.reporter.Step("Creating Flutter project %q", cfg.Name)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.ensureProjectDir(cfg, result); err != nil {
		return nil, err
	}

	if err := g.copyTemplate(cfg, path.Join("flutter", cfg.Template), cfg.Directory, "", result); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.writeEnvFiles(cfg, cfg.Directory, result); err != nil {
		return nil, err
	}

	g.gitStep(ctx, cfg, result)

	// Dependency fetch goes through flutter itself, not a JS package manager.
	if cfg.Install {
		sp := g.reporter.Spinner("Running flutter pub get")
		err := g.tools.FlutterPubGet(ctx, cfg.Directory)
		sp.Stop()
		if err != nil {
			g.warnf(result, "flutter pub get failed: %v", err)
		} else {
			g.reporter.Step("Dependencies fetched")
		}
	}

	g.logger.Info("project generated",
		"dirs", len(result.CreatedDirs),
		"files", len(result.CreatedFiles),
	)
	return result, nil
}
