package generator

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/stackforge/stackforge/internal/config"
	"github.com/stackforge/stackforge/internal/defs"
	"github.com/stackforge/stackforge/internal/envfile"
	"github.com/stackforge/stackforge/internal/template"
)

// variableFilePatterns is the allow-list of files piped through the
// renderer. Only .tmpl-suffixed sources render; everything else, including
// binary assets, is copied byte-for-byte.
var variableFilePatterns = []string{"**/*.tmpl"}

// appDir returns the directory the framework app lands in and the prefix
// used to report its paths relative to the project root. Monorepo layouts
// nest the app under apps/<slot>; flat layouts use the root itself.
func appDir(cfg *config.ProjectConfig, slot string) (dir, prefix string) {
	if cfg.Monorepo {
		return filepath.Join(cfg.Directory, "apps", slot), path.Join("apps", slot)
	}
	return cfg.Directory, ""
}

// ensureProjectDir creates the target directory. The resolver already
// guarded against pre-existing directories unless --force was given.
func (r *runner) ensureProjectDir(cfg *config.ProjectConfig, result *Result) error {
	if _, err := os.Stat(cfg.Directory); err == nil {
		return nil
	}
	if err := os.MkdirAll(cfg.Directory, defs.DirPerm); err != nil {
		return fmt.Errorf("create project directory %q: %w", cfg.Directory, err)
	}
	result.CreatedDirs = append(result.CreatedDirs, ".")
	return nil
}

// copyTemplate materializes one template tree into targetDir and records
// the written paths on result under prefix.
func (r *runner) copyTemplate(cfg *config.ProjectConfig, templateDir, targetDir, prefix string, result *Result) error {
	res, err := template.CopyTree(r.templates, templateDir, targetDir, template.CopyOptions{
		VariableFiles: variableFilePatterns,
		Vars:          templateVars(cfg),
		Flags:         templateFlags(cfg),
		Overwrite:     true,
		Staged:        cfg.Staged,
	})
	if err != nil {
		return fmt.Errorf("copy template %q: %w", templateDir, err)
	}
	for _, d := range res.DirsCreated {
		result.CreatedDirs = append(result.CreatedDirs, path.Join(prefix, d))
	}
	for _, f := range res.FilesCreated {
		result.CreatedFiles = append(result.CreatedFiles, path.Join(prefix, f))
	}
	r.logger.Debug("template copied",
		"template", templateDir,
		"files", len(res.FilesCreated),
		"dirs", len(res.DirsCreated),
	)
	return nil
}

// writeEnvFiles upserts feature env vars into the app's .env and appends
// the additive .gitignore entries.
func (r *runner) writeEnvFiles(cfg *config.ProjectConfig, appRoot string, result *Result) error {
	updates := featureEnv(cfg)
	if len(updates) > 0 {
		envPath := envFilePath(appRoot)
		existed := fileExists(envPath)
		if err := envfile.Upsert(envPath, updates); err != nil {
			return err
		}
		if !existed {
			rel, _ := filepath.Rel(cfg.Directory, envPath)
			result.CreatedFiles = append(result.CreatedFiles, filepath.ToSlash(rel))
		}
		r.reporter.Step("Wrote %d environment variable(s)", len(updates))
	}

	gitignorePath := filepath.Join(cfg.Directory, defs.GitignoreFile)
	existed := fileExists(gitignorePath)
	if err := envfile.Append(gitignorePath, gitignoreLines(cfg)); err != nil {
		return err
	}
	if !existed {
		result.CreatedFiles = append(result.CreatedFiles, defs.GitignoreFile)
	}
	return nil
}

// installStep runs the package-manager install under a spinner. Failure is
// reported but deliberately non-fatal: the project on disk is complete.
func (r *runner) installStep(ctx context.Context, cfg *config.ProjectConfig, result *Result) {
	if !cfg.Install {
		return
	}
	sp := r.reporter.Spinner("Installing dependencies with " + cfg.PackageManager)
	err := r.tools.Install(ctx, cfg.Directory, cfg.PackageManager)
	sp.Stop()
	if err != nil {
		r.warnf(result, "dependency install failed: %v", err)
		return
	}
	r.reporter.Step("Dependencies installed")
}

// gitStep initializes a repository and its hooks path. Both are auxiliary:
// failures become warnings and generation proceeds.
func (r *runner) gitStep(ctx context.Context, cfg *config.ProjectConfig, result *Result) {
	if err := r.tools.InitGit(ctx, cfg.Directory); err != nil {
		r.warnf(result, "git init skipped: %v", err)
		return
	}
	if err := r.tools.SetupGitHooks(ctx, cfg.Directory); err != nil {
		r.warnf(result, "git hook setup skipped: %v", err)
	}
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
