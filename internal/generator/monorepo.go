package generator

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/stackforge/stackforge/internal/config"
	"github.com/stackforge/stackforge/internal/defs"
)

// workspaceConfig is the pnpm-workspace.yaml document.
type workspaceConfig struct {
	Packages []string `yaml:"packages"`
}

// layoutWorkspace lays down the apps/ + packages/ monorepo skeleton:
// the shared base template, the workspace declaration, and the root
// manifest. Runs before the framework app tree is copied.
func (r *runner) layoutWorkspace(cfg *config.ProjectConfig, result *Result) error {
	if err := r.copyTemplate(cfg, path.Join("monorepo", "base"), cfg.Directory, "", result); err != nil {
		return err
	}

	// The resolver guarantees monorepo layouts use pnpm, so the workspace
	// declaration is always written.
	if err := r.writeWorkspaceYAML(cfg, result); err != nil {
		return err
	}

	additions := map[string]any{
		"name":    slugify(cfg.Name),
		"private": true,
	}
	if cfg.PnpmVersion != "" {
		additions["packageManager"] = "pnpm@" + cfg.PnpmVersion
	}
	rootManifest := filepath.Join(cfg.Directory, defs.PackageJSON)
	if err := r.merger.MergeJSON(rootManifest, additions); err != nil {
		return err
	}

	// The docs app rides along when provisioning asked for it.
	if cfg.ShouldGenerateDocs {
		docsDir := filepath.Join(cfg.Directory, "apps", "docs")
		if err := r.copyTemplate(cfg, path.Join("nextjs", "minimal"), docsDir, "apps/docs", result); err != nil {
			return err
		}
		docsManifest := filepath.Join(docsDir, defs.PackageJSON)
		if err := r.merger.MergeJSON(docsManifest, map[string]any{"name": slugify(cfg.Name) + "-docs"}); err != nil {
			return err
		}
	}

	r.reporter.Step("Workspace layout ready (apps/, packages/)")
	return nil
}

// writeWorkspaceYAML writes pnpm-workspace.yaml. An existing declaration is
// left alone so re-running with --force never clobbers user edits.
func (r *runner) writeWorkspaceYAML(cfg *config.ProjectConfig, result *Result) error {
	p := filepath.Join(cfg.Directory, defs.PnpmWorkspaceYAML)
	if fileExists(p) {
		return nil
	}

	out, err := yaml.Marshal(workspaceConfig{Packages: []string{"apps/*", "packages/*"}})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", defs.PnpmWorkspaceYAML, err)
	}
	if err := os.WriteFile(p, out, defs.FilePerm); err != nil {
		return fmt.Errorf("write %s: %w", defs.PnpmWorkspaceYAML, err)
	}
	result.CreatedFiles = append(result.CreatedFiles, defs.PnpmWorkspaceYAML)
	return nil
}
