package template

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/stackforge/stackforge/internal/defs"
)

// CopyOptions configures a CopyTree call.
type CopyOptions struct {
	// VariableFiles is an explicit allow-list of doublestar patterns,
	// relative to the source root, naming the files piped through the
	// renderer. Everything else is copied byte-for-byte, so binary assets
	// bypass rendering entirely.
	VariableFiles []string

	// Vars and Flags feed the renderer for matched files.
	Vars  map[string]string
	Flags map[string]bool

	// Overwrite replaces files the copier is specifically asked to write.
	// Files outside the write-set are never touched either way.
	Overwrite bool

	// Staged writes the tree into a temporary sibling directory first and
	// moves files into place only after the whole walk succeeded, leaving
	// the target untouched on mid-walk failure.
	Staged bool
}

// CopyResult reports the paths actually written, relative to the target
// directory and sorted, for downstream reporting and tests.
type CopyResult struct {
	FilesCreated []string
	DirsCreated  []string
}

// CopyTree recursively copies the template tree rooted at sourceDir within
// fsys into targetDir. Intermediate directories are created as needed and
// pre-existing files outside the write-set are left alone. Any I/O error
// aborts the operation with path context; without Staged there is no
// rollback of files already written.
func CopyTree(fsys fs.FS, sourceDir, targetDir string, opts CopyOptions) (*CopyResult, error) {
	sub := fsys
	if sourceDir != "" && sourceDir != "." {
		var err error
		sub, err = fs.Sub(fsys, path.Clean(sourceDir))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, sourceDir)
		}
	}
	if _, err := fs.Stat(sub, "."); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, sourceDir)
	}

	writeRoot := targetDir
	if opts.Staged {
		stage := filepath.Join(filepath.Dir(filepath.Clean(targetDir)),
			".stackforge-stage-"+uuid.NewString()[:8])
		if err := os.MkdirAll(stage, defs.DirPerm); err != nil {
			return nil, fmt.Errorf("template copy: create staging dir: %w", err)
		}
		defer os.RemoveAll(stage)
		writeRoot = stage
	}

	result := &CopyResult{}
	err := fs.WalkDir(sub, ".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("template copy walk %q: %w", p, err)
		}
		if p == "." {
			return nil
		}

		destRel := destinationPath(p)
		if err := validateTargetPath(targetDir, destRel); err != nil {
			return err
		}

		if entry.IsDir() {
			destDir := filepath.Join(writeRoot, filepath.FromSlash(destRel))
			created, err := ensureDir(destDir)
			if err != nil {
				return fmt.Errorf("template copy mkdir %q: %w", destDir, err)
			}
			if created {
				result.DirsCreated = append(result.DirsCreated, destRel)
			}
			return nil
		}

		// Skip-existing checks always run against the real target, even in
		// staged mode, so staging does not change the overwrite policy.
		finalPath := filepath.Join(targetDir, filepath.FromSlash(destRel))
		if !opts.Overwrite {
			if _, statErr := os.Stat(finalPath); statErr == nil {
				return nil
			}
		}

		content, err := fs.ReadFile(sub, p)
		if err != nil {
			return fmt.Errorf("template copy read %q: %w", p, err)
		}
		if matchesAny(opts.VariableFiles, p) {
			content = []byte(Render(string(content), opts.Vars, opts.Flags))
		}

		destPath := filepath.Join(writeRoot, filepath.FromSlash(destRel))
		if _, err := ensureDir(filepath.Dir(destPath)); err != nil {
			return fmt.Errorf("template copy mkdir %q: %w", filepath.Dir(destPath), err)
		}

		perm := defs.FilePerm
		if strings.HasSuffix(destRel, ".sh") {
			perm = defs.ExecPerm
		}
		if err := os.WriteFile(destPath, content, perm); err != nil {
			return fmt.Errorf("template copy write %q: %w", destPath, err)
		}

		result.FilesCreated = append(result.FilesCreated, destRel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if opts.Staged {
		if err := commitStage(writeRoot, targetDir, result.FilesCreated); err != nil {
			return nil, err
		}
	}

	sort.Strings(result.FilesCreated)
	sort.Strings(result.DirsCreated)
	return result, nil
}

// destinationPath maps a source-relative template path to its target path:
// the .tmpl suffix is stripped from rendered files and the _gitignore
// placeholder becomes a real .gitignore (npm strips dotted ignore files
// from published template packages).
func destinationPath(p string) string {
	p = strings.TrimSuffix(p, defs.TmplSuffix)
	dir, base := path.Split(p)
	if base == defs.GitignorePlaceholder {
		base = defs.GitignoreFile
	}
	return path.Join(dir, base)
}

// matchesAny reports whether the source-relative path matches any of the
// allow-list patterns. Patterns are matched against both the raw source
// path and its destination form, so "next.config.js" matches a
// "next.config.js.tmpl" source file.
func matchesAny(patterns []string, p string) bool {
	dest := destinationPath(p)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, p); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, dest); err == nil && ok {
			return true
		}
	}
	return false
}

// ensureDir creates dir if missing and reports whether it was created.
func ensureDir(dir string) (bool, error) {
	if info, err := os.Stat(dir); err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%q exists and is not a directory", dir)
		}
		return false, nil
	}
	if err := os.MkdirAll(dir, defs.DirPerm); err != nil {
		return false, err
	}
	return true, nil
}

// commitStage moves the staged files into the real target directory.
func commitStage(stage, targetDir string, files []string) error {
	for _, rel := range files {
		src := filepath.Join(stage, filepath.FromSlash(rel))
		dst := filepath.Join(targetDir, filepath.FromSlash(rel))
		if _, err := ensureDir(filepath.Dir(dst)); err != nil {
			return fmt.Errorf("template copy commit mkdir %q: %w", filepath.Dir(dst), err)
		}
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("template copy commit %q: %w", rel, err)
		}
	}
	return nil
}

// validateTargetPath ensures a template-relative path cannot escape the
// target directory.
func validateTargetPath(targetDir, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}
	if strings.HasPrefix(cleaned, "..") || strings.Contains(cleaned, string(filepath.Separator)+"..") {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absTarget, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolve target root: %w", err)
	}
	absPath := filepath.Join(absTarget, cleaned)
	if !strings.HasPrefix(absPath, absTarget+string(filepath.Separator)) && absPath != absTarget {
		return fmt.Errorf("%w: %q", ErrPathTraversal, relPath)
	}
	return nil
}
