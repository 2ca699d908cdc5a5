// Package manifest merges generated fragments into JSON and TOML project
// manifests (package.json, tsconfig.json, turbo.json, Cargo.toml) without
// clobbering pre-existing content. Merging the same additions twice yields
// byte-identical output.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/stackforge/stackforge/internal/defs"
)

// Merger performs additive manifest merges. The diff of every merge that
// changes a pre-existing file is logged at debug level.
type Merger struct {
	logger *slog.Logger
}

// NewMerger creates a Merger. A nil logger discards output.
func NewMerger(logger *slog.Logger) *Merger {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Merger{logger: logger}
}

// MergeJSON deep-merges additions into the JSON manifest at path and writes
// the result back with 2-space indentation and sorted keys. A missing or
// unparseable file is treated as an empty object, never as a failure.
//
// Merge policy: maps are merged key-by-key recursively and additions win on
// conflict; every other value kind is overwritten wholesale. There are no
// list-append semantics anywhere, which is what makes the merge idempotent.
func (m *Merger) MergeJSON(path string, additions map[string]any) error {
	existing := map[string]any{}
	base, readErr := os.ReadFile(path)
	if readErr == nil {
		if err := json.Unmarshal(base, &existing); err != nil {
			m.logger.Warn("manifest unparseable, treating as empty", "path", path, "error", err)
			existing = map[string]any{}
		}
	}

	merged := deepMerge(existing, additions)

	// encoding/json writes map keys in sorted order, which keeps repeated
	// merges byte-identical and diffs deterministic.
	out, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest marshal %q: %w", path, err)
	}
	out = append(out, '\n')

	return m.write(path, base, out)
}

// MergeTOML applies the same merge policy to a TOML manifest, used for the
// Cargo.toml inside Tauri projects.
func (m *Merger) MergeTOML(path string, additions map[string]any) error {
	existing := map[string]any{}
	base, readErr := os.ReadFile(path)
	if readErr == nil {
		if err := toml.Unmarshal(base, &existing); err != nil {
			m.logger.Warn("manifest unparseable, treating as empty", "path", path, "error", err)
			existing = map[string]any{}
		}
	}

	merged := deepMerge(existing, additions)

	out, err := toml.Marshal(merged)
	if err != nil {
		return fmt.Errorf("manifest marshal %q: %w", path, err)
	}

	return m.write(path, base, out)
}

// write persists the merged manifest and logs the change as a diff.
func (m *Merger) write(path string, base, out []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), defs.DirPerm); err != nil {
		return fmt.Errorf("manifest mkdir %q: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, out, defs.FilePerm); err != nil {
		return fmt.Errorf("manifest write %q: %w", path, err)
	}
	if len(base) > 0 {
		if diff := UnifiedDiff(filepath.Base(path), base, out); diff != "" {
			m.logger.Debug("manifest merged", "path", path, "diff", diff)
		}
	}
	return nil
}

// deepMerge merges b into a and returns the result. Nested maps merge
// recursively; any other conflicting value is taken from b.
func deepMerge(a, b map[string]any) map[string]any {
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		bm, bIsMap := v.(map[string]any)
		am, aIsMap := out[k].(map[string]any)
		if bIsMap && aIsMap {
			out[k] = deepMerge(am, bm)
			continue
		}
		out[k] = v
	}
	return out
}

// Additions builds the conventional package.json fragment shape from
// dependency and script sets. Empty sets are omitted so the merge never
// introduces empty objects.
func Additions(deps, devDeps, scripts map[string]string) map[string]any {
	out := map[string]any{}
	if len(deps) > 0 {
		out["dependencies"] = toAnyMap(deps)
	}
	if len(devDeps) > 0 {
		out["devDependencies"] = toAnyMap(devDeps)
	}
	if len(scripts) > 0 {
		out["scripts"] = toAnyMap(scripts)
	}
	return out
}

func toAnyMap(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// AppendScript chains cmd onto an existing script command with " && ".
// The existing command keeps running first, and a command already present
// is not duplicated, so repeated application is stable.
func AppendScript(existing, cmd string) string {
	if existing == "" {
		return cmd
	}
	if strings.Contains(existing, cmd) {
		return existing
	}
	return existing + " && " + cmd
}

// ReadScript returns the named script from the manifest at path, or ""
// when the file, scripts object, or key is absent.
func ReadScript(path, name string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return ""
	}
	scripts, ok := doc["scripts"].(map[string]any)
	if !ok {
		return ""
	}
	s, _ := scripts[name].(string)
	return s
}
