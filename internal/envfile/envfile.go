// Package envfile maintains KEY=VALUE env files (.env, .env.local, ...).
// It offers two deliberately distinct merge policies:
//
//   - Upsert replaces lines by key: an existing line whose key appears in
//     the updates is dropped and rewritten. Generators use it for provider
//     env vars, where the latest value must win.
//   - Append adds lines judged by full line content, never touching what is
//     already there. Generators use it for additive fragments such as
//     .gitignore entries, where pre-existing lines must survive verbatim.
//
// The two are not interchangeable.
package envfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stackforge/stackforge/internal/defs"
)

// Upsert inserts or replaces KEY=VALUE lines in the file at path.
// An empty updates map is an absolute no-op: the file is not created,
// touched, or truncated. The written file always ends with exactly one
// trailing newline, and each key appears exactly once.
func Upsert(path string, updates map[string]string) error {
	if len(updates) == 0 {
		return nil
	}

	existing := ""
	if data, err := os.ReadFile(path); err == nil {
		existing = string(data)
	}

	var kept []string
	for line := range strings.SplitSeq(existing, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, _, _ := strings.Cut(line, "=")
		if _, replaced := updates[strings.TrimSpace(key)]; replaced {
			continue
		}
		kept = append(kept, line)
	}

	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		kept = append(kept, k+"="+normalizeValue(updates[k]))
	}

	return write(path, kept)
}

// Append adds each line that is not already present in the file, judged by
// full line content. Existing content, including duplicate keys, is
// preserved untouched. An empty lines slice is a no-op.
func Append(path string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	existing := ""
	if data, err := os.ReadFile(path); err == nil {
		existing = string(data)
	}

	present := map[string]bool{}
	var kept []string
	for line := range strings.SplitSeq(existing, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		present[line] = true
		kept = append(kept, line)
	}

	appended := false
	for _, line := range lines {
		if present[line] {
			continue
		}
		kept = append(kept, line)
		present[line] = true
		appended = true
	}
	if !appended && existing != "" {
		return nil
	}

	return write(path, kept)
}

// normalizeValue quotes values containing whitespace that would break the
// one-var-per-line format: a value with a space or newline is wrapped in
// double quotes with embedded quotes escaped. Plain values stay unquoted.
func normalizeValue(v string) string {
	if strings.ContainsAny(v, " \n") {
		return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
	}
	return v
}

func write(path string, lines []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, defs.DirPerm); err != nil {
			return fmt.Errorf("envfile mkdir %q: %w", dir, err)
		}
	}
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), defs.FilePerm); err != nil {
		return fmt.Errorf("envfile write %q: %w", path, err)
	}
	return nil
}
