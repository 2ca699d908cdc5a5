package manifest

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestMergeJSON(t *testing.T) {
	t.Run("preserves_existing_and_adds", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "package.json")
		writeFile(t, path, `{"name": "my-app", "scripts": {"dev": "next dev"}}`)

		err := NewMerger(nil).MergeJSON(path, map[string]any{
			"scripts":      map[string]any{"db:push": "prisma db push"},
			"dependencies": map[string]any{"@prisma/client": "^6.1.0"},
		})
		if err != nil {
			t.Fatalf("MergeJSON error: %v", err)
		}

		var doc map[string]any
		data, _ := os.ReadFile(path)
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Fatalf("merged output not valid JSON: %v", err)
		}
		if doc["name"] != "my-app" {
			t.Errorf("name = %v, want my-app", doc["name"])
		}
		scripts := doc["scripts"].(map[string]any)
		if scripts["dev"] != "next dev" {
			t.Errorf("existing script lost: %v", scripts)
		}
		if scripts["db:push"] != "prisma db push" {
			t.Errorf("added script missing: %v", scripts)
		}
	})

	t.Run("additions_win_on_conflict", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "package.json")
		writeFile(t, path, `{"scripts": {"postinstall": "old"}}`)

		err := NewMerger(nil).MergeJSON(path, map[string]any{
			"scripts": map[string]any{"postinstall": "new"},
		})
		if err != nil {
			t.Fatalf("MergeJSON error: %v", err)
		}
		if got := ReadScript(path, "postinstall"); got != "new" {
			t.Errorf("postinstall = %q, want %q", got, "new")
		}
	})

	t.Run("idempotent_merge_byte_identical", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "package.json")
		writeFile(t, path, `{"name": "my-app"}`)

		additions := map[string]any{
			"dependencies": map[string]any{"drizzle-orm": "^0.38.0"},
			"scripts":      map[string]any{"db:studio": "drizzle-kit studio"},
		}
		m := NewMerger(nil)
		if err := m.MergeJSON(path, additions); err != nil {
			t.Fatal(err)
		}
		first, _ := os.ReadFile(path)
		if err := m.MergeJSON(path, additions); err != nil {
			t.Fatal(err)
		}
		second, _ := os.ReadFile(path)

		if !bytes.Equal(first, second) {
			t.Errorf("repeated merge changed output:\nfirst:  %s\nsecond: %s", first, second)
		}
	})

	t.Run("missing_file_treated_as_empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "package.json")
		err := NewMerger(nil).MergeJSON(path, map[string]any{"name": "fresh"})
		if err != nil {
			t.Fatalf("MergeJSON error: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("merged file not written: %v", err)
		}
		if !strings.Contains(string(data), `"name": "fresh"`) {
			t.Errorf("output = %s", data)
		}
	})

	t.Run("unparseable_file_treated_as_empty", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "package.json")
		writeFile(t, path, "{not json at all")

		err := NewMerger(nil).MergeJSON(path, map[string]any{"name": "recovered"})
		if err != nil {
			t.Fatalf("MergeJSON error: %v", err)
		}
		var doc map[string]any
		data, _ := os.ReadFile(path)
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Fatalf("output not valid JSON: %v", err)
		}
		if doc["name"] != "recovered" {
			t.Errorf("name = %v", doc["name"])
		}
	})

	t.Run("trailing_newline", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "package.json")
		if err := NewMerger(nil).MergeJSON(path, map[string]any{"a": "b"}); err != nil {
			t.Fatal(err)
		}
		data, _ := os.ReadFile(path)
		if !bytes.HasSuffix(data, []byte("\n")) {
			t.Errorf("output missing trailing newline: %q", data)
		}
	})
}

func TestMergeTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Cargo.toml")
	writeFile(t, path, "[package]\nname = \"placeholder\"\nedition = \"2021\"\n")

	err := NewMerger(nil).MergeTOML(path, map[string]any{
		"package": map[string]any{"name": "my-app", "version": "0.1.0"},
	})
	if err != nil {
		t.Fatalf("MergeTOML error: %v", err)
	}

	data, _ := os.ReadFile(path)
	s := string(data)
	if !strings.Contains(s, `name = 'my-app'`) && !strings.Contains(s, `name = "my-app"`) {
		t.Errorf("name not merged: %s", s)
	}
	if !strings.Contains(s, "edition") {
		t.Errorf("existing key lost: %s", s)
	}
}

func TestDeepMerge(t *testing.T) {
	a := map[string]any{
		"top":    "keep",
		"nested": map[string]any{"x": 1, "y": 2},
		"scalar": "old",
	}
	b := map[string]any{
		"nested": map[string]any{"y": 3, "z": 4},
		"scalar": "new",
	}

	out := deepMerge(a, b)

	if out["top"] != "keep" {
		t.Errorf("top = %v", out["top"])
	}
	if out["scalar"] != "new" {
		t.Errorf("scalar = %v", out["scalar"])
	}
	nested := out["nested"].(map[string]any)
	if nested["x"] != 1 || nested["y"] != 3 || nested["z"] != 4 {
		t.Errorf("nested = %v", nested)
	}
}

func TestAppendScript(t *testing.T) {
	cases := []struct{ existing, cmd, want string }{
		{"", "prisma generate", "prisma generate"},
		{"husky install", "prisma generate", "husky install && prisma generate"},
		{"prisma generate", "prisma generate", "prisma generate"},
		{"a && prisma generate", "prisma generate", "a && prisma generate"},
	}
	for _, c := range cases {
		if got := AppendScript(c.existing, c.cmd); got != c.want {
			t.Errorf("AppendScript(%q, %q) = %q, want %q", c.existing, c.cmd, got, c.want)
		}
	}
}

func TestAdditions(t *testing.T) {
	out := Additions(map[string]string{"pkg": "1.0.0"}, nil, nil)
	if _, ok := out["devDependencies"]; ok {
		t.Errorf("empty devDependencies emitted: %v", out)
	}
	deps := out["dependencies"].(map[string]any)
	if deps["pkg"] != "1.0.0" {
		t.Errorf("dependencies = %v", deps)
	}
}

func TestReadScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	writeFile(t, path, `{"scripts": {"postinstall": "husky install"}}`)

	if got := ReadScript(path, "postinstall"); got != "husky install" {
		t.Errorf("ReadScript = %q", got)
	}
	if got := ReadScript(path, "missing"); got != "" {
		t.Errorf("ReadScript missing key = %q, want empty", got)
	}
	if got := ReadScript(filepath.Join(dir, "nope.json"), "x"); got != "" {
		t.Errorf("ReadScript missing file = %q, want empty", got)
	}
}
