package generator

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stackforge/stackforge/internal/config"
)

// testTemplates is a minimal in-memory template corpus covering the trees
// the orchestrators copy.
func testTemplates() fstest.MapFS {
	return fstest.MapFS{
		"nextjs/default/package.json.tmpl": &fstest.MapFile{
			Data: []byte(`{"name": "{{projectSlug}}", "scripts": {"dev": "next dev", "postinstall": "husky install"}}`),
		},
		"nextjs/default/app/page.tsx.tmpl": &fstest.MapFile{
			Data: []byte("export default () => <h1>{{projectTitle}}</h1>;\n"),
		},
		"nextjs/default/_gitignore": &fstest.MapFile{
			Data: []byte(".next/\n"),
		},
		"nextjs/minimal/package.json.tmpl": &fstest.MapFile{
			Data: []byte(`{"name": "{{projectSlug}}"}`),
		},
		"monorepo/base/package.json.tmpl": &fstest.MapFile{
			Data: []byte(`{"name": "{{projectSlug}}", "scripts": {"build": "turbo run build"}}`),
		},
		"monorepo/base/turbo.json": &fstest.MapFile{
			Data: []byte(`{"tasks": {"build": {}}}`),
		},
		"flutter/default/pubspec.yaml.tmpl": &fstest.MapFile{
			Data: []byte("name: {{projectSlug}}\n"),
		},
		"expo/default/package.json.tmpl": &fstest.MapFile{
			Data: []byte(`{"name": "{{projectSlug}}"}`),
		},
		"expo/default/app.json.tmpl": &fstest.MapFile{
			Data: []byte(`{"expo": {"version": "1.0.0"}}`),
		},
		"tauri/default/package.json.tmpl": &fstest.MapFile{
			Data: []byte(`{"name": "{{projectSlug}}"}`),
		},
		"tauri/default/src-tauri/Cargo.toml.tmpl": &fstest.MapFile{
			Data: []byte("[package]\nname = \"{{projectSlug}}\"\nedition = \"2021\"\n"),
		},
		"tauri/default/src-tauri/tauri.conf.json.tmpl": &fstest.MapFile{
			Data: []byte(`{"build": {"devUrl": "http://localhost:1420"}}`),
		},
	}
}

func resolvedConfig(t *testing.T, mutate func(*config.ProjectConfig)) *config.ProjectConfig {
	t.Helper()
	cfg := &config.ProjectConfig{
		Name:           "My App",
		Directory:      filepath.Join(t.TempDir(), "my-app"),
		Type:           config.TypeNextJS,
		Template:       "default",
		Database:       config.FeatureNone,
		ORM:            config.FeatureNone,
		Storage:        config.FeatureNone,
		Auth:           config.FeatureNone,
		Deployment:     config.FeatureNone,
		PackageManager: config.PackageManagerNpm,
	}
	if mutate != nil {
		mutate(cfg)
	}
	return cfg
}

func generate(t *testing.T, cfg *config.ProjectConfig) *Result {
	t.Helper()
	gen, err := New(cfg, testTemplates())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	result, err := gen.Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	return result
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return doc
}

func TestNextjsFlatLayout(t *testing.T) {
	cfg := resolvedConfig(t, nil)

	result := generate(t, cfg)

	// Flat layout: app files at the project root, no workspace artifacts.
	pkg := readJSON(t, filepath.Join(cfg.Directory, "package.json"))
	if pkg["name"] != "my-app" {
		t.Errorf("package name = %v, want my-app", pkg["name"])
	}
	if _, err := os.Stat(filepath.Join(cfg.Directory, "pnpm-workspace.yaml")); !os.IsNotExist(err) {
		t.Error("workspace file created for flat layout")
	}

	page, err := os.ReadFile(filepath.Join(cfg.Directory, "app", "page.tsx"))
	if err != nil {
		t.Fatalf("page.tsx missing: %v", err)
	}
	if !strings.Contains(string(page), "My App") {
		t.Errorf("page.tsx = %q, want rendered title", page)
	}

	if !slices.Contains(result.CreatedFiles, "package.json") {
		t.Errorf("CreatedFiles = %v, want package.json entry", result.CreatedFiles)
	}
}

func TestNextjsMonorepoLayout(t *testing.T) {
	cfg := resolvedConfig(t, func(c *config.ProjectConfig) {
		c.Monorepo = true
		c.PackageManager = config.PackageManagerPnpm
	})
	cfg = cfg.WithPnpmVersion("9.5.0")

	result := generate(t, cfg)

	// Workspace declaration and root manifest.
	ws, err := os.ReadFile(filepath.Join(cfg.Directory, "pnpm-workspace.yaml"))
	if err != nil {
		t.Fatalf("pnpm-workspace.yaml missing: %v", err)
	}
	if !strings.Contains(string(ws), "apps/*") || !strings.Contains(string(ws), "packages/*") {
		t.Errorf("workspace globs missing: %s", ws)
	}

	root := readJSON(t, filepath.Join(cfg.Directory, "package.json"))
	if root["private"] != true {
		t.Errorf("root manifest not private: %v", root)
	}
	if root["packageManager"] != "pnpm@9.5.0" {
		t.Errorf("packageManager = %v", root["packageManager"])
	}
	// Base template content survives the root merge.
	if _, ok := root["scripts"].(map[string]any)["build"]; !ok {
		t.Errorf("base scripts lost in merge: %v", root)
	}

	// App nested under apps/web.
	if _, err := os.Stat(filepath.Join(cfg.Directory, "apps", "web", "package.json")); err != nil {
		t.Errorf("apps/web/package.json missing: %v", err)
	}
	if !slices.Contains(result.CreatedFiles, "apps/web/package.json") {
		t.Errorf("CreatedFiles = %v, want apps/web/package.json", result.CreatedFiles)
	}
}

func TestDocsAppGenerated(t *testing.T) {
	cfg := resolvedConfig(t, func(c *config.ProjectConfig) {
		c.Monorepo = true
		c.PackageManager = config.PackageManagerPnpm
	})
	cfg = cfg.WithDocs(true)

	generate(t, cfg)

	docs := readJSON(t, filepath.Join(cfg.Directory, "apps", "docs", "package.json"))
	if docs["name"] != "my-app-docs" {
		t.Errorf("docs name = %v, want my-app-docs", docs["name"])
	}
}

func TestFeatureWiring(t *testing.T) {
	cfg := resolvedConfig(t, func(c *config.ProjectConfig) {
		c.Database = "turso"
		c.ORM = "prisma"
	})

	generate(t, cfg)

	pkg := readJSON(t, filepath.Join(cfg.Directory, "package.json"))

	deps := pkg["dependencies"].(map[string]any)
	if _, ok := deps["@libsql/client"]; !ok {
		t.Errorf("turso client dep missing: %v", deps)
	}
	if _, ok := deps["@prisma/client"]; !ok {
		t.Errorf("prisma client dep missing: %v", deps)
	}

	scripts := pkg["scripts"].(map[string]any)
	// Template-provided postinstall is chained, not overwritten.
	if scripts["postinstall"] != "husky install && prisma generate" {
		t.Errorf("postinstall = %v", scripts["postinstall"])
	}
	if scripts["dev"] != "next dev" {
		t.Errorf("template script lost: %v", scripts)
	}
	if scripts["db:push"] != "prisma db push" {
		t.Errorf("db:push = %v", scripts["db:push"])
	}

	// Env placeholders for the provider's keys.
	env, err := os.ReadFile(filepath.Join(cfg.Directory, ".env"))
	if err != nil {
		t.Fatalf(".env missing: %v", err)
	}
	for _, key := range []string{"TURSO_DATABASE_URL=", "TURSO_AUTH_TOKEN="} {
		if !strings.Contains(string(env), key) {
			t.Errorf(".env missing %s: %q", key, env)
		}
	}

	// gitignore keeps template entries and gains feature entries.
	gi, err := os.ReadFile(filepath.Join(cfg.Directory, ".gitignore"))
	if err != nil {
		t.Fatalf(".gitignore missing: %v", err)
	}
	for _, line := range []string{".next/", "node_modules/", "*.db"} {
		if !strings.Contains(string(gi), line) {
			t.Errorf(".gitignore missing %q: %q", line, gi)
		}
	}
}

func TestProvisionedCredentialsLandInEnv(t *testing.T) {
	cfg := resolvedConfig(t, func(c *config.ProjectConfig) {
		c.Database = "turso"
	})
	cfg = cfg.WithDatabaseCredentials(map[string]string{
		"TURSO_DATABASE_URL": "libsql://demo.turso.io",
		"TURSO_AUTH_TOKEN":   "tok123",
	})

	generate(t, cfg)

	env, err := os.ReadFile(filepath.Join(cfg.Directory, ".env"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(env), "TURSO_DATABASE_URL=libsql://demo.turso.io") {
		t.Errorf("provisioned URL missing: %q", env)
	}
	if !strings.Contains(string(env), "TURSO_AUTH_TOKEN=tok123") {
		t.Errorf("provisioned token missing: %q", env)
	}
}

func TestVercelDeploymentManifest(t *testing.T) {
	cfg := resolvedConfig(t, func(c *config.ProjectConfig) {
		c.Deployment = "vercel"
	})

	result := generate(t, cfg)

	doc := readJSON(t, filepath.Join(cfg.Directory, "vercel.json"))
	if doc["framework"] != "nextjs" {
		t.Errorf("vercel.json framework = %v", doc["framework"])
	}
	if !slices.Contains(result.CreatedFiles, "vercel.json") {
		t.Errorf("CreatedFiles = %v, want vercel.json", result.CreatedFiles)
	}
}

func TestFlutterGeneration(t *testing.T) {
	cfg := resolvedConfig(t, func(c *config.ProjectConfig) {
		c.Type = config.TypeFlutter
		c.Monorepo = false
	})

	generate(t, cfg)

	pub, err := os.ReadFile(filepath.Join(cfg.Directory, "pubspec.yaml"))
	if err != nil {
		t.Fatalf("pubspec.yaml missing: %v", err)
	}
	if !strings.Contains(string(pub), "name: my-app") {
		t.Errorf("pubspec = %q", pub)
	}
	if _, err := os.Stat(filepath.Join(cfg.Directory, "package.json")); !os.IsNotExist(err) {
		t.Error("flutter project got a package.json")
	}
}

func TestExpoAppManifest(t *testing.T) {
	cfg := resolvedConfig(t, func(c *config.ProjectConfig) {
		c.Type = config.TypeExpo
	})

	generate(t, cfg)

	doc := readJSON(t, filepath.Join(cfg.Directory, "app.json"))
	expo := doc["expo"].(map[string]any)
	if expo["name"] != "My App" || expo["slug"] != "my-app" {
		t.Errorf("expo manifest = %v", expo)
	}
	// Template-provided keys survive the merge.
	if expo["version"] != "1.0.0" {
		t.Errorf("template version lost: %v", expo)
	}
}

func TestTauriManifests(t *testing.T) {
	cfg := resolvedConfig(t, func(c *config.ProjectConfig) {
		c.Type = config.TypeTauri
	})

	generate(t, cfg)

	cargo, err := os.ReadFile(filepath.Join(cfg.Directory, "src-tauri", "Cargo.toml"))
	if err != nil {
		t.Fatalf("Cargo.toml missing: %v", err)
	}
	s := string(cargo)
	if !strings.Contains(s, "my-app") {
		t.Errorf("crate name not merged: %s", s)
	}
	if !strings.Contains(s, "edition") {
		t.Errorf("template key lost: %s", s)
	}

	conf := readJSON(t, filepath.Join(cfg.Directory, "src-tauri", "tauri.conf.json"))
	if conf["productName"] != "My App" {
		t.Errorf("productName = %v", conf["productName"])
	}
	if conf["identifier"] != "com.my-app.app" {
		t.Errorf("identifier = %v", conf["identifier"])
	}
	if _, ok := conf["build"]; !ok {
		t.Errorf("template build config lost: %v", conf)
	}
}

func TestNewRejectsUnknownType(t *testing.T) {
	cfg := resolvedConfig(t, func(c *config.ProjectConfig) {
		c.Type = config.ProjectType("angular")
	})

	_, err := New(cfg, testTemplates())
	if !errors.Is(err, config.ErrInvalidProjectType) {
		t.Errorf("err = %v, want ErrInvalidProjectType", err)
	}
}

func TestCancelledContext(t *testing.T) {
	cfg := resolvedConfig(t, nil)
	gen, err := New(cfg, testTemplates())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := gen.Generate(ctx, cfg); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"My App", "my-app"},
		{"my-app", "my-app"},
		{"Hello  World!!", "hello-world"},
		{"App2024", "app2024"},
		{"  padded  ", "padded"},
	}
	for _, c := range cases {
		if got := slugify(c.in); got != c.want {
			t.Errorf("slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTemplateFlags(t *testing.T) {
	cfg := resolvedConfig(t, func(c *config.ProjectConfig) {
		c.Database = "turso"
		c.ORM = "drizzle"
	})

	flags := templateFlags(cfg)
	if !flags["database"] || !flags["turso"] || !flags["drizzle"] {
		t.Errorf("flags = %v", flags)
	}
	if flags["prisma"] || flags["monorepo"] {
		t.Errorf("unexpected truthy flags: %v", flags)
	}
}
