package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/stackforge/stackforge/internal/cli/wizard"
	"github.com/stackforge/stackforge/internal/config"
	"github.com/stackforge/stackforge/internal/generator"
	"github.com/stackforge/stackforge/internal/settings"
	"github.com/stackforge/stackforge/internal/toolchain"
	"github.com/stackforge/stackforge/internal/ui"
	"github.com/stackforge/stackforge/pkg/version"
	"github.com/stackforge/stackforge/templates"
)

// createFlags holds the raw flag values for the create command. Values are
// passed to the config resolver untouched; it owns validation and defaults.
type createFlags struct {
	dir            string
	projectType    string
	template       string
	force          bool
	monorepo       bool
	noMonorepo     bool
	simple         bool
	database       string
	orm            string
	storage        string
	auth           string
	deployment     string
	packageManager string
	install        bool
	noInstall      bool
	yes            bool
	staged         bool
	docs           bool
}

var createOpts createFlags

var createCmd = &cobra.Command{
	Use:     "create [project-name]",
	Aliases: []string{"new"},
	Short:   "Create a new project from a template",
	Long: `Create scaffolds a new project. Without flags it runs an interactive
wizard; with --yes (or when stdin is not a terminal) it uses flag values
and defaults only.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func init() {
	f := createCmd.Flags()
	f.StringVar(&createOpts.dir, "dir", "", "target directory (defaults to ./<project-name>)")
	f.StringVarP(&createOpts.projectType, "type", "t", "", "project type (nextjs, expo, tauri, flutter)")
	f.StringVar(&createOpts.template, "template", "", "template within the project type")
	f.BoolVarP(&createOpts.force, "force", "f", false, "scaffold into an existing directory")
	f.BoolVarP(&createOpts.monorepo, "monorepo", "m", false, "use a pnpm monorepo layout (default for Node types)")
	f.BoolVar(&createOpts.noMonorepo, "no-monorepo", false, "use a flat single-app layout")
	f.BoolVar(&createOpts.simple, "simple", false, "shorthand for --no-monorepo")
	f.StringVar(&createOpts.database, "database", "", "database provider (turso, sqlite, postgres, mysql, mongodb)")
	f.StringVar(&createOpts.orm, "orm", "", "ORM (prisma, drizzle, mongoose)")
	f.StringVar(&createOpts.storage, "storage", "", "blob storage provider (r2, s3, supabase, vercel-blob)")
	f.StringVar(&createOpts.auth, "auth", "", "auth provider (better-auth, clerk, next-auth)")
	f.StringVar(&createOpts.deployment, "deploy", "", "deployment target (vercel, cloudflare, aws)")
	f.StringVar(&createOpts.packageManager, "package-manager", "", "package manager (pnpm, npm, bun)")
	f.BoolVar(&createOpts.install, "install", true, "install dependencies after scaffolding")
	f.BoolVar(&createOpts.noInstall, "no-install", false, "skip dependency installation")
	f.BoolVarP(&createOpts.yes, "yes", "y", false, "skip the wizard and accept defaults")
	f.BoolVar(&createOpts.staged, "staged", false, "copy templates via a staging directory")
	f.BoolVar(&createOpts.docs, "docs", false, "add a docs app to the monorepo")
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger()
	tools := toolchain.NewRunner(logger)

	raw := rawFromFlags(cmd, args)

	interactive := !createOpts.yes &&
		isatty.IsTerminal(os.Stdin.Fd()) &&
		isatty.IsTerminal(os.Stdout.Fd())

	if interactive && raw.Type == "" {
		printBanner(cmd.OutOrStdout(), version.GetVersion())

		prior := settings.Load()
		answers, err := wizard.Run(wizard.DefaultQuestions(config.DefaultProjectName, priorResult(prior)))
		if err != nil {
			if errors.Is(err, wizard.ErrCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), cliWarn.Render("Cancelled."))
				return nil
			}
			return err
		}
		applyAnswers(&raw, answers)

		if err := settings.Save(settingsFrom(answers)); err != nil {
			logger.Warn("could not persist settings", "error", err)
		}
	}

	cfg, err := config.Resolve(ctx, raw, tools.EnsurePnpm)
	if err != nil {
		return err
	}
	cfg = enrich(ctx, cfg, tools)

	rep := ui.NewReporter()
	if !interactive {
		rep = ui.NewHeadlessReporter(cmd.OutOrStdout())
	}

	gen, err := generator.New(cfg, templates.FS(),
		generator.WithLogger(logger),
		generator.WithReporter(rep),
		generator.WithToolchain(tools),
	)
	if err != nil {
		return err
	}

	result, err := gen.Generate(ctx, cfg)
	if err != nil {
		return fmt.Errorf("scaffold %s: %w", cfg.Name, err)
	}

	printReport(cmd, cfg, result)
	return nil
}

// rawFromFlags converts parsed flags into resolver input. Changed checks keep
// the monorepo toggle tri-state so the resolver can apply its own default.
func rawFromFlags(cmd *cobra.Command, args []string) config.RawOptions {
	raw := config.RawOptions{
		Directory:      createOpts.dir,
		Type:           createOpts.projectType,
		Template:       createOpts.template,
		Force:          createOpts.force,
		Simple:         createOpts.simple,
		Database:       createOpts.database,
		ORM:            createOpts.orm,
		Storage:        createOpts.storage,
		Auth:           createOpts.auth,
		Deployment:     createOpts.deployment,
		PackageManager: createOpts.packageManager,
		Install:        createOpts.install && !createOpts.noInstall,
		Staged:         createOpts.staged,
	}
	if len(args) > 0 {
		raw.Name = args[0]
	}
	switch {
	case createOpts.noMonorepo:
		raw.Monorepo = boolPtr(false)
	case cmd.Flags().Changed("monorepo"):
		raw.Monorepo = boolPtr(createOpts.monorepo)
	}
	return raw
}

// applyAnswers copies wizard answers into raw options. Flags win: an answer
// only fills a field the user left empty on the command line.
func applyAnswers(raw *config.RawOptions, a *wizard.Result) {
	setIfEmpty(&raw.Name, a.ProjectName)
	setIfEmpty(&raw.Type, a.ProjectType)
	setIfEmpty(&raw.Template, a.Template)
	setIfEmpty(&raw.Database, a.Database)
	setIfEmpty(&raw.ORM, a.ORM)
	setIfEmpty(&raw.Storage, a.Storage)
	setIfEmpty(&raw.Auth, a.Auth)
	setIfEmpty(&raw.Deployment, a.Deployment)
	setIfEmpty(&raw.PackageManager, a.PackageManager)
	if raw.Monorepo == nil && !raw.Simple {
		raw.Monorepo = boolPtr(a.Monorepo)
	}
	raw.Install = raw.Install && a.Install
}

// priorResult seeds wizard defaults from persisted settings.
func priorResult(s *settings.Settings) wizard.Result {
	prior := wizard.Result{
		ProjectType:    s.ProjectType,
		Template:       s.Template,
		Database:       s.Database,
		ORM:            s.ORM,
		Storage:        s.Storage,
		Auth:           s.Auth,
		Deployment:     s.Deployment,
		PackageManager: s.PackageManager,
		Monorepo:       true,
		Install:        true,
	}
	if s.Monorepo != nil {
		prior.Monorepo = *s.Monorepo
	}
	if s.Install != nil {
		prior.Install = *s.Install
	}
	return prior
}

func settingsFrom(a *wizard.Result) *settings.Settings {
	return &settings.Settings{
		ProjectType:    a.ProjectType,
		Template:       a.Template,
		Database:       a.Database,
		ORM:            a.ORM,
		Storage:        a.Storage,
		Auth:           a.Auth,
		Deployment:     a.Deployment,
		PackageManager: a.PackageManager,
		Monorepo:       boolPtr(a.Monorepo),
		Install:        boolPtr(a.Install),
	}
}

// enrich attaches environment derived from the local toolchain and flags.
func enrich(ctx context.Context, cfg *config.ProjectConfig, tools *toolchain.Runner) *config.ProjectConfig {
	if cfg.Monorepo && cfg.PackageManager == config.PackageManagerPnpm {
		if v, err := tools.PnpmVersion(ctx); err == nil {
			cfg = cfg.WithPnpmVersion(v)
		}
	}
	if createOpts.docs && cfg.Monorepo {
		cfg = cfg.WithDocs(true)
	}
	return cfg
}

func printReport(cmd *cobra.Command, cfg *config.ProjectConfig, result *generator.Result) {
	out := cmd.OutOrStdout()

	pairs := []kvPair{
		{"Project", cfg.Name},
		{"Type", string(cfg.Type)},
		{"Template", cfg.Template},
		{"Directory", cfg.Directory},
		{"Layout", layoutLabel(cfg)},
		{"Files", fmt.Sprintf("%d created", len(result.CreatedFiles))},
	}
	fmt.Fprintln(out, renderSuccessCard("Project created", renderKeyValueLines(pairs)))

	for _, w := range result.Warnings {
		fmt.Fprintln(out, cliWarn.Render("! "+w))
	}

	fmt.Fprint(out, renderMarkdown(nextSteps(cfg)))
}

func layoutLabel(cfg *config.ProjectConfig) string {
	if cfg.Monorepo {
		return "monorepo"
	}
	return "flat"
}

// nextSteps builds the post-create instructions as markdown.
func nextSteps(cfg *config.ProjectConfig) string {
	var b strings.Builder
	b.WriteString("## Next steps\n\n")
	fmt.Fprintf(&b, "1. `cd %s`\n", filepath.Base(cfg.Directory))
	step := 2
	if !cfg.Install {
		if cfg.Type == config.TypeFlutter {
			fmt.Fprintf(&b, "%d. `flutter pub get`\n", step)
		} else {
			fmt.Fprintf(&b, "%d. `%s install`\n", step, cfg.PackageManager)
		}
		step++
	}
	if cfg.HasDatabase() {
		fmt.Fprintf(&b, "%d. Fill in the %s credentials in `.env`\n", step, cfg.Database)
		step++
	}
	if cfg.Type == config.TypeFlutter {
		fmt.Fprintf(&b, "%d. `flutter run`\n", step)
	} else {
		fmt.Fprintf(&b, "%d. `%s run dev`\n", step, cfg.PackageManager)
	}
	return b.String()
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func boolPtr(v bool) *bool { return &v }
