package wizard

import (
	"github.com/stackforge/stackforge/internal/config"
)

// DefaultQuestions returns the standard question sequence for project
// creation. prior carries remembered selections (persisted settings) used
// as defaults; zero values fall back to catalog defaults.
func DefaultQuestions(defaultName string, prior Result) []Question {
	if defaultName == "" {
		defaultName = config.DefaultProjectName
	}

	return []Question{
		{
			ID:      "project_name",
			Type:    QuestionTypeInput,
			Title:   "Project name",
			Default: defaultName,
			Apply:   func(r *Result, v string) { r.ProjectName = v },
		},
		{
			ID:          "project_type",
			Type:        QuestionTypeSelect,
			Title:       "Select a framework",
			Description: "Determines the project layout and tooling.",
			Options: []Option{
				{Label: "Next.js", Value: string(config.TypeNextJS)},
				{Label: "Expo (React Native)", Value: string(config.TypeExpo)},
				{Label: "Tauri (desktop)", Value: string(config.TypeTauri)},
				{Label: "Flutter", Value: string(config.TypeFlutter)},
			},
			Default: orDefault(prior.ProjectType, string(config.TypeNextJS)),
			Apply:   func(r *Result, v string) { r.ProjectType = v },
		},
		{
			ID:    "template",
			Type:  QuestionTypeSelect,
			Title: "Select a template",
			OptionsFunc: func(r *Result) []Option {
				t := config.ProjectType(r.ProjectType)
				var opts []Option
				for _, tmpl := range config.TemplatesFor(t) {
					opts = append(opts, Option{Label: tmpl, Value: tmpl})
				}
				return opts
			},
			DefaultFunc: func(r *Result) string {
				return config.DefaultTemplate(config.ProjectType(r.ProjectType))
			},
			Apply: func(r *Result, v string) { r.Template = v },
		},
		{
			ID:        "database",
			Type:      QuestionTypeSelect,
			Title:     "Select a database",
			Options:   selectOptions(config.Databases()),
			Default:   orDefault(prior.Database, config.FeatureNone),
			Condition: isNodeType,
			Apply:     func(r *Result, v string) { r.Database = v },
		},
		{
			ID:    "orm",
			Type:  QuestionTypeSelect,
			Title: "Select an ORM",
			OptionsFunc: func(r *Result) []Option {
				// Only offer ORMs compatible with the chosen database.
				switch r.Database {
				case "mongodb":
					return selectOptions([]string{config.FeatureNone, "mongoose"})
				default:
					return selectOptions([]string{config.FeatureNone, "prisma", "drizzle"})
				}
			},
			Default: orDefault(prior.ORM, config.FeatureNone),
			Condition: func(r *Result) bool {
				return isNodeType(r) && r.Database != config.FeatureNone && r.Database != ""
			},
			Apply: func(r *Result, v string) { r.ORM = v },
		},
		{
			ID:        "storage",
			Type:      QuestionTypeSelect,
			Title:     "Select a storage provider",
			Options:   selectOptions(config.StorageProviders()),
			Default:   orDefault(prior.Storage, config.FeatureNone),
			Condition: isNodeType,
			Apply:     func(r *Result, v string) { r.Storage = v },
		},
		{
			ID:        "auth",
			Type:      QuestionTypeSelect,
			Title:     "Select an auth provider",
			Options:   selectOptions(config.AuthProviders()),
			Default:   orDefault(prior.Auth, config.FeatureNone),
			Condition: isNodeType,
			Apply:     func(r *Result, v string) { r.Auth = v },
		},
		{
			ID:        "deployment",
			Type:      QuestionTypeSelect,
			Title:     "Select a deployment target",
			Options:   selectOptions(config.DeploymentTargets()),
			Default:   orDefault(prior.Deployment, config.FeatureNone),
			Condition: isNodeType,
			Apply:     func(r *Result, v string) { r.Deployment = v },
		},
		{
			ID:          "monorepo",
			Type:        QuestionTypeConfirm,
			Title:       "Use a monorepo layout?",
			Description: "apps/ + packages/ workspace managed with pnpm.",
			Default:     "true",
			Condition:   isNodeType,
			Apply:       func(r *Result, v string) { r.Monorepo = v == "true" },
		},
		{
			ID:      "package_manager",
			Type:    QuestionTypeSelect,
			Title:   "Select a package manager",
			Options: selectOptions(config.PackageManagers()),
			Default: orDefault(prior.PackageManager, config.PackageManagerNpm),
			// Monorepo layouts are pnpm-managed, so the choice only exists
			// for flat Node projects.
			Condition: func(r *Result) bool {
				return isNodeType(r) && !r.Monorepo
			},
			Apply: func(r *Result, v string) { r.PackageManager = v },
		},
		{
			ID:      "install",
			Type:    QuestionTypeConfirm,
			Title:   "Install dependencies after generation?",
			Default: "true",
			Apply:   func(r *Result, v string) { r.Install = v == "true" },
		},
	}
}

// isNodeType reports whether the chosen framework produces a Node package.
func isNodeType(r *Result) bool {
	return config.ProjectType(r.ProjectType).IsNode()
}

// selectOptions maps plain values to options labeled by themselves.
func selectOptions(values []string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Label: v, Value: v}
	}
	return opts
}

// orDefault returns v unless empty, else fallback.
func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
