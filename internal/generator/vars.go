package generator

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/stackforge/stackforge/internal/config"
	"github.com/stackforge/stackforge/pkg/version"
)

var titleCaser = cases.Title(language.English)

// templateVars builds the substitution set for a render pass. Built fresh
// per call; never shared mutable state across renders.
func templateVars(cfg *config.ProjectConfig) map[string]string {
	return map[string]string{
		"projectName":    cfg.Name,
		"projectSlug":    slugify(cfg.Name),
		"projectTitle":   titleCaser.String(strings.ReplaceAll(slugify(cfg.Name), "-", " ")),
		"packageManager": cfg.PackageManager,
		"database":       cfg.Database,
		"orm":            cfg.ORM,
		"storage":        cfg.Storage,
		"auth":           cfg.Auth,
		"deployment":     cfg.Deployment,
		"generatorName":  "stackforge",
		"version":        version.GetVersion(),
	}
}

// templateFlags builds the conditional flag set for a render pass.
func templateFlags(cfg *config.ProjectConfig) map[string]bool {
	return map[string]bool{
		"monorepo":   cfg.Monorepo,
		"database":   cfg.HasDatabase(),
		"orm":        cfg.HasORM(),
		"storage":    cfg.HasStorage(),
		"auth":       cfg.HasAuth(),
		"deployment": cfg.HasDeployment(),
		"prisma":     cfg.ORM == "prisma",
		"drizzle":    cfg.ORM == "drizzle",
		"mongoose":   cfg.ORM == "mongoose",
		"turso":      cfg.Database == "turso",
		"docs":       cfg.ShouldGenerateDocs,
	}
}

// slugify lowercases the name and collapses anything that is not a letter,
// digit, or hyphen, producing a valid npm package name segment.
func slugify(name string) string {
	var b strings.Builder
	prevHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
