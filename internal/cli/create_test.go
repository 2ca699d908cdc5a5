package cli

import (
	"strings"
	"testing"

	"github.com/stackforge/stackforge/internal/cli/wizard"
	"github.com/stackforge/stackforge/internal/config"
	"github.com/stackforge/stackforge/internal/settings"
)

func TestApplyAnswers(t *testing.T) {
	t.Run("fills_empty_fields_only", func(t *testing.T) {
		raw := config.RawOptions{Type: "expo", Install: true}
		answers := &wizard.Result{
			ProjectName: "shop",
			ProjectType: "nextjs", // must not override the flag
			Database:    "turso",
			Monorepo:    true,
			Install:     true,
		}

		applyAnswers(&raw, answers)

		if raw.Type != "expo" {
			t.Errorf("Type = %q, flag value must win", raw.Type)
		}
		if raw.Name != "shop" || raw.Database != "turso" {
			t.Errorf("raw = %+v", raw)
		}
		if raw.Monorepo == nil || !*raw.Monorepo {
			t.Errorf("Monorepo = %v, want true", raw.Monorepo)
		}
	})

	t.Run("install_flag_can_veto_wizard", func(t *testing.T) {
		raw := config.RawOptions{Install: false}
		applyAnswers(&raw, &wizard.Result{Install: true})
		if raw.Install {
			t.Error("--no-install overridden by wizard answer")
		}
	})

	t.Run("simple_blocks_monorepo_answer", func(t *testing.T) {
		raw := config.RawOptions{Simple: true, Install: true}
		applyAnswers(&raw, &wizard.Result{Monorepo: true, Install: true})
		if raw.Monorepo != nil {
			t.Errorf("Monorepo = %v, want nil with --simple", raw.Monorepo)
		}
	})
}

func TestNextSteps(t *testing.T) {
	t.Run("node_project_without_install", func(t *testing.T) {
		cfg := &config.ProjectConfig{
			Name:           "shop",
			Directory:      "shop",
			Type:           config.TypeNextJS,
			PackageManager: "pnpm",
			Database:       "turso",
			Install:        false,
		}

		md := nextSteps(cfg)
		for _, want := range []string{"cd shop", "pnpm install", "turso", "pnpm run dev"} {
			if !strings.Contains(md, want) {
				t.Errorf("next steps missing %q:\n%s", want, md)
			}
		}
	})

	t.Run("flutter_project", func(t *testing.T) {
		cfg := &config.ProjectConfig{
			Name:      "app",
			Directory: "app",
			Type:      config.TypeFlutter,
			Database:  config.FeatureNone,
			Install:   true,
		}

		md := nextSteps(cfg)
		if !strings.Contains(md, "flutter run") {
			t.Errorf("flutter run missing:\n%s", md)
		}
		if strings.Contains(md, "install") {
			t.Errorf("install step present despite Install=true:\n%s", md)
		}
	})
}

func TestPriorResult(t *testing.T) {
	mono := false
	prior := priorResult(&settings.Settings{ProjectType: "expo", Monorepo: &mono})

	if prior.ProjectType != "expo" {
		t.Errorf("ProjectType = %q", prior.ProjectType)
	}
	if prior.Monorepo {
		t.Error("persisted monorepo=false not honored")
	}
	if !prior.Install {
		t.Error("unset install should default true")
	}
}
