// Package settings persists the user's last-used answers so the wizard can
// pre-fill them on the next run. Stored as YAML under the XDG config home.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/stackforge/stackforge/internal/defs"
)

// settingsRelPath is the settings file location relative to xdg.ConfigHome.
const settingsRelPath = "stackforge/settings.yaml"

// Settings holds the remembered selections. Zero values mean "never chosen".
type Settings struct {
	ProjectType    string `yaml:"project_type,omitempty"`
	Template       string `yaml:"template,omitempty"`
	Database       string `yaml:"database,omitempty"`
	ORM            string `yaml:"orm,omitempty"`
	Storage        string `yaml:"storage,omitempty"`
	Auth           string `yaml:"auth,omitempty"`
	Deployment     string `yaml:"deployment,omitempty"`
	PackageManager string `yaml:"package_manager,omitempty"`
	Monorepo       *bool  `yaml:"monorepo,omitempty"`
	Install        *bool  `yaml:"install,omitempty"`
}

// Path returns the settings file location, creating parent directories.
func Path() (string, error) {
	return xdg.ConfigFile(settingsRelPath)
}

// Load reads the persisted settings. A missing or unreadable file yields
// empty settings: remembered defaults are a convenience, never a failure.
func Load() *Settings {
	s := &Settings{}
	p, err := Path()
	if err != nil {
		return s
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return s
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return &Settings{}
	}
	return s
}

// Save persists the settings for the next invocation.
func Save(s *Settings) error {
	p, err := Path()
	if err != nil {
		return fmt.Errorf("settings path: %w", err)
	}
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p), defs.DirPerm); err != nil {
		return fmt.Errorf("settings mkdir: %w", err)
	}
	if err := os.WriteFile(p, out, defs.FilePerm); err != nil {
		return fmt.Errorf("settings write: %w", err)
	}
	return nil
}
