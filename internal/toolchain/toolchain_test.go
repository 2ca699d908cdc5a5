package toolchain

import (
	"errors"
	"testing"
)

func TestParseSemver(t *testing.T) {
	cases := []struct {
		in      string
		want    [3]int
		wantErr bool
	}{
		{"8.0.0", [3]int{8, 0, 0}, false},
		{"v9.12.3", [3]int{9, 12, 3}, false},
		{"10.2.0-beta.1", [3]int{10, 2, 0}, false},
		{"9.1.0+sha256", [3]int{9, 1, 0}, false},
		{"8", [3]int{8, 0, 0}, false},
		{" 8.5 ", [3]int{8, 5, 0}, false},
		{"", [3]int{}, true},
		{"abc", [3]int{}, true},
	}
	for _, c := range cases {
		got, err := parseSemver(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseSemver(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseSemver(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseSemver(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAtLeast(t *testing.T) {
	cases := []struct {
		v, min string
		want   bool
	}{
		{"8.0.0", "8.0.0", true},
		{"9.1.0", "8.0.0", true},
		{"7.33.7", "8.0.0", false},
		{"8.0.1", "8.0.0", true},
		{"8.0.0-rc.1", "8.0.0", true}, // pre-release suffix ignored
		{"10.0.0", "9.9.9", true},
	}
	for _, c := range cases {
		got, err := atLeast(c.v, c.min)
		if err != nil {
			t.Errorf("atLeast(%q, %q) error: %v", c.v, c.min, err)
			continue
		}
		if got != c.want {
			t.Errorf("atLeast(%q, %q) = %v, want %v", c.v, c.min, got, c.want)
		}
	}
}

func TestDetect(t *testing.T) {
	r := NewRunner(nil)

	r.lookPath = func(name string) (string, error) {
		if name == "present" {
			return "/usr/bin/present", nil
		}
		return "", errors.New("not found")
	}

	if !r.Detect("present") {
		t.Error("Detect(present) = false")
	}
	if r.Detect("absent") {
		t.Error("Detect(absent) = true")
	}
}

func TestPnpmVersionMissingTool(t *testing.T) {
	r := NewRunner(nil)
	r.lookPath = func(string) (string, error) { return "", errors.New("nope") }

	_, err := r.PnpmVersion(t.Context())
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("err = %v, want ErrToolNotFound", err)
	}
}

func TestInstallMissingTool(t *testing.T) {
	r := NewRunner(nil)
	r.lookPath = func(string) (string, error) { return "", errors.New("nope") }

	if err := r.Install(t.Context(), t.TempDir(), "pnpm"); !errors.Is(err, ErrToolNotFound) {
		t.Errorf("err = %v, want ErrToolNotFound", err)
	}
}
