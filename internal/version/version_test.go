package version

import (
	"testing"

	"github.com/fatih/color"
)

func withPlainOutput(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestVersionIsPlain(t *testing.T) {
	if Version == "" {
		t.Fatal("Version should have a default value")
	}
	for _, r := range Version {
		if r == 0x1b {
			t.Fatalf("Version contains escape sequences: %q", Version)
		}
	}
}

func TestColoredWithoutColor(t *testing.T) {
	withPlainOutput(t)
	orig := Version
	t.Cleanup(func() { Version = orig })

	tests := []string{"0.1.0", "1.2.3-rc.1", "2.0.0-alpha-2", "7"}
	for _, v := range tests {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() = %q, want %q", got, v)
		}
	}
}

func TestSummary(t *testing.T) {
	withPlainOutput(t)
	origV, origC, origD := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origV, origC, origD })

	Version, GitCommit, BuildDate = "1.2.3", "", ""
	if got := Summary(); got != "walle 1.2.3" {
		t.Errorf("Summary() = %q", got)
	}
	GitCommit, BuildDate = "abc123", "2024-01-15"
	if got, want := Summary(), "walle 1.2.3 (abc123) built 2024-01-15"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
