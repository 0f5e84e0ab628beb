package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"walle/internal/observ"
)

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in   string
		want uiMode
		err  bool
	}{
		{"", uiAuto, false},
		{"AUTO", uiAuto, false},
		{" on ", uiOn, false},
		{"off", uiOff, false},
		{"sometimes", uiAuto, true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("readUIMode(%q) = %v, %v", tt.in, got, err)
		}
	}
	if !uiOn.enabled() || uiOff.enabled() {
		t.Errorf("explicit modes must win")
	}
}

func TestPrintTimings(t *testing.T) {
	var buf bytes.Buffer
	printTimings(&buf, "a.pw", observ.Report{
		TotalMS: 1.5,
		Phases: []observ.PhaseReport{
			{Name: "parse", DurationMS: 1.0},
			{Name: "run", DurationMS: 0.5, Note: "12 steps"},
		},
	})
	want := "a.pw: parse 1.0 ms, run 0.5 ms [12 steps] (total 1.5 ms)\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}

	buf.Reset()
	printTimings(&buf, "empty", observ.Report{})
	if buf.Len() != 0 {
		t.Errorf("empty report should print nothing")
	}
}

// newRunCommand mirrors the flags runRun reads, detached from rootCmd.
func newRunCommand() *cobra.Command {
	root := &cobra.Command{Use: "walle"}
	root.PersistentFlags().Int("max-diagnostics", 100, "")
	child := &cobra.Command{Use: "run", RunE: func(*cobra.Command, []string) error { return nil }}
	child.Flags().Int("size", 64, "")
	child.Flags().Int("max-steps", 0, "")
	child.Flags().String("format", "ansi", "")
	child.Flags().String("snapshot", "", "")
	child.Flags().Bool("forward-labels", false, "")
	root.AddCommand(child)
	return child
}

func TestResolveRunConfigMergesManifestAndFlags(t *testing.T) {
	dir := t.TempDir()
	manifest := "[canvas]\nsize = 16\n[run]\nmain = \"main.pw\"\nmax_steps = 50\nforward_labels = true\n[output]\nformat = \"text\"\nsnapshot = \"out.mp\"\n"
	if err := os.WriteFile(filepath.Join(dir, "walle.toml"), []byte(manifest), 0o600); err != nil {
		t.Fatal(err)
	}
	program := filepath.Join(dir, "main.pw")

	cmd := newRunCommand()
	if err := cmd.Flags().Parse([]string{"--max-steps", "7"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := resolveRunConfig(cmd, program)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.canvasSize != 16 || cfg.maxSteps != 7 || !cfg.forwardLabels || cfg.outputFormat != "text" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.mainPath != program {
		t.Errorf("mainPath = %q, want %q", cfg.mainPath, program)
	}
	if cfg.snapshot != filepath.Join(dir, "out.mp") {
		t.Errorf("snapshot = %q", cfg.snapshot)
	}
	if cfg.maxDiagnostics != 100 {
		t.Errorf("maxDiagnostics = %d, want the flag default", cfg.maxDiagnostics)
	}
}

func TestResolveRunConfigRejectsBadSize(t *testing.T) {
	cmd := newRunCommand()
	if err := cmd.Flags().Parse([]string{"--size", "0"}); err != nil {
		t.Fatal(err)
	}
	_, err := resolveRunConfig(cmd, filepath.Join(t.TempDir(), "x.pw"))
	if err == nil || !strings.Contains(err.Error(), "canvas size") {
		t.Fatalf("expected canvas size error, got %v", err)
	}
}
