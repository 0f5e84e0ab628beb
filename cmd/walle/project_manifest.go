package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"walle/internal/project"
)

// runConfig is the manifest merged with command-line overrides.
type runConfig struct {
	manifest       string // path of walle.toml, empty when none was found
	mainPath       string
	canvasSize     int
	maxSteps       int
	maxDiagnostics int
	forwardLabels  bool
	outputFormat   string
	snapshot       string
}

// resolveRunConfig loads the walle.toml nearest to program (or to the
// working directory) and applies every flag the user set explicitly.
func resolveRunConfig(cmd *cobra.Command, program string) (runConfig, error) {
	startDir := "."
	if program != "" {
		if info, err := os.Stat(program); err == nil && info.IsDir() {
			startDir = program
		} else {
			startDir = filepath.Dir(program)
		}
	}

	cfg := project.DefaultConfig()
	var out runConfig
	m, ok, err := project.LoadNearest(startDir)
	if err != nil {
		return runConfig{}, err
	}
	if ok {
		cfg = m.Config
		out.manifest = m.Path
		out.mainPath, _ = m.MainPath()
	}

	out.canvasSize = cfg.Canvas.Size
	out.maxSteps = cfg.Run.MaxSteps
	out.maxDiagnostics = cfg.Run.MaxDiagnostics
	out.forwardLabels = cfg.Run.ForwardLabels
	out.outputFormat = cfg.Output.Format
	out.snapshot = cfg.Output.Snapshot
	if out.snapshot != "" && ok && !filepath.IsAbs(out.snapshot) {
		out.snapshot = filepath.Join(m.Root, out.snapshot)
	}

	// The persistent default only applies when the manifest is silent.
	if flagChanged(cmd, "max-diagnostics") || out.maxDiagnostics == 0 {
		n, err := maxDiagnostics(cmd)
		if err != nil {
			return runConfig{}, err
		}
		out.maxDiagnostics = n
	}
	if err := overrideInt(cmd, "size", &out.canvasSize); err != nil {
		return runConfig{}, err
	}
	if err := overrideInt(cmd, "max-steps", &out.maxSteps); err != nil {
		return runConfig{}, err
	}
	if err := overrideBool(cmd, "forward-labels", &out.forwardLabels); err != nil {
		return runConfig{}, err
	}
	if err := overrideString(cmd, "format", &out.outputFormat); err != nil {
		return runConfig{}, err
	}
	if err := overrideString(cmd, "snapshot", &out.snapshot); err != nil {
		return runConfig{}, err
	}

	if out.canvasSize < 1 || out.canvasSize > project.MaxCanvasSize {
		return runConfig{}, fmt.Errorf("canvas size must be between 1 and %d, got %d", project.MaxCanvasSize, out.canvasSize)
	}
	if out.maxSteps < 0 {
		return runConfig{}, fmt.Errorf("--max-steps must not be negative")
	}
	return out, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func overrideInt(cmd *cobra.Command, name string, dst *int) error {
	if !flagChanged(cmd, name) {
		return nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}

func overrideBool(cmd *cobra.Command, name string, dst *bool) error {
	if !flagChanged(cmd, name) {
		return nil
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}

func overrideString(cmd *cobra.Command, name string, dst *string) error {
	if !flagChanged(cmd, name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}
