package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"walle/internal/diag"
	"walle/internal/diagfmt"
	"walle/internal/driver"
	"walle/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.pw|dir]...",
	Short: "Validate programs without running them",
	Long: `Check runs the lexer, parser and validator over every program given.
Directories are searched for .pw files. Without arguments the [run].main
program of the nearest walle.toml is checked.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "files checked in parallel (0 = GOMAXPROCS)")
	checkCmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|short)")
	checkCmd.Flags().String("ui", "off", "show a live file list (auto|on|off)")
	checkCmd.Flags().Bool("forward-labels", false, "allow GoTo to labels defined further down")
}

type checkFileJSON struct {
	Path        string                     `json:"path"`
	Cached      bool                       `json:"cached"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"result"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	cfg, err := resolveRunConfig(cmd, firstArg(args))
	if err != nil {
		return err
	}
	paths := args
	if len(paths) == 0 {
		if cfg.mainPath == "" {
			return fmt.Errorf("no programs given and no [run].main in %s", manifestNameOrNone(cfg))
		}
		paths = []string{cfg.mainPath}
	}

	_, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := driver.BatchOptions{
		Options: driver.Options{
			MaxDiagnostics: cfg.maxDiagnostics,
			ForwardLabels:  cfg.forwardLabels,
		},
		Jobs: jobs,
	}
	if !noCache {
		if cache, err := driver.OpenDiskCache("walle"); err == nil {
			opts.Cache = cache
		}
	}

	var (
		fs      *source.FileSet
		results []driver.FileResult
	)
	if mode.enabled() {
		files, err := driver.ExpandPaths(paths)
		if err != nil {
			return err
		}
		fs, results, err = runCheckWithUI(cmd.Context(), "walle check", files, opts)
		if err != nil {
			return err
		}
	} else {
		fs, results, err = driver.CheckFiles(cmd.Context(), paths, opts)
		if err != nil {
			return err
		}
	}

	failed := 0
	cached := 0
	for _, r := range results {
		if r.Bag.HasErrors() {
			failed++
		}
		if r.Cached {
			cached++
		}
	}

	if format == "json" {
		out := make([]checkFileJSON, 0, len(results))
		for _, r := range results {
			r.Bag.Sort()
			out = append(out, checkFileJSON{
				Path:   r.Path,
				Cached: r.Cached,
				Diagnostics: diagfmt.BuildDiagnosticsOutput(r.Bag, fs, diagfmt.JSONOpts{
					IncludePositions: true,
					IncludeNotes:     true,
				}),
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		merged := diag.NewBag(0)
		for _, r := range results {
			merged.Merge(r.Bag)
		}
		if err := printDiagnostics(cmd, merged, fs, format); err != nil {
			return err
		}
		if timings {
			for _, r := range results {
				if r.Timing != nil {
					printTimings(cmd.ErrOrStderr(), filepath.ToSlash(r.Path), *r.Timing)
				}
			}
		}
		if !quiet(cmd) {
			fmt.Fprintf(cmd.ErrOrStderr(), "checked %d program%s: %d with errors, %d cached\n",
				len(results), plural(len(results)), failed, cached)
		}
	}

	if failed > 0 {
		return errReported
	}
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func manifestNameOrNone(cfg runConfig) string {
	if cfg.manifest == "" {
		return "any walle.toml (none found)"
	}
	return cfg.manifest
}

