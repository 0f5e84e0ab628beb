package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"walle/internal/diag"
	"walle/internal/diagfmt"
	"walle/internal/source"
)

var diagFormats = []string{"pretty", "json", "short"}

// printDiagnostics writes bag to stderr, or to stdout for json.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, format string) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Dedup()
	bag.Sort()
	switch format {
	case "json":
		return diagfmt.JSON(cmd.OutOrStdout(), bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
	case "short":
		_, err := fmt.Fprintln(cmd.ErrOrStderr(), diag.FormatShortDiagnostics(bag.Items(), fs, true))
		return err
	case "", "pretty":
		diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Context:   1,
			ShowNotes: true,
		})
		return nil
	default:
		return fmt.Errorf("unknown diagnostics format %q (expected pretty|json|short)", format)
	}
}

func maxDiagnostics(cmd *cobra.Command) (int, error) {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if n < 0 {
		return 0, fmt.Errorf("--max-diagnostics must not be negative")
	}
	return n, nil
}
