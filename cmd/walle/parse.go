package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"walle/internal/diagfmt"
	"walle/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.pw",
	Short: "Print the syntax tree of a program",
	Long:  `Parse builds the instruction list of a program without validating it`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json)")
	parseCmd.Flags().Bool("forward-labels", false, "allow GoTo to labels defined further down")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "tree" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	forward, err := cmd.Flags().GetBool("forward-labels")
	if err != nil {
		return fmt.Errorf("failed to get forward-labels flag: %w", err)
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	_, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := driver.Parse(cmd.Context(), args[0], driver.Options{
		MaxDiagnostics: maxDiag,
		ForwardLabels:  forward,
	})
	if err != nil {
		return err
	}
	if err := printDiagnostics(cmd, res.Bag, res.FileSet, "pretty"); err != nil {
		return err
	}

	if format == "json" {
		err = diagfmt.FormatASTJSON(cmd.OutOrStdout(), res.Builder, res.Program, res.FileSet)
	} else {
		err = diagfmt.FormatASTPretty(cmd.OutOrStdout(), res.Builder, res.Program, res.FileSet)
	}
	if err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return errReported
	}
	return nil
}
