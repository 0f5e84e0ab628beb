package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"walle/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove cached check results",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := driver.OpenDiskCache("walle")
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("clean cache: %w", err)
		}
		if !quiet(cmd) {
			fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
		}
		return nil
	},
}
