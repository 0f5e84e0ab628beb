package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"walle/internal/prof"
)

var profiling *prof.Session

// startProfiling runs before every command; stopProfiling runs after
// Execute returns, whatever the outcome.
func startProfiling(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Active() {
		return nil
	}
	profiling, err = prof.Start(opts)
	if err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}
	return nil
}

func stopProfiling() error {
	return profiling.Stop()
}
