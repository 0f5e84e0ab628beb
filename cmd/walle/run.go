package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"walle/internal/canvas"
	"walle/internal/driver"
	"walle/internal/observ"
	"walle/internal/project"
	"walle/internal/vm"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.pw]",
	Short: "Check and execute a program, then print the canvas",
	Long: `Run validates a program and, when it is free of errors, executes it on a
fresh canvas. Settings come from the nearest walle.toml; flags override them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	flags := runCmd.Flags()
	flags.Int("size", project.DefaultCanvasSize, "canvas side length")
	flags.Int("max-steps", 0, "abort after this many instructions (0 = unlimited)")
	flags.String("format", "ansi", "canvas output (ansi|text|json|none)")
	flags.String("snapshot", "", "write the final canvas to this msgpack file")
	flags.Bool("forward-labels", false, "allow GoTo to labels defined further down")
	flags.Bool("trace-exec", false, "print every executed instruction to stderr")
	flags.String("ui", "off", "draw live in the terminal (auto|on|off)")
	flags.Duration("delay", 0, "pause after each pixel in the live view")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveRunConfig(cmd, firstArg(args))
	if err != nil {
		return err
	}
	path := cfg.mainPath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no program given and no [run].main in %s", manifestNameOrNone(cfg))
	}
	switch cfg.outputFormat {
	case "ansi", "text", "json", "none":
	default:
		return fmt.Errorf("unknown format %q (expected ansi|text|json|none)", cfg.outputFormat)
	}

	flags := cmd.Flags()
	traceExec, err := flags.GetBool("trace-exec")
	if err != nil {
		return fmt.Errorf("failed to get trace-exec flag: %w", err)
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	delay, err := flags.GetDuration("delay")
	if err != nil {
		return fmt.Errorf("failed to get delay flag: %w", err)
	}
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := driver.Options{
		MaxDiagnostics: cfg.maxDiagnostics,
		ForwardLabels:  cfg.forwardLabels,
		CanvasSize:     cfg.canvasSize,
		MaxSteps:       cfg.maxSteps,
	}
	if timings {
		opts.Timer = observ.NewTimer()
	}

	checked, err := driver.Check(cmd.Context(), path, opts)
	if err != nil {
		return err
	}
	if !checked.OK() {
		if err := printDiagnostics(cmd, checked.Bag, checked.FileSet, "pretty"); err != nil {
			return err
		}
		return errReported
	}
	if traceExec {
		opts.ExecTracer = vm.NewTracer(cmd.ErrOrStderr(), checked.FileSet)
	}

	useUI := mode.enabled()
	var res *driver.RunResult
	if useUI {
		res, err = runWithUI(cmd.Context(), path, checked, opts, delay)
	} else {
		res, err = driver.Execute(cmd.Context(), checked, opts)
	}
	if err != nil {
		return err
	}

	if res.Canvas != nil {
		if err := writeCanvas(cmd, res, cfg.outputFormat, useUI); err != nil {
			return err
		}
		if cfg.snapshot != "" {
			if err := res.Canvas.WriteSnapshotFile(cfg.snapshot); err != nil {
				return fmt.Errorf("snapshot: %w", err)
			}
		}
	}
	if timings {
		printTimings(cmd.ErrOrStderr(), path, opts.Timer.Report())
	}

	if res.RuntimeErr != nil {
		if err := printDiagnostics(cmd, res.Bag, res.FileSet, "pretty"); err != nil {
			return err
		}
		dumpRing(cmd, tracer)
		return errReported
	}
	if !quiet(cmd) && res.VM != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d steps\n", path, res.VM.Steps)
	}
	return nil
}

func writeCanvas(cmd *cobra.Command, res *driver.RunResult, format string, shownLive bool) error {
	out := cmd.OutOrStdout()
	switch format {
	case "ansi":
		if shownLive {
			return nil
		}
		return res.Canvas.WriteANSI(out, useColor(cmd, os.Stdout))
	case "text":
		return res.Canvas.WriteText(out)
	case "json":
		return res.Canvas.WriteJSON(out, true)
	}
	return nil
}

// pixelDelay slows fn down for the live view.
func pixelDelay(fn vm.PixelFunc, d time.Duration) vm.PixelFunc {
	if d <= 0 {
		return fn
	}
	return func(x, y int, c canvas.Color) {
		fn(x, y, c)
		time.Sleep(d)
	}
}
