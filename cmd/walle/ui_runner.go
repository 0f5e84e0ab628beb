package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"walle/internal/driver"
	"walle/internal/source"
	"walle/internal/ui"
	"walle/internal/vm"
)

type runOutcome struct {
	result *driver.RunResult
	err    error
}

// runWithUI executes checked while a Bubble Tea viewer replays every pixel
// write. The viewer stays open until the user quits it.
func runWithUI(ctx context.Context, path string, checked *driver.CheckResult, opts driver.Options, delay time.Duration) (*driver.RunResult, error) {
	events := make(chan ui.RunEvent, 256)
	outcomeCh := make(chan runOutcome, 1)

	size := opts.CanvasSize
	if size <= 0 {
		size = vm.DefaultCanvasSize
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		runOpts := opts
		runOpts.OnPixel = pixelDelay(vm.PixelFunc(ui.PixelSink(events)), delay)
		res, err := driver.Execute(runCtx, checked, runOpts)
		final := ui.RunEvent{Done: true}
		switch {
		case err != nil:
			final.Final, final.Err = err.Error(), true
		case res.RuntimeErr != nil:
			final.Final, final.Err = res.RuntimeErr.Error(), true
		case res.VM != nil:
			final.Final = fmt.Sprintf("finished in %d steps", res.VM.Steps)
		}
		events <- final
		close(events)
		outcomeCh <- runOutcome{result: res, err: err}
	}()

	model := ui.NewCanvasModel(filepath.Base(path), size, true, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// Quitting early stops the interpreter; drain so it never blocks on a send.
	cancel()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if errors.Is(outcome.err, context.Canceled) && ctx.Err() == nil {
		// The viewer was closed before the program finished.
		return outcome.result, uiErr
	}
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

// runCheckWithUI is CheckFiles with a live per-file status list.
func runCheckWithUI(ctx context.Context, title string, files []string, opts driver.BatchOptions) (*source.FileSet, []driver.FileResult, error) {
	events := make(chan driver.FileEvent, 256)
	type checkOutcome struct {
		fs      *source.FileSet
		results []driver.FileResult
		err     error
	}
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		batch := opts
		batch.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.CheckFiles(ctx, files, batch)
		close(events)
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
	}()

	// Events carry FileSet paths, which are cleaned and slash separated.
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.ToSlash(filepath.Clean(f))
	}
	program := tea.NewProgram(ui.NewBatchModel(title, names, events), tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
