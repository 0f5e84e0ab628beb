package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"walle/internal/diag"
	"walle/internal/observ"
	"walle/internal/source"
	"walle/internal/trace"
)

// SourceExt is the extension collected from directories.
const SourceExt = ".pw"

// FileResult is the check outcome for one file of a batch.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Instrs int
	Cached bool
	Timing *observ.Report
}

// BatchOptions configure CheckFiles.
type BatchOptions struct {
	Options
	Jobs  int        // 0 means GOMAXPROCS
	Cache    *DiskCache   // optional
	Progress ProgressSink // optional
}

// ExpandPaths replaces each directory in paths with the sorted list of
// program files below it. Plain files are kept as given.
func ExpandPaths(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		slices.Sort(found)
		out = append(out, found...)
	}
	return out, nil
}

// CheckFiles validates every program concurrently. All files share one
// FileSet, loaded up front; results keep the order of paths.
func CheckFiles(ctx context.Context, paths []string, opts BatchOptions) (*source.FileSet, []FileResult, error) {
	files, err := ExpandPaths(paths)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	ids := make([]source.FileID, len(files))
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		ids[i] = id
	}
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	tr := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	for _, id := range ids {
		notify(opts.Progress, FileEvent{Path: fileSet.Get(id).Path, Status: StatusQueued})
	}

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			file := fileSet.Get(ids[i])
			notify(opts.Progress, FileEvent{Path: file.Path, Status: StatusChecking})
			span := trace.Begin(tr, trace.ScopeProgram, file.Path, parent)
			fileCtx := trace.WithSpanContext(gctx, trace.SpanContext{SpanID: span.ID()})

			res := checkOne(fileCtx, fileSet, file, opts)
			if res.Cached {
				span.WithExtra("cached", "true")
			}
			span.End("")
			results[i] = res
			notify(opts.Progress, finishEvent(res))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, nil, err
	}
	return fileSet, results, nil
}

func checkOne(ctx context.Context, fileSet *source.FileSet, file *source.File, opts BatchOptions) FileResult {
	out := FileResult{Path: file.Path, FileID: file.ID}
	key := checkCacheKey(file, opts.Options)

	var payload DiskPayload
	hit, err := opts.Cache.Get(key, &payload)
	if err == nil && hit && payload.ContentHash == file.Hash {
		out.Bag = payload.restore(file.ID, opts.MaxDiagnostics)
		out.Instrs = payload.Instrs
		out.Cached = true
		return out
	}

	fileOpts := opts.Options
	fileOpts.Timer = observ.NewTimer()
	res := frontEnd(ctx, fileSet, file, fileOpts, true)
	report := fileOpts.Timer.Report()

	out.Bag = res.Bag
	out.Instrs = res.Program.Len()
	out.Timing = &report
	// A failed write only costs a re-check next time.
	_ = opts.Cache.Put(key, toDiskPayload(res))
	return out
}

func finishEvent(res FileResult) FileEvent {
	ev := FileEvent{Path: res.Path, Status: StatusDone}
	if res.Bag != nil {
		ev.Errors = res.Bag.Len()
	}
	switch {
	case ev.Errors > 0:
		ev.Status = StatusFailed
	case res.Cached:
		ev.Status = StatusCached
	}
	return ev
}
