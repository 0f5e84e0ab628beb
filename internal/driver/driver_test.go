package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"walle/internal/canvas"
	"walle/internal/diag"
	"walle/internal/observ"
	"walle/internal/project"
	"walle/internal/token"
	"walle/internal/trace"
)

const redLine = "Spawn(0,0)\nColor(\"Red\")\nSize(1)\nDrawLine(1,0,3)\n"

func writeProgram(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTokenizeSource(t *testing.T) {
	res := TokenizeSource(context.Background(), "mem.pw", []byte("Spawn(0,0)\n"), 0)
	want := []token.Kind{token.KwSpawn, token.LParen, token.Number, token.Comma, token.Number, token.RParen, token.NewLine, token.EOF}
	if len(res.Tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(res.Tokens), len(want))
	}
	for i, k := range want {
		if res.Tokens[i].Kind != k {
			t.Errorf("token %d: %v, want %v", i, res.Tokens[i].Kind, k)
		}
	}
	if res.Bag.HasErrors() {
		t.Errorf("unexpected diagnostics")
	}
}

func TestRunSourceEndToEnd(t *testing.T) {
	timer := observ.NewTimer()
	res, err := RunSource(context.Background(), "mem.pw", []byte(redLine), Options{CanvasSize: 5, Timer: timer})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Executed() || res.RuntimeErr != nil || res.Bag.Len() != 0 {
		t.Fatalf("expected a clean run, got %d diagnostics", res.Bag.Len())
	}
	if got := res.Canvas.Count(canvas.Red, 0, 0, 4, 4); got != 4 {
		t.Errorf("red pixels = %d, want 4", got)
	}
	var names []string
	for _, p := range timer.Report().Phases {
		names = append(names, p.Name)
	}
	if strings.Join(names, ",") != "parse,sema,run" {
		t.Errorf("phases = %v", names)
	}
}

func TestFrontEndErrorsSkipExecution(t *testing.T) {
	res, err := RunSource(context.Background(), "mem.pw", []byte("Spawn(0,0)\nColor(1)\nDrawLine(1,0\n"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Executed() {
		t.Fatalf("program with errors must not run")
	}
	if !res.Bag.HasCategory(diag.CatSyntax) || !res.Bag.HasCategory(diag.CatSemantic) {
		t.Errorf("expected both syntax and semantic diagnostics:\n%s",
			diag.FormatShortDiagnostics(res.Bag.Items(), res.FileSet, false))
	}
}

func TestRunReportsRuntimeFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeProgram(t, dir, "boom.pw", "Spawn(1,1)\nColor(\"Blue\")\nFill()\nSpawn(10,10)\n")
	res, err := Run(context.Background(), path, Options{CanvasSize: 3})
	if err != nil {
		t.Fatal(err)
	}
	if res.RuntimeErr == nil || res.RuntimeErr.Code != diag.RunSpawnOutOfBounds {
		t.Fatalf("expected spawn failure, got %v", res.RuntimeErr)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Line != 4 {
		t.Fatalf("expected one runtime diagnostic on line 4, got %d", len(items))
	}
	if got := res.Canvas.Count(canvas.Blue, 0, 0, 2, 2); got != 9 {
		t.Errorf("fill before the failure should survive, blue = %d", got)
	}
}

func TestForwardLabelsOption(t *testing.T) {
	src := []byte("Spawn(0,0)\nGoTo[End](true)\nColor(\"Red\")\nEnd\n")
	strict := CheckSource(context.Background(), "mem.pw", src, Options{})
	if strict.OK() {
		t.Errorf("forward label should be rejected by default")
	}
	relaxed := CheckSource(context.Background(), "mem.pw", src, Options{ForwardLabels: true})
	if !relaxed.OK() {
		t.Errorf("forward label should pass when enabled:\n%s",
			diag.FormatShortDiagnostics(relaxed.Bag.Items(), relaxed.FileSet, false))
	}
}

func TestTracePassSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)
	if _, err := RunSource(ctx, "mem.pw", []byte(redLine), Options{CanvasSize: 5}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"→ parse", "← sema", "← run", "• DrawLine @4"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
}

func TestCheckFilesWithCache(t *testing.T) {
	dir := t.TempDir()
	writeProgram(t, dir, "a.pw", redLine)
	writeProgram(t, dir, "nested/b.pw", "Spawn(0,0)\nColor(\"Pink\")\n")
	writeProgram(t, dir, "c.pw", "Spawn(0,0)\nFill()\n")
	writeProgram(t, dir, "notes.txt", "not a program")

	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := BatchOptions{Jobs: 2, Cache: cache}

	_, first, err := CheckFiles(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 programs, got %d", len(first))
	}
	wantNames := []string{"a.pw", "c.pw", "b.pw"}
	for i, r := range first {
		if filepath.Base(r.Path) != wantNames[i] {
			t.Errorf("result %d is %s, want %s", i, r.Path, wantNames[i])
		}
		if r.Cached {
			t.Errorf("%s: first run cannot be cached", r.Path)
		}
	}
	if first[2].Bag.Len() != 1 || first[2].Bag.Items()[0].Code != diag.SemaUnknownColor {
		t.Errorf("b.pw should report the unknown color")
	}

	_, second, err := CheckFiles(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range second {
		if !r.Cached {
			t.Errorf("%s: expected a cache hit", r.Path)
		}
		if r.Bag.Len() != first[i].Bag.Len() || r.Instrs != first[i].Instrs {
			t.Errorf("%s: cached result differs", r.Path)
		}
	}
	if second[2].Bag.Items()[0].Line != 2 {
		t.Errorf("cached diagnostic lost its line")
	}
}

func TestDiskCacheLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewDiskCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	var key project.Digest
	key[0] = 7
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion, Path: "x.pw", Instrs: 3}); err != nil {
		t.Fatal(err)
	}
	var got DiskPayload
	hit, err := cache.Get(key, &got)
	if err != nil || !hit || got.Instrs != 3 {
		t.Fatalf("Get = %v, %v, %+v", hit, err, got)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "checks"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), ".mp") {
		t.Errorf("unexpected cache files: %v", entries)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if hit, _ := cache.Get(key, &got); hit {
		t.Errorf("entry survived DropAll")
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []FileEvent
}

func (s *recordingSink) OnFile(ev FileEvent) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func TestCheckFilesReportsProgress(t *testing.T) {
	dir := t.TempDir()
	good := writeProgram(t, dir, "good.pw", redLine)
	bad := writeProgram(t, dir, "bad.pw", "Spawn(0,0)\nColor(\"Pink\")\n")

	sink := &recordingSink{}
	if _, _, err := CheckFiles(context.Background(), []string{good, bad}, BatchOptions{Jobs: 1, Progress: sink}); err != nil {
		t.Fatal(err)
	}

	final := make(map[string]FileEvent)
	queued := 0
	for _, ev := range sink.events {
		if ev.Status == StatusQueued {
			queued++
		}
		if ev.Status.Finished() {
			final[filepath.Base(ev.Path)] = ev
		}
	}
	if queued != 2 || len(sink.events) != 6 {
		t.Fatalf("unexpected events: %+v", sink.events)
	}
	if final["good.pw"].Status != StatusDone {
		t.Errorf("good.pw finished as %v", final["good.pw"].Status)
	}
	if ev := final["bad.pw"]; ev.Status != StatusFailed || ev.Errors != 1 {
		t.Errorf("bad.pw finished as %+v", ev)
	}
}
