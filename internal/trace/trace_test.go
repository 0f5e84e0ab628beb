package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeProgram, false},
		{LevelDetail, ScopeProgram, true},
		{LevelDetail, ScopeInstr, false},
		{LevelDebug, ScopeInstr, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "PHASE", "Detail", "debug"} {
		l, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if !strings.EqualFold(l.String(), s) {
			t.Errorf("round trip %q -> %s", s, l)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Errorf("expected error for unknown level")
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)

	span := Begin(tr, ScopePass, "parse", 0)
	Point(tr, ScopeInstr, "DrawLine", span.ID(), 4, "pc=3")
	span.WithExtra("instrs", "7").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 events, got %d:\n%s", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if ev.Kind != "point" || ev.Name != "DrawLine" || ev.Line != 4 || ev.ParentID != span.ID() {
		t.Errorf("unexpected point event: %+v", ev)
	}
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if ev.Extra["instrs"] != "7" || ev.Detail != "ok" {
		t.Errorf("unexpected end event: %+v", ev)
	}
}

func TestLevelFiltersSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	Begin(tr, ScopeProgram, "file.pw", 0).End("")
	Point(tr, ScopeInstr, "Fill", 0, 1, "")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing at phase level, got %q", buf.String())
	}
	Begin(tr, ScopePass, "sema", 0).End("")
	if !strings.Contains(buf.String(), "→ sema") || !strings.Contains(buf.String(), "← sema") {
		t.Errorf("missing pass span: %q", buf.String())
	}
}

func TestRingKeepsNewest(t *testing.T) {
	r := NewRingTracer(3, LevelError)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeInstr, Name: name})
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot length %d", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Errorf("snap[%d] = %q, want %q", i, snap[i].Name, want)
		}
	}
}

func TestNewModes(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, Format: FormatText})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := RingOf(tr); !ok {
		t.Errorf("both mode should expose a ring")
	}
	Begin(tr, ScopePass, "run", 0).End("")
	if buf.Len() == 0 {
		t.Errorf("stream half wrote nothing")
	}

	off, err := New(Config{Level: LevelOff})
	if err != nil || off.Enabled() {
		t.Errorf("LevelOff should give a disabled tracer")
	}
}

func TestContextDefaultsToNop(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Errorf("expected Nop")
	}
	r := NewRingTracer(1, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Errorf("tracer not propagated")
	}
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 9})
	if CurrentSpan(ctx).SpanID != 9 {
		t.Errorf("span context not propagated")
	}
}
