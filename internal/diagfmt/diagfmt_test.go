package diagfmt_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"walle/internal/diag"
	"walle/internal/diagfmt"
	"walle/internal/driver"
	"walle/internal/source"
)

const unknownColorSrc = "Spawn(0,0)\nColor(\"Pink\")\n"

func unknownColorBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("mem.pw", []byte(unknownColorSrc))
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SemaUnknownColor, 2, source.Span{File: id, Start: 17, End: 23}, `unknown color "Pink"`).
		WithNote(source.Span{File: id, Start: 0, End: 5}, 1, "pen spawned here"))
	return bag, fs
}

func TestPrettyUnderlinesSpan(t *testing.T) {
	bag, fs := unknownColorBag(t)
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{ShowNotes: true})

	want := "mem.pw:2:7: SEMANTIC SEM3006: unknown color \"Pink\"\n" +
		" 2 | Color(\"Pink\")\n" +
		"   |       ^~~~~~\n" +
		"  note: mem.pw:1:1: pen spawned here\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestPrettyContextAndNotesOff(t *testing.T) {
	bag, fs := unknownColorBag(t)
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Context: 1})

	out := buf.String()
	if !strings.Contains(out, " 1 | Spawn(0,0)\n") {
		t.Errorf("context line missing:\n%s", out)
	}
	if strings.Contains(out, "note:") {
		t.Errorf("notes should be hidden:\n%s", out)
	}
}

func TestPrettyWithoutFileSet(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.RunStepLimit, 4, source.Span{}, "step limit 10 exceeded"))
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, nil, diagfmt.PrettyOpts{})
	want := "<input>:4: RUNTIME RUN4008: step limit 10 exceeded\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestJSONDocument(t *testing.T) {
	bag, fs := unknownColorBag(t)
	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatal(err)
	}
	var doc diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if doc.Count != 1 || len(doc.Diagnostics) != 1 {
		t.Fatalf("count = %d, items = %d", doc.Count, len(doc.Diagnostics))
	}
	want := diagfmt.DiagnosticJSON{
		Category: "SEMANTIC",
		Code:     "SEM3006",
		Title:    "Unknown color",
		Message:  `unknown color "Pink"`,
		Line:     2,
		Location: diagfmt.LocationJSON{
			File: "mem.pw", StartByte: 17, EndByte: 23,
			StartLine: 2, StartCol: 7, EndLine: 2, EndCol: 13,
		},
		Notes: []diagfmt.NoteJSON{{
			Line:     1,
			Location: diagfmt.LocationJSON{File: "mem.pw", StartByte: 0, EndByte: 5, StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 6},
			Message:  "pen spawned here",
		}},
	}
	if diff := cmp.Diff(want, doc.Diagnostics[0]); diff != "" {
		t.Errorf("diagnostic mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	bag := diag.NewBag(0)
	for i := range 3 {
		bag.Add(diag.New(diag.SynUnexpectedToken, i+1, source.Span{}, "x"))
	}
	out := diagfmt.BuildDiagnosticsOutput(bag, nil, diagfmt.JSONOpts{Max: 2})
	if out.Count != 3 || len(out.Diagnostics) != 2 || !out.Truncated {
		t.Fatalf("got count=%d len=%d truncated=%v", out.Count, len(out.Diagnostics), out.Truncated)
	}
	if empty := diagfmt.BuildDiagnosticsOutput(nil, nil, diagfmt.JSONOpts{}); empty.Diagnostics == nil {
		t.Errorf("nil bag must still produce an empty array")
	}
}

func TestFormatTokens(t *testing.T) {
	res := driver.TokenizeSource(context.Background(), "mem.pw", []byte("Spawn(1, 2)\n"), 0)
	var buf bytes.Buffer
	if err := diagfmt.FormatTokensPretty(&buf, res.Tokens, res.FileSet); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Spawn", `"Spawn"`, "Number", `"\\n"`, "1:7"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := diagfmt.FormatTokensJSON(&buf, res.Tokens, res.FileSet); err != nil {
		t.Fatal(err)
	}
	var toks []diagfmt.TokenJSON
	if err := json.Unmarshal(buf.Bytes(), &toks); err != nil {
		t.Fatal(err)
	}
	if len(toks) != len(res.Tokens) {
		t.Fatalf("len = %d, want %d", len(toks), len(res.Tokens))
	}
	if toks[2].Kind != "Number" || toks[2].Value != "1" || toks[2].Span != "1:7-1:8" {
		t.Errorf("unexpected number token: %+v", toks[2])
	}
}

func TestFormatAST(t *testing.T) {
	src := "Spawn(0, 0)\nn <- 2 + 3 * GetActualX()\nloop\nGoTo [loop] (n < 0)\n"
	res := driver.CheckSource(context.Background(), "mem.pw", []byte(src), driver.Options{})
	if !res.OK() {
		t.Fatalf("unexpected diagnostics: %s", diag.FormatShortDiagnostics(res.Bag.Items(), res.FileSet, false))
	}

	var buf bytes.Buffer
	if err := diagfmt.FormatASTPretty(&buf, res.Builder, res.Program, res.FileSet); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Program mem.pw (4 instructions)",
		"├─ [0] Spawn @1",
		"name: n",
		"Binary +",
		"Call GetActualX",
		"└─ [3] GoTo @4",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := diagfmt.FormatASTJSON(&buf, res.Builder, res.Program, res.FileSet); err != nil {
		t.Fatal(err)
	}
	var doc diagfmt.ProgramJSON
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if got := doc.Instrs[1].Args["value"]; got != "(2 + (3 * GetActualX()))" {
		t.Errorf("assign value = %q", got)
	}
	if got := doc.Instrs[3].Args["cond"]; got != "(n < 0)" {
		t.Errorf("goto cond = %q", got)
	}
	if doc.Labels["loop"] != 3 {
		t.Errorf("labels = %v", doc.Labels)
	}
}
