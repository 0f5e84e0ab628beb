package ui

import (
	"strings"
	"testing"

	"walle/internal/canvas"
	"walle/internal/driver"
)

func TestBatchModelTracksStatus(t *testing.T) {
	m := NewBatchModel("checking", []string{"a.pw", "b.pw"}, nil).(*batchModel)

	m.Update(fileEventMsg{Path: "a.pw", Status: driver.StatusChecking})
	if got := m.fraction(); got != 0.25 {
		t.Errorf("fraction = %v, want 0.25", got)
	}
	m.Update(fileEventMsg{Path: "a.pw", Status: driver.StatusDone})
	m.Update(fileEventMsg{Path: "b.pw", Status: driver.StatusFailed, Errors: 2})
	m.Update(fileEventMsg{Path: "unknown.pw", Status: driver.StatusDone})
	if got := m.fraction(); got != 1 {
		t.Errorf("fraction = %v, want 1", got)
	}

	_, cmd := m.Update(batchDoneMsg{})
	if cmd == nil || !m.done {
		t.Fatalf("done message should quit")
	}
	view := m.View()
	for _, want := range []string{"done: checking", "ok", "2 errors", "a.pw", "b.pw"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestCanvasModelReplaysPixels(t *testing.T) {
	m := NewCanvasModel("run", 4, true, nil).(*canvasModel)
	m.Update(runEventMsg{X: 0, Y: 0, Color: canvas.Red})
	m.Update(runEventMsg{X: 1, Y: 0, Color: canvas.Red})
	m.Update(runEventMsg{X: 9, Y: 9, Color: canvas.Red})
	m.Update(runEventMsg{Done: true, Final: "finished in 3 steps"})

	if m.writes != 2 {
		t.Errorf("writes = %d, want 2", m.writes)
	}
	if m.canvas.At(1, 0) != canvas.Red || m.canvas.At(2, 0) != canvas.White {
		t.Errorf("canvas not replayed")
	}
	if got := m.coverage(); got != 2.0/16.0 {
		t.Errorf("coverage = %v", got)
	}

	if _, cmd := m.Update(runClosedMsg{}); cmd != nil {
		t.Errorf("held viewer must not quit on its own")
	}
	view := m.View()
	if !strings.Contains(view, "finished in 3 steps") || !strings.Contains(view, "press q") {
		t.Errorf("unexpected footer:\n%s", view)
	}
	if strings.Count(view, "\n") < 4 {
		t.Errorf("canvas rows missing:\n%s", view)
	}
}

func TestPixelSink(t *testing.T) {
	ch := make(chan RunEvent, 1)
	PixelSink(ch)(2, 3, canvas.Blue)
	ev := <-ch
	if ev.X != 2 || ev.Y != 3 || ev.Color != canvas.Blue || ev.Done {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("programs/very/long/path.pw", 10); got != "program..." {
		t.Errorf("got %q", got)
	}
}
