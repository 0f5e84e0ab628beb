package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"walle/internal/canvas"
)

// RunEvent is one update for the canvas viewer: a pixel write, or the
// final status line when Done is set.
type RunEvent struct {
	X, Y  int
	Color canvas.Color
	Done  bool
	Final string
	Err   bool
}

// PixelSink adapts a channel into the interpreter's pixel callback.
func PixelSink(ch chan<- RunEvent) func(x, y int, c canvas.Color) {
	return func(x, y int, c canvas.Color) {
		ch <- RunEvent{X: x, Y: y, Color: c}
	}
}

type canvasModel struct {
	title   string
	events  <-chan RunEvent
	spinner spinner.Model
	prog    progress.Model
	canvas  *canvas.Canvas
	styles  map[canvas.Color]lipgloss.Style
	writes  int
	final   string
	failed  bool
	hold    bool
	done    bool
}

type runEventMsg RunEvent
type runClosedMsg struct{}

// NewCanvasModel returns a viewer that replays pixel writes onto a blank
// size×size canvas. With hold set it waits for a key after the run ends.
func NewCanvasModel(title string, size int, hold bool, events <-chan RunEvent) tea.Model {
	return &canvasModel{
		title:   title,
		events:  events,
		spinner: newSpinner(),
		prog:    newProgress(),
		canvas:  canvas.MustNew(size),
		styles:  make(map[canvas.Color]lipgloss.Style),
		hold:    hold,
	}
}

func (m *canvasModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

func (m *canvasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runEventMsg:
		ev := RunEvent(msg)
		if ev.Done {
			m.final, m.failed = ev.Final, ev.Err
			return m, m.listen()
		}
		if m.canvas.Set(ev.X, ev.Y, ev.Color) {
			m.writes++
		}
		return m, tea.Batch(m.prog.SetPercent(m.coverage()), m.listen())
	case runClosedMsg:
		m.done = true
		if m.hold {
			return m, nil
		}
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q", "esc", "enter":
			if m.done {
				return m, tea.Quit
			}
		}
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 4 {
			m.prog.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// coverage is the share of pixels that are no longer White.
func (m *canvasModel) coverage() float64 {
	n := m.canvas.Size()
	if n == 0 {
		return 0
	}
	white := m.canvas.Count(canvas.White, 0, 0, n-1, n-1)
	return float64(n*n-white) / float64(n*n)
}

func (m *canvasModel) View() string {
	var b strings.Builder
	header := fmt.Sprintf("%s %s", m.spinner.View(), m.title)
	if m.done {
		header = "done: " + m.title
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")
	b.WriteString(m.renderCanvas())
	b.WriteString("\n")
	b.WriteString(m.prog.View())
	b.WriteString("\n")

	status := fmt.Sprintf("%d pixel writes", m.writes)
	if m.final != "" {
		status += " · " + m.final
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	if m.failed {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	}
	b.WriteString(style.Render(status))
	if m.done && m.hold {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("  (press q to exit)"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *canvasModel) renderCanvas() string {
	var b strings.Builder
	n := m.canvas.Size()
	for y := range n {
		for _, p := range m.canvas.Row(y) {
			b.WriteString(m.styleFor(p).Render("  "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m *canvasModel) styleFor(c canvas.Color) lipgloss.Style {
	if s, ok := m.styles[c]; ok {
		return s
	}
	rgb := c.RGB()
	s := lipgloss.NewStyle().Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)))
	m.styles[c] = s
	return s
}

func (m *canvasModel) listen() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return runClosedMsg{}
		}
		return runEventMsg(ev)
	}
}
