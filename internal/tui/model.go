// Package tui is the terminal host. A bubbletea program drives the
// coordinator: every tick drains events, reloads when asked and redraws
// the current preview.
package tui

import (
	"fmt"
	"strings"
	"time"

	"glance/internal/config"
	"glance/internal/coordinator"
	"glance/internal/preview"
	"glance/internal/render"
	"glance/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// heading + status bar
	chromeHeight = 2
	tabWidth     = 4
)

// tickMsg asks the model to run one coordinator tick
type tickMsg struct{}

// Model is the bubbletea model of the preview screen
type Model struct {
	coord       *coordinator.Coordinator
	idle        time.Duration
	styles      Styles
	highlighter *Highlighter

	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap

	width   int
	height  int
	heading string
	status  string
}

// New creates the model. cfg selects the idle interval, theme and
// highlighting.
func New(coord *coordinator.Coordinator, cfg *config.Config) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	st := NewStyles(cfg.Theme)
	s.Style = st.Status

	m := &Model{
		coord:    coord,
		idle:     cfg.IdleInterval(),
		styles:   st,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
		spinner:  s,
		help:     help.New(),
		keys:     defaultKeyMap(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	if cfg.Preview.Highlight {
		m.highlighter = NewHighlighter(cfg.Preview.HighlightStyle)
	}
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(func() tea.Msg { return tickMsg{} }, m.spinner.Tick)
}

// waitTick sleeps until an event arrives or the idle interval passes
func (m *Model) waitTick() tea.Cmd {
	coord, idle := m.coord, m.idle
	return func() tea.Msg {
		coord.Wait(idle)
		return tickMsg{}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case tickMsg:
		out := m.coord.Tick(m.Available)
		if out.Changed() {
			m.refresh()
			m.viewport.GotoTop()
		}
		if out.Quit {
			return m, tea.Quit
		}
		return m, m.waitTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m *Model) View() string {
	heading := m.heading
	if heading == "" {
		heading = "glance"
	}
	heading = m.styles.Heading.Render(runewidth.Truncate(heading, max(m.width-2, 1), "…"))

	return lipgloss.JoinVertical(lipgloss.Left, heading, m.viewport.View(), m.statusBar())
}

func (m *Model) statusBar() string {
	var parts []string
	if live := m.coord.LiveSources(); live > 0 {
		parts = append(parts, m.spinner.View()+m.styles.Status.Render(pluralSources(live)))
	}
	if m.status != "" {
		parts = append(parts, m.styles.Status.Render(m.status))
	}
	parts = append(parts, m.help.View(m.keys))
	return strings.Join(parts, m.styles.Border.Render(" │ "))
}

func pluralSources(n int) string {
	if n == 1 {
		return "1 source"
	}
	return fmt.Sprintf("%d sources", n)
}

// Available is the drawing area offered to the resolver: the viewport in
// terminal cells
func (m *Model) Available() types.Size {
	return types.NewSize(m.viewport.Width, m.viewport.Height)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.viewport.Width = width
	m.viewport.Height = max(height-chromeHeight, 1)
	m.help.Width = width
}

// refresh lays out the borrowed current preview; nothing from it is kept
// except the rendered strings
func (m *Model) refresh() {
	current := m.coord.Current()
	block := render.Layout(current, m.Available())
	m.heading = block.Heading
	m.status = ""
	if current != nil {
		m.status = current.Kind().String()
	}
	m.viewport.SetContent(m.body(block))
}

func (m *Model) body(b render.Block) string {
	width := m.viewport.Width
	var lines []string

	switch b.Kind {
	case preview.KindText:
		lines = fitLines(b.Lines, width)
		if m.highlighter != nil {
			lines = m.highlighter.Highlight(b.Heading, lines)
		}
	case preview.KindDirectory:
		for _, l := range fitLines(b.Lines, width) {
			if strings.HasSuffix(l, "/") {
				l = m.styles.Directory.Render(l)
			}
			lines = append(lines, l)
		}
	case preview.KindImage:
		meta := fitLines(b.Lines, width)
		lines = halfBlocks(b.Image, width, m.viewport.Height-len(meta))
		for _, l := range meta {
			lines = append(lines, m.styles.Meta.Render(l))
		}
	case preview.KindError:
		for _, l := range fitLines(b.Lines, width) {
			lines = append(lines, m.styles.Error.Render(l))
		}
	default:
		for _, l := range fitLines(b.Lines, width) {
			lines = append(lines, m.styles.Label.Render(l))
		}
	}
	return strings.Join(lines, "\n")
}

// fitLines expands tabs and truncates every line to width cells
func fitLines(lines []string, width int) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		l = strings.ReplaceAll(l, "\t", strings.Repeat(" ", tabWidth))
		if width > 0 {
			l = runewidth.Truncate(l, width, "…")
		}
		out[i] = l
	}
	return out
}
