// Package tui is a terminal page browser. Section headers, tabs and
// related-page entries are focusable; enter toggles, selects or follows.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/ziadkadry99/archdocs/internal/host"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model is the bubbletea model of the browser. The host must have a page
// mounted before the program starts.
type Model struct {
	host     *host.Host
	md       Markdown
	keys     keyMap
	help     help.Model
	viewport viewport.Model

	targets []target
	focus   int
	history []string
	status  string

	width, height int
}

// New creates a browser over h. md may be nil, in which case markdown is
// shown unrendered.
func New(h *host.Host, md Markdown) Model {
	m := Model{
		host:     h,
		md:       md,
		keys:     defaultKeys(),
		help:     help.New(),
		viewport: viewport.New(defaultWidth, defaultHeight-2),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.refresh()
	return m
}

// NewMarkdown returns a glamour renderer wrapping at width.
func NewMarkdown(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
}

// Run starts the browser in the alternate screen and blocks until it quits.
func Run(h *host.Host) error {
	md, err := NewMarkdown(defaultWidth - 4)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	_, err = tea.NewProgram(New(h, md), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-2, 1)
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.moveFocus(1)
		case key.Matches(msg, m.keys.Prev):
			m.moveFocus(-1)
		case key.Matches(msg, m.keys.Activate):
			m.activate()
		case key.Matches(msg, m.keys.Back):
			m.back()
		case key.Matches(msg, m.keys.Home):
			m.goTo(m.host.Home(), true)
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) moveFocus(delta int) {
	if len(m.targets) == 0 {
		return
	}
	m.focus = min(max(m.focus+delta, 0), len(m.targets)-1)
	m.refresh()
}

// activate applies the focused target to the current page.
func (m *Model) activate() {
	if m.focus >= len(m.targets) {
		return
	}
	t := m.targets[m.focus]
	switch t.kind {
	case targetSection:
		m.host.Toggle(t.node)
	case targetTab:
		m.host.SelectTab(t.node, t.tab)
	case targetRelated:
		from := m.host.CurrentID()
		if err := m.host.FollowRelated(t.index); err != nil {
			m.status = err.Error()
			return
		}
		m.history = append(m.history, from)
		m.focus = 0
		m.viewport.GotoTop()
	}
	m.refresh()
}

func (m *Model) back() {
	if len(m.history) == 0 {
		return
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.goTo(prev, false)
}

func (m *Model) goTo(id string, remember bool) {
	from := m.host.CurrentID()
	if err := m.host.Navigate(id); err != nil {
		m.status = err.Error()
		return
	}
	if remember && from != "" {
		m.history = append(m.history, from)
	}
	m.focus = 0
	m.viewport.GotoTop()
	m.refresh()
}

// refresh redraws the current page and keeps the focused target in view.
func (m *Model) refresh() {
	w := m.draw()
	if n := len(w.targets); n > 0 && m.focus >= n {
		m.focus = n - 1
		w = m.draw()
	}
	m.targets = w.targets
	m.viewport.SetContent(w.String())

	if m.focus >= len(m.targets) {
		return
	}
	line := m.targets[m.focus].line
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

func (m *Model) draw() *pageWriter {
	w := &pageWriter{md: m.md, focus: m.focus}
	if !m.host.Render(w) {
		w.lines = append(w.lines, subtleStyle.Render("No page mounted."))
	}
	return w
}

func (m Model) View() string {
	header := titleStyle.Render("archdocs")
	if mount := m.host.Current(); mount != nil {
		p := mount.Page()
		title := p.Title
		if title == "" {
			title = p.Ref.Label
		}
		if title == "" {
			title = p.ID()
		}
		header += subtleStyle.Render(" | ") + titleStyle.Render(title) + subtleStyle.Render(" ("+p.ID()+")")
	}

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = statusStyle.Render(m.status)
	}
	return header + "\n" + m.viewport.View() + "\n" + footer
}
