// Package toaster renders transient notifications in the corner of the screen.
package toaster

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"parley/internal/ui/styles"
)

// Level controls the accent color of a toast.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// DefaultDuration is how long a toast stays on screen.
const DefaultDuration = 3 * time.Second

// ShowMsg requests a toast to be displayed.
type ShowMsg struct {
	Text     string
	Level    Level
	Duration time.Duration
}

// expireMsg dismisses the toast identified by seq.
type expireMsg struct {
	seq int
}

// Show returns a command that displays a toast with the default duration.
func Show(text string, level Level) tea.Cmd {
	return func() tea.Msg {
		return ShowMsg{Text: text, Level: level, Duration: DefaultDuration}
	}
}

// Model holds the currently displayed toast, if any.
type Model struct {
	text    string
	level   Level
	visible bool
	seq     int
}

// New returns an empty toaster.
func New() Model {
	return Model{}
}

// Update handles show and expiry messages. A new toast replaces the current
// one and invalidates its pending expiry.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowMsg:
		m.seq++
		m.text = msg.Text
		m.level = msg.Level
		m.visible = true
		seq := m.seq
		d := msg.Duration
		if d <= 0 {
			d = DefaultDuration
		}
		return m, tea.Tick(d, func(time.Time) tea.Msg {
			return expireMsg{seq: seq}
		})
	case expireMsg:
		if msg.seq == m.seq {
			m.visible = false
		}
		return m, nil
	}
	return m, nil
}

// Visible reports whether a toast is currently shown.
func (m Model) Visible() bool {
	return m.visible
}

// View renders the toast, or an empty string when none is visible.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	accent := styles.ColorHighlight
	switch m.level {
	case LevelSuccess:
		accent = styles.ColorSuccess
	case LevelError:
		accent = styles.ColorError
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Render(m.text)
}

// Overlay places the toast in the bottom-right corner of a rendered screen.
func (m Model) Overlay(screen string, width, height int) string {
	if !m.visible {
		return screen
	}
	toast := m.View()
	// lipgloss.Place fills the whole area, so the toast is composed onto a
	// blank layer the same size as the screen and joined line by line.
	layer := lipgloss.Place(width, height, lipgloss.Right, lipgloss.Bottom, toast)
	return overlay(screen, layer)
}

// overlay composes fg over bg, keeping bg where fg is blank.
func overlay(bg, fg string) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")
	out := make([]string, 0, len(bgLines))
	for i, line := range bgLines {
		if i < len(fgLines) && lipgloss.Width(fgLines[i]) > 0 && hasInk(fgLines[i]) {
			out = append(out, fgLines[i])
		} else {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// hasInk reports whether the line contains anything but spaces once escape
// sequences are stripped.
func hasInk(line string) bool {
	for _, r := range ansi.Strip(line) {
		if r != ' ' {
			return true
		}
	}
	return false
}
