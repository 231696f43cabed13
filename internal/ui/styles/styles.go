// Package styles provides shared lipgloss styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"parley/internal/config"
)

// Color tokens. ApplyTheme rewrites these from config before any view renders.
var (
	ColorHighlight = lipgloss.Color("#7D56F4")
	ColorSubtle    = lipgloss.Color("#6C6C6C")
	ColorError     = lipgloss.Color("#FF5F87")
	ColorSuccess   = lipgloss.Color("#5FD787")
)

var (
	// TitleStyle renders screen and panel titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight)

	// SubtleStyle renders secondary text like timestamps and hints.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	// SelectedStyle highlights the focused list row.
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorHighlight)

	// ErrorStyle renders error text.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// SuccessStyle renders confirmation text.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// PanelStyle frames the sidebar, message pane and task panel.
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle).
			Padding(0, 1)

	// FocusedPanelStyle marks the panel that currently has focus.
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorHighlight).
				Padding(0, 1)

	// ReactionStyle renders reaction pills under a message.
	ReactionStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// DoneTaskStyle renders completed tasks.
	DoneTaskStyle = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(ColorSubtle)
)

// ApplyTheme overrides the color tokens from configuration. Call once at
// startup, before the first render.
func ApplyTheme(theme config.ThemeConfig) {
	if theme.Highlight != "" {
		ColorHighlight = lipgloss.Color(theme.Highlight)
	}
	if theme.Subtle != "" {
		ColorSubtle = lipgloss.Color(theme.Subtle)
	}
	if theme.Error != "" {
		ColorError = lipgloss.Color(theme.Error)
	}
	if theme.Success != "" {
		ColorSuccess = lipgloss.Color(theme.Success)
	}

	TitleStyle = TitleStyle.Foreground(ColorHighlight)
	SubtleStyle = SubtleStyle.Foreground(ColorSubtle)
	SelectedStyle = SelectedStyle.Background(ColorHighlight)
	ErrorStyle = ErrorStyle.Foreground(ColorError)
	SuccessStyle = SuccessStyle.Foreground(ColorSuccess)
	PanelStyle = PanelStyle.BorderForeground(ColorSubtle)
	FocusedPanelStyle = FocusedPanelStyle.BorderForeground(ColorHighlight)
	ReactionStyle = ReactionStyle.Foreground(ColorHighlight)
	DoneTaskStyle = DoneTaskStyle.Foreground(ColorSubtle)
}
