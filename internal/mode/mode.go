// Package mode defines the screen controllers the root model switches between.
package mode

import (
	tea "github.com/charmbracelet/bubbletea"

	"parley/internal/chat/service"
	"parley/internal/config"
)

// AppMode identifies a top-level screen.
type AppMode int

const (
	// ModeIdentity is the user picker shown at startup.
	ModeIdentity AppMode = iota
	// ModeMessaging is the main conversation screen.
	ModeMessaging
)

// String returns a human-readable mode name.
func (m AppMode) String() string {
	switch m {
	case ModeIdentity:
		return "identity"
	case ModeMessaging:
		return "messaging"
	default:
		return "unknown"
	}
}

// SwitchModeMsg asks the root model to activate a different screen.
type SwitchModeMsg struct {
	Mode AppMode
}

// SwitchTo returns a command that switches to the given screen.
func SwitchTo(m AppMode) tea.Cmd {
	return func() tea.Msg {
		return SwitchModeMsg{Mode: m}
	}
}

// Controller is a self-contained screen. The root model forwards messages to
// the active controller and renders its view.
type Controller interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Controller, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Services bundles the dependencies handed to every controller.
type Services struct {
	Chat       *service.Service
	Config     *config.Config
	ConfigPath string
}
