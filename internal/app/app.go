// Package app contains the root Bubble Tea model. It owns the screen
// controllers, the toaster overlay, and the listeners that tie state change
// events and database file changes into the update loop.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"parley/internal/chat/service"
	"parley/internal/log"
	"parley/internal/mode"
	"parley/internal/mode/identity"
	"parley/internal/mode/messaging"
	"parley/internal/pubsub"
	"parley/internal/ui/toaster"
)

// dbChangedMsg fires when the watcher reports an external database write.
type dbChangedMsg struct{}

// Model is the root Bubble Tea model.
type Model struct {
	services mode.Services

	active      mode.AppMode
	controllers map[mode.AppMode]mode.Controller

	toaster toaster.Model

	changeListener *pubsub.ContinuousListener[service.Change]
	dbChanges      <-chan struct{}

	width  int
	height int
}

// New builds the root model. dbChanges may be nil when auto-refresh is off.
func New(ctx context.Context, services mode.Services, dbChanges <-chan struct{}) *Model {
	start := mode.ModeIdentity
	if services.Chat.State().CurrentUser() != "" {
		start = mode.ModeMessaging
	}

	return &Model{
		services: services,
		active:   start,
		controllers: map[mode.AppMode]mode.Controller{
			mode.ModeIdentity:  identity.New(services),
			mode.ModeMessaging: messaging.New(services),
		},
		toaster:        toaster.New(),
		changeListener: pubsub.NewContinuousListener(ctx, services.Chat.Events()),
		dbChanges:      dbChanges,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.controllers[m.active].Init(),
		m.changeListener.Listen(),
	}
	if m.dbChanges != nil {
		cmds = append(cmds, m.waitForDBChange())
	}
	return tea.Batch(cmds...)
}

func (m *Model) waitForDBChange() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-m.dbChanges; !ok {
			return nil
		}
		return dbChangedMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, ctrl := range m.controllers {
			ctrl.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case mode.SwitchModeMsg:
		m.active = msg.Mode
		ctrl := m.controllers[m.active]
		ctrl.SetSize(m.width, m.height)
		log.Debug(log.CatUI, "Mode switched", "mode", msg.Mode.String())
		return m, ctrl.Init()

	case toaster.ShowMsg:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Update(msg)
		return m, cmd

	case dbChangedMsg:
		m.services.Chat.Reload()
		return m, tea.Batch(
			m.waitForDBChange(),
			toaster.Show("Refreshed from disk", toaster.LevelInfo),
		)

	case pubsub.Event[service.Change]:
		ctrl, cmd := m.controllers[m.active].Update(msg)
		m.controllers[m.active] = ctrl
		return m, tea.Batch(cmd, m.changeListener.Listen())
	}

	// toast expiry timers flow through regardless of the active screen
	var toastCmd tea.Cmd
	m.toaster, toastCmd = m.toaster.Update(msg)

	ctrl, cmd := m.controllers[m.active].Update(msg)
	m.controllers[m.active] = ctrl
	return m, tea.Batch(cmd, toastCmd)
}

// View implements tea.Model.
func (m *Model) View() string {
	view := m.controllers[m.active].View()
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	return view
}
