// Package identity implements the user picker shown at startup.
package identity

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"parley/internal/chat"
	"parley/internal/keys"
	"parley/internal/log"
	"parley/internal/mode"
	"parley/internal/ui/styles"
	"parley/internal/ui/toaster"
)

// Controller renders the roster and lets the user pick or create an identity.
type Controller struct {
	services mode.Services
	keymap   keys.IdentityKeyMap

	cursor int
	adding bool
	input  textinput.Model

	width  int
	height int
}

var _ mode.Controller = (*Controller)(nil)

// New builds the identity screen.
func New(services mode.Services) *Controller {
	input := textinput.New()
	input.Placeholder = "name"
	input.CharLimit = 64
	input.Width = 32

	return &Controller{
		services: services,
		keymap:   keys.DefaultIdentityKeyMap(),
		input:    input,
	}
}

// Init implements mode.Controller.
func (c *Controller) Init() tea.Cmd {
	return nil
}

// SetSize implements mode.Controller.
func (c *Controller) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// Update implements mode.Controller.
func (c *Controller) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	if c.adding {
		return c.updateAdding(keyMsg)
	}

	users := c.services.Chat.State().Users()

	switch {
	case key.Matches(keyMsg, c.keymap.Quit):
		return c, tea.Quit
	case key.Matches(keyMsg, c.keymap.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(keyMsg, c.keymap.Down):
		if c.cursor < len(users) {
			c.cursor++
		}
	case key.Matches(keyMsg, c.keymap.AddUser):
		c.startAdding()
		return c, textinput.Blink
	case key.Matches(keyMsg, c.keymap.Select):
		if c.cursor == len(users) {
			c.startAdding()
			return c, textinput.Blink
		}
		if c.cursor < len(users) {
			name := users[c.cursor]
			log.Info(log.CatChat, "User selected", "user", name)
			c.services.Chat.SelectUser(name)
			return c, mode.SwitchTo(mode.ModeMessaging)
		}
	}
	return c, nil
}

func (c *Controller) startAdding() {
	c.adding = true
	c.input.SetValue("")
	c.input.Focus()
}

func (c *Controller) updateAdding(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	switch {
	case key.Matches(msg, c.keymap.Cancel):
		c.adding = false
		c.input.Blur()
		return c, nil
	case key.Matches(msg, c.keymap.Select):
		name := c.input.Value()
		if err := c.services.Chat.AddUser(name); err != nil {
			return c, toaster.Show(addUserErrorText(err, name), toaster.LevelError)
		}
		c.adding = false
		c.input.Blur()
		c.cursor = len(c.services.Chat.State().Users()) - 1
		return c, toaster.Show(fmt.Sprintf("Added %s", c.services.Chat.State().Users()[c.cursor]), toaster.LevelSuccess)
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func addUserErrorText(err error, name string) string {
	var dup *chat.DuplicateUserError
	switch {
	case errors.As(err, &dup):
		return fmt.Sprintf("%s already exists", dup.Name)
	case errors.Is(err, chat.ErrEmptyUserName):
		return "Name cannot be empty"
	default:
		return err.Error()
	}
}

// View implements mode.Controller.
func (c *Controller) View() string {
	users := c.services.Chat.State().Users()

	var rows []string
	rows = append(rows, styles.TitleStyle.Render("Who are you?"), "")
	for i, user := range users {
		row := "  " + user
		if i == c.cursor && !c.adding {
			row = styles.SelectedStyle.Render("> " + user)
		}
		rows = append(rows, row)
	}

	addRow := "  + New user"
	if c.cursor == len(users) && !c.adding {
		addRow = styles.SelectedStyle.Render("> + New user")
	}
	rows = append(rows, addRow, "")

	if c.adding {
		rows = append(rows, "New user: "+c.input.View())
	} else {
		rows = append(rows, styles.SubtleStyle.Render("enter select · a add user · q quit"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if c.width == 0 || c.height == 0 {
		return content
	}
	return lipgloss.Place(c.width, c.height, lipgloss.Center, lipgloss.Center, content)
}
