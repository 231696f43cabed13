// Package messaging implements the main conversation screen: sidebar,
// message pane, composer, and task panel.
package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"parley/internal/cachemanager"
	"parley/internal/chat"
	"parley/internal/chat/service"
	"parley/internal/config"
	"parley/internal/keys"
	"parley/internal/log"
	"parley/internal/mode"
	"parley/internal/pubsub"
	"parley/internal/ui/toaster"
)

// focusArea identifies which panel keyboard navigation applies to.
type focusArea int

const (
	focusMessages focusArea = iota
	focusTasks
)

// Controller is the messaging screen.
type Controller struct {
	services mode.Services
	keymap   keys.KeyMap
	help     help.Model

	focus      focusArea
	msgCursor  int
	taskCursor int

	composing bool
	input     textinput.Model

	picker pickerModel

	renderCache cachemanager.CacheManager[string, string]

	width  int
	height int
}

var _ mode.Controller = (*Controller)(nil)

// New builds the messaging screen.
func New(services mode.Services) *Controller {
	input := textinput.New()
	input.Placeholder = "Type a message"
	input.CharLimit = 500

	c := &Controller{
		services: services,
		keymap:   keys.DefaultKeyMap(),
		help:     help.New(),
		input:    input,
		picker:   newPicker(services.Config.Reactions),
		renderCache: cachemanager.NewInMemoryCacheManager[string, string](
			"message-render",
			cachemanager.DefaultExpiration,
			cachemanager.DefaultCleanupInterval,
		),
	}
	c.msgCursor = c.messageCount() - 1
	return c
}

// Init implements mode.Controller.
func (c *Controller) Init() tea.Cmd {
	return nil
}

// SetSize implements mode.Controller.
func (c *Controller) SetSize(width, height int) {
	if width != c.width {
		// wrapped message blocks are width-dependent
		c.renderCache.Flush(context.Background())
	}
	c.width = width
	c.height = height
	c.help.Width = width
	c.input.Width = max(10, width-8)
}

// Update implements mode.Controller.
func (c *Controller) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case pubsub.Event[service.Change]:
		c.clampCursors()
		return c, nil
	case tea.KeyMsg:
		return c.updateKey(msg)
	}
	return c, nil
}

func (c *Controller) updateKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	if c.picker.active {
		return c.updatePicker(msg)
	}
	if c.composing {
		return c.updateComposer(msg)
	}

	switch {
	case key.Matches(msg, c.keymap.Quit):
		return c, tea.Quit

	case key.Matches(msg, c.keymap.Help):
		c.help.ShowAll = !c.help.ShowAll

	case key.Matches(msg, c.keymap.Compose):
		c.composing = true
		c.input.Focus()
		return c, textinput.Blink

	case key.Matches(msg, c.keymap.SwitchUser):
		c.services.Chat.SwitchUser()
		return c, mode.SwitchTo(mode.ModeIdentity)

	case key.Matches(msg, c.keymap.NextConv):
		c.cycleConversation(1)

	case key.Matches(msg, c.keymap.PrevConv):
		c.cycleConversation(-1)

	case key.Matches(msg, c.keymap.Focus):
		if c.services.Config.UI.ShowTaskPanel {
			if c.focus == focusMessages {
				c.focus = focusTasks
			} else {
				c.focus = focusMessages
			}
			c.clampCursors()
		}

	case key.Matches(msg, c.keymap.Up):
		c.moveCursor(-1)

	case key.Matches(msg, c.keymap.Down):
		c.moveCursor(1)

	case key.Matches(msg, c.keymap.Delete):
		if m, ok := c.selectedMessage(); ok {
			c.services.Chat.DeleteMessage(m.ID)
			c.clampCursors()
		}

	case key.Matches(msg, c.keymap.Promote):
		if m, ok := c.selectedMessage(); ok {
			if c.services.Chat.PromoteTask(m.ID) {
				return c, toaster.Show("Added to tasks", toaster.LevelSuccess)
			}
			return c, toaster.Show("Already in tasks", toaster.LevelInfo)
		}

	case key.Matches(msg, c.keymap.React):
		if _, ok := c.selectedMessage(); ok {
			c.picker.open()
			return c, nil
		}

	case key.Matches(msg, c.keymap.ToggleDone):
		if c.focus == focusTasks {
			if t, ok := c.selectedTask(); ok {
				c.services.Chat.SetTaskDone(t.ID, !t.Done)
				c.clampCursors()
			}
		}

	case key.Matches(msg, c.keymap.ToggleHideDone):
		hide := !c.services.Chat.State().HideDoneTasks()
		c.services.Chat.SetHideDone(hide)
		c.clampCursors()
	}
	return c, nil
}

func (c *Controller) updateComposer(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	switch {
	case key.Matches(msg, c.keymap.Blur):
		c.composing = false
		c.input.Blur()
		return c, nil
	case key.Matches(msg, c.keymap.Send):
		text := c.input.Value()
		sent, err := c.services.Chat.SendMessage(text)
		if err != nil {
			return c, toaster.Show(sendErrorText(err), toaster.LevelError)
		}
		c.input.SetValue("")
		c.msgCursor = c.messageCount() - 1
		log.Debug(log.CatUI, "Composer sent message", "id", sent.ID)
		return c, nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func sendErrorText(err error) string {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		return "Cannot send an empty message"
	case errors.Is(err, chat.ErrNoCurrentUser):
		return "Pick a user first"
	default:
		return err.Error()
	}
}

// conversations returns the selectable conversations in sidebar order:
// channels first, then everyone else as a DM target.
func (c *Controller) conversations() []chat.ConversationRef {
	st := c.services.Chat.State()
	var refs []chat.ConversationRef
	for _, ch := range st.Channels() {
		refs = append(refs, chat.ChannelRef(ch))
	}
	for _, partner := range st.DMPartners() {
		refs = append(refs, chat.DirectMessageRef(partner))
	}
	return refs
}

func (c *Controller) cycleConversation(step int) {
	refs := c.conversations()
	if len(refs) == 0 {
		return
	}
	active := c.services.Chat.State().ActiveConversation()
	idx := 0
	for i, ref := range refs {
		if ref.Equal(active) {
			idx = i
			break
		}
	}
	idx = (idx + step + len(refs)) % len(refs)
	c.services.Chat.SetActive(refs[idx])
	c.msgCursor = c.messageCount() - 1
	c.focus = focusMessages
}

func (c *Controller) moveCursor(step int) {
	if c.focus == focusTasks {
		c.taskCursor += step
	} else {
		c.msgCursor += step
	}
	c.clampCursors()
}

func (c *Controller) messageCount() int {
	st := c.services.Chat.State()
	return len(st.MessagesFor(st.ActiveKey()))
}

func (c *Controller) visibleTasks() []chat.Task {
	st := c.services.Chat.State()
	return st.TaskList(st.HideDoneTasks())
}

func (c *Controller) selectedMessage() (chat.Message, bool) {
	st := c.services.Chat.State()
	msgs := st.MessagesFor(st.ActiveKey())
	if c.msgCursor < 0 || c.msgCursor >= len(msgs) {
		return chat.Message{}, false
	}
	return msgs[c.msgCursor], true
}

func (c *Controller) selectedTask() (chat.Task, bool) {
	tasks := c.visibleTasks()
	if c.taskCursor < 0 || c.taskCursor >= len(tasks) {
		return chat.Task{}, false
	}
	return tasks[c.taskCursor], true
}

func (c *Controller) clampCursors() {
	c.msgCursor = clamp(c.msgCursor, 0, c.messageCount()-1)
	c.taskCursor = clamp(c.taskCursor, 0, len(c.visibleTasks())-1)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// applyReaction records the emoji on the selected message and extends the
// palette (persisting it) when the emoji is new.
func (c *Controller) applyReaction(emoji string) tea.Cmd {
	m, ok := c.selectedMessage()
	if !ok {
		return nil
	}
	c.services.Chat.AddReaction(m.ID, emoji)

	if !c.picker.has(emoji) {
		c.picker.add(emoji)
		c.services.Config.Reactions = c.picker.palette
		if c.services.ConfigPath != "" {
			if err := config.SaveReactions(c.services.ConfigPath, c.picker.palette); err != nil {
				log.ErrorErr(log.CatConfig, "Failed to persist reaction palette", err)
				return toaster.Show("Could not save reaction palette", toaster.LevelError)
			}
		}
	}
	return toaster.Show(fmt.Sprintf("Reacted %s", emoji), toaster.LevelSuccess)
}
