package messaging

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"parley/internal/mode"
	"parley/internal/ui/styles"
)

// pickerModel is the quick-reaction palette shown over the message pane.
// Digits pick from the palette, "c" switches to free-form entry.
type pickerModel struct {
	palette []string
	active  bool
	custom  bool
	input   textinput.Model
}

func newPicker(palette []string) pickerModel {
	input := textinput.New()
	input.Placeholder = "emoji"
	input.CharLimit = 16
	input.Width = 12

	return pickerModel{
		palette: append([]string(nil), palette...),
		input:   input,
	}
}

func (p *pickerModel) open() {
	p.active = true
	p.custom = false
	p.input.SetValue("")
}

func (p *pickerModel) close() {
	p.active = false
	p.custom = false
	p.input.Blur()
}

func (p *pickerModel) has(emoji string) bool {
	for _, e := range p.palette {
		if e == emoji {
			return true
		}
	}
	return false
}

func (p *pickerModel) add(emoji string) {
	p.palette = append(p.palette, emoji)
}

func (c *Controller) updatePicker(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	if c.picker.custom {
		switch {
		case key.Matches(msg, c.keymap.Blur):
			c.picker.close()
			return c, nil
		case key.Matches(msg, c.keymap.Send):
			emoji := strings.TrimSpace(c.picker.input.Value())
			c.picker.close()
			if emoji == "" {
				return c, nil
			}
			return c, c.applyReaction(emoji)
		}
		var cmd tea.Cmd
		c.picker.input, cmd = c.picker.input.Update(msg)
		return c, cmd
	}

	switch s := msg.String(); {
	case key.Matches(msg, c.keymap.Blur):
		c.picker.close()
		return c, nil
	case s == "c":
		c.picker.custom = true
		c.picker.input.Focus()
		return c, textinput.Blink
	case len(s) == 1 && s[0] >= '1' && s[0] <= '9':
		idx := int(s[0] - '1')
		if idx < len(c.picker.palette) {
			emoji := c.picker.palette[idx]
			c.picker.close()
			return c, c.applyReaction(emoji)
		}
	}
	return c, nil
}

func (p pickerModel) view() string {
	if p.custom {
		return styles.PanelStyle.Render("React with: " + p.input.View())
	}

	var entries []string
	for i, emoji := range p.palette {
		entries = append(entries, fmt.Sprintf("%d %s", i+1, emoji))
	}
	entries = append(entries, styles.SubtleStyle.Render("c custom · esc cancel"))
	return styles.PanelStyle.Render(lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(entries, "  ")))
}
