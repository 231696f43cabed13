package messaging

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"parley/internal/chat"
	"parley/internal/ui/styles"
)

const (
	sidebarWidth   = 22
	taskPanelWidth = 30
	maxSenderWidth = 16
)

// View implements mode.Controller.
func (c *Controller) View() string {
	if c.width == 0 {
		return ""
	}

	showTasks := c.services.Config.UI.ShowTaskPanel

	msgWidth := c.width - sidebarWidth
	if showTasks {
		msgWidth -= taskPanelWidth
	}
	// panel borders and padding
	msgWidth = max(20, msgWidth-4)

	header := c.headerView()
	footer := c.help.View(c.keymap)
	composer := c.composerView()

	bodyHeight := c.height - lipgloss.Height(header) - lipgloss.Height(composer) - lipgloss.Height(footer)
	bodyHeight = max(3, bodyHeight)

	sidebar := c.sidebarView(bodyHeight)
	messages := c.messagesView(msgWidth, bodyHeight)

	columns := []string{sidebar, messages}
	if showTasks {
		columns = append(columns, c.tasksView(bodyHeight))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, composer, footer)
}

func (c *Controller) headerView() string {
	st := c.services.Chat.State()
	title := styles.TitleStyle.Render(st.ActiveConversation().Title())
	who := styles.SubtleStyle.Render("as " + st.CurrentUser())
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", who)
}

func (c *Controller) sidebarView(height int) string {
	st := c.services.Chat.State()
	active := st.ActiveConversation()

	var rows []string
	rows = append(rows, styles.SubtleStyle.Render("CHANNELS"))
	for _, ch := range st.Channels() {
		rows = append(rows, c.sidebarRow("# "+ch, chat.ChannelRef(ch).Equal(active)))
	}
	rows = append(rows, "", styles.SubtleStyle.Render("DIRECT MESSAGES"))
	partners := st.DMPartners()
	if len(partners) == 0 {
		rows = append(rows, styles.SubtleStyle.Render("  (nobody else)"))
	}
	for _, p := range partners {
		rows = append(rows, c.sidebarRow("@ "+p, chat.DirectMessageRef(p).Equal(active)))
	}

	content := strings.Join(rows, "\n")
	return styles.PanelStyle.Width(sidebarWidth - 2).Height(height - 2).Render(content)
}

func (c *Controller) sidebarRow(label string, active bool) string {
	label = runewidth.Truncate(label, sidebarWidth-4, "…")
	if active {
		return styles.SelectedStyle.Render(label)
	}
	return label
}

func (c *Controller) messagesView(width, height int) string {
	st := c.services.Chat.State()
	msgs := st.MessagesFor(st.ActiveKey())

	var blocks []string
	if len(msgs) == 0 {
		blocks = append(blocks, styles.SubtleStyle.Render("No messages yet."))
	}
	for i, m := range msgs {
		blocks = append(blocks, c.renderMessage(m, width, i == c.msgCursor && c.focus == focusMessages))
	}

	if c.picker.active {
		blocks = append(blocks, "", c.picker.view())
	}

	content := strings.Join(blocks, "\n")
	content = clipToBottom(content, height-2)

	style := styles.PanelStyle
	if c.focus == focusMessages {
		style = styles.FocusedPanelStyle
	}
	return style.Width(width + 2).Height(height - 2).Render(content)
}

// renderMessage formats a single message block. Blocks are cached per
// id/width/selection/reactions since wrapping is the expensive part.
func (c *Controller) renderMessage(m chat.Message, width int, selected bool) string {
	key := fmt.Sprintf("%s|%d|%t|%s", m.ID, width, selected, reactionFingerprint(m.Reactions))
	if cached, ok := c.renderCache.Get(context.Background(), key); ok {
		return cached
	}

	sender := runewidth.Truncate(m.Sender, maxSenderWidth, "…")
	header := sender + " " + styles.SubtleStyle.Render(formatTimestamp(m.SentAt, c.services.Config.UI.RelativeTimestamps, time.Now()))
	if selected {
		header = styles.SelectedStyle.Render(sender) + " " + styles.SubtleStyle.Render(formatTimestamp(m.SentAt, c.services.Config.UI.RelativeTimestamps, time.Now()))
	}

	body := wordwrap.String(m.Text, width)
	lines := []string{header, body}
	if pills := reactionPills(m.Reactions); pills != "" {
		lines = append(lines, styles.ReactionStyle.Render(pills))
	}
	block := strings.Join(lines, "\n")

	c.renderCache.Set(context.Background(), key, block, renderCacheTTL)
	return block
}

const renderCacheTTL = 5 * time.Minute

// reactionPills renders "👍 2  ❤️ 1", emoji sorted for stable output.
func reactionPills(reactions map[string]int) string {
	if len(reactions) == 0 {
		return ""
	}
	emojis := make([]string, 0, len(reactions))
	for e := range reactions {
		emojis = append(emojis, e)
	}
	sort.Strings(emojis)
	parts := make([]string, 0, len(emojis))
	for _, e := range emojis {
		parts = append(parts, fmt.Sprintf("%s %d", e, reactions[e]))
	}
	return strings.Join(parts, "  ")
}

// reactionFingerprint is the cache key component for reaction state.
func reactionFingerprint(reactions map[string]int) string {
	return reactionPills(reactions)
}

func (c *Controller) tasksView(height int) string {
	st := c.services.Chat.State()
	tasks := c.visibleTasks()

	var rows []string
	title := "TASKS"
	if st.HideDoneTasks() {
		title = "TASKS (hiding done)"
	}
	rows = append(rows, styles.SubtleStyle.Render(title))
	if len(tasks) == 0 {
		rows = append(rows, styles.SubtleStyle.Render("No tasks added."))
	}
	for i, t := range tasks {
		box := "[ ]"
		if t.Done {
			box = "[x]"
		}
		label := runewidth.Truncate(fmt.Sprintf("%s %s", box, t.Text), taskPanelWidth-6, "…")
		switch {
		case i == c.taskCursor && c.focus == focusTasks:
			label = styles.SelectedStyle.Render(label)
		case t.Done:
			label = styles.DoneTaskStyle.Render(label)
		}
		rows = append(rows, label)
	}

	content := strings.Join(rows, "\n")
	style := styles.PanelStyle
	if c.focus == focusTasks {
		style = styles.FocusedPanelStyle
	}
	return style.Width(taskPanelWidth - 2).Height(height - 2).Render(content)
}

func (c *Controller) composerView() string {
	if c.composing {
		return "> " + c.input.View()
	}
	return styles.SubtleStyle.Render("press i to compose")
}

// clipToBottom keeps the last n lines, so the newest messages stay visible.
func clipToBottom(s string, n int) string {
	if n <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}

// formatTimestamp renders a message time either relatively ("5m ago") or as
// a compact absolute time.
func formatTimestamp(t time.Time, relative bool, now time.Time) string {
	if relative {
		d := now.Sub(t)
		switch {
		case d < time.Minute:
			return "just now"
		case d < time.Hour:
			return fmt.Sprintf("%dm ago", int(d.Minutes()))
		case d < 24*time.Hour:
			return fmt.Sprintf("%dh ago", int(d.Hours()))
		default:
			return fmt.Sprintf("%dd ago", int(d.Hours()/24))
		}
	}
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	return t.Format("Jan 2 15:04")
}
