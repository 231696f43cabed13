package messaging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"parley/internal/chat"
)

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		at       time.Time
		relative bool
		want     string
	}{
		{
			name:     "relative just now",
			at:       now.Add(-30 * time.Second),
			relative: true,
			want:     "just now",
		},
		{
			name:     "relative minutes",
			at:       now.Add(-5 * time.Minute),
			relative: true,
			want:     "5m ago",
		},
		{
			name:     "relative hours",
			at:       now.Add(-3 * time.Hour),
			relative: true,
			want:     "3h ago",
		},
		{
			name:     "relative days",
			at:       now.Add(-49 * time.Hour),
			relative: true,
			want:     "2d ago",
		},
		{
			name:     "absolute same day",
			at:       now.Add(-2 * time.Hour),
			relative: false,
			want:     "10:00",
		},
		{
			name:     "absolute other day",
			at:       time.Date(2026, time.January, 2, 15, 4, 0, 0, time.UTC),
			relative: false,
			want:     "Jan 2 15:04",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatTimestamp(tt.at, tt.relative, now))
		})
	}
}

func TestReactionPills(t *testing.T) {
	assert.Empty(t, reactionPills(nil))
	assert.Empty(t, reactionPills(map[string]int{}))

	got := reactionPills(map[string]int{"👍": 2, "❤️": 1})
	// emoji order is sorted, so output is deterministic
	assert.Contains(t, got, "👍 2")
	assert.Contains(t, got, "❤️ 1")
	assert.Equal(t, got, reactionPills(map[string]int{"❤️": 1, "👍": 2}))
}

func TestClipToBottom(t *testing.T) {
	s := "one\ntwo\nthree\nfour"

	assert.Equal(t, "three\nfour", clipToBottom(s, 2))
	assert.Equal(t, s, clipToBottom(s, 10))
	assert.Equal(t, s, clipToBottom(s, 0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, clamp(-3, 0, 5))
	assert.Equal(t, 5, clamp(9, 0, 5))
	assert.Equal(t, 3, clamp(3, 0, 5))
	// empty range collapses to the lower bound
	assert.Equal(t, 0, clamp(2, 0, -1))
}

func TestSendErrorText(t *testing.T) {
	assert.Equal(t, "Cannot send an empty message", sendErrorText(chat.ErrEmptyMessage))
	assert.Equal(t, "Pick a user first", sendErrorText(chat.ErrNoCurrentUser))
	assert.Equal(t, "boom", sendErrorText(errors.New("boom")))
}
