package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState()

	assert.Equal(t, []string{"Jared", "Nate"}, s.Users())
	assert.Equal(t, []string{"General", "Random"}, s.Channels())
	assert.Empty(t, s.CurrentUser())
	assert.True(t, ChannelRef("General").Equal(s.ActiveConversation()))
	assert.False(t, s.HideDoneTasks())
}

func TestAddUser(t *testing.T) {
	t.Run("appends trimmed name", func(t *testing.T) {
		s := NewState()
		require.NoError(t, s.AddUser("  Alice  "))
		assert.Equal(t, []string{"Jared", "Nate", "Alice"}, s.Users())
	})

	t.Run("rejects empty after trim", func(t *testing.T) {
		s := NewState()
		assert.ErrorIs(t, s.AddUser("   "), ErrEmptyUserName)
		assert.Len(t, s.Users(), 2)
	})

	t.Run("rejects duplicates case-insensitively", func(t *testing.T) {
		s := NewState()
		err := s.AddUser("jared")
		var dup *DuplicateUserError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "jared", dup.Name)
		assert.Len(t, s.Users(), 2)
	})
}

func TestSelectAndSwitchUser(t *testing.T) {
	s := NewState()
	s.SelectUser("Jared")
	assert.Equal(t, "Jared", s.CurrentUser())

	s.SwitchUser()
	assert.Empty(t, s.CurrentUser())
}

func TestDMPartners(t *testing.T) {
	s := NewState()
	require.NoError(t, s.AddUser("Alice"))
	s.SelectUser("Nate")

	assert.Equal(t, []string{"Jared", "Alice"}, s.DMPartners())
}

func TestEnsureValidConversation(t *testing.T) {
	t.Run("no current user is a no-op", func(t *testing.T) {
		s := NewState()
		s.SetActive(DirectMessageRef("Ghost"))
		s.EnsureValidConversation()
		assert.True(t, DirectMessageRef("Ghost").Equal(s.ActiveConversation()))
	})

	t.Run("valid dm is kept", func(t *testing.T) {
		s := NewState()
		s.SelectUser("Jared")
		s.SetActive(DirectMessageRef("Nate"))
		s.EnsureValidConversation()
		assert.True(t, DirectMessageRef("Nate").Equal(s.ActiveConversation()))
	})

	t.Run("dm with self retargets to first other user", func(t *testing.T) {
		s := NewState()
		s.SetActive(DirectMessageRef("Jared"))
		s.SelectUser("Jared")
		assert.True(t, DirectMessageRef("Nate").Equal(s.ActiveConversation()))
	})

	t.Run("dm with unknown user retargets", func(t *testing.T) {
		s := NewState()
		s.SetActive(DirectMessageRef("Ghost"))
		s.SelectUser("Nate")
		assert.True(t, DirectMessageRef("Jared").Equal(s.ActiveConversation()))
	})

	t.Run("falls back to first channel when nobody else exists", func(t *testing.T) {
		s := &State{
			users:    []string{"Solo"},
			channels: []string{"General", "Random"},
			active:   DirectMessageRef("Ghost"),
			messages: make(map[string][]Message),
		}
		s.SelectUser("Solo")
		assert.True(t, ChannelRef("General").Equal(s.ActiveConversation()))
	})

	// Channel refs are deliberately never checked against the channel
	// list: any channel name is a valid target, matching how the UI only
	// ever offers real channels but old snapshots may reference renamed
	// ones.
	t.Run("unknown channel ref is left alone", func(t *testing.T) {
		s := NewState()
		s.SetActive(ChannelRef("Retired"))
		s.SelectUser("Jared")
		assert.True(t, ChannelRef("Retired").Equal(s.ActiveConversation()))
	})
}

func TestActiveKey(t *testing.T) {
	s := NewState()
	s.SelectUser("Nate")
	s.SetActive(DirectMessageRef("Jared"))

	assert.Equal(t, "dm:Jared|Nate", s.ActiveKey())

	s.SetActive(ChannelRef("Random"))
	assert.Equal(t, "channel:Random", s.ActiveKey())
}
