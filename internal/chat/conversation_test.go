package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestConversationRefKey(t *testing.T) {
	tests := []struct {
		name        string
		ref         ConversationRef
		currentUser string
		want        string
	}{
		{
			name:        "channel key ignores current user",
			ref:         ChannelRef("General"),
			currentUser: "Jared",
			want:        "channel:General",
		},
		{
			name:        "dm key sorts participants",
			ref:         DirectMessageRef("Nate"),
			currentUser: "Jared",
			want:        "dm:Jared|Nate",
		},
		{
			name:        "dm key sorts participants from the other side",
			ref:         DirectMessageRef("Jared"),
			currentUser: "Nate",
			want:        "dm:Jared|Nate",
		},
		{
			name:        "dm with self",
			ref:         DirectMessageRef("Jared"),
			currentUser: "Jared",
			want:        "dm:Jared|Jared",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.Key(tt.currentUser))
		})
	}
}

func TestConversationRefTitle(t *testing.T) {
	assert.Equal(t, "# General", ChannelRef("General").Title())
	assert.Equal(t, "DM: Nate", DirectMessageRef("Nate").Title())
}

func TestDMKeySymmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.StringMatching(`[A-Za-z]{1,12}`).Draw(t, "a")
		b := rapid.StringMatching(`[A-Za-z]{1,12}`).Draw(t, "b")

		fromA := DirectMessageRef(b).Key(a)
		fromB := DirectMessageRef(a).Key(b)

		if fromA != fromB {
			t.Fatalf("dm key differs by viewpoint: %q vs %q", fromA, fromB)
		}
		if !strings.HasPrefix(fromA, "dm:") {
			t.Fatalf("dm key missing prefix: %q", fromA)
		}
	})
}

func TestChannelKeyViewpointIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[A-Za-z]{1,12}`).Draw(t, "name")
		u1 := rapid.StringMatching(`[A-Za-z]{1,12}`).Draw(t, "u1")
		u2 := rapid.StringMatching(`[A-Za-z]{1,12}`).Draw(t, "u2")

		ref := ChannelRef(name)
		if ref.Key(u1) != ref.Key(u2) {
			t.Fatalf("channel key depends on viewer: %q vs %q", ref.Key(u1), ref.Key(u2))
		}
	})
}
