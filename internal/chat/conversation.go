// Package chat provides the pure conversation/task state model with no
// infrastructure dependencies.
//
// The package owns the application state (users, channels, messages, tasks)
// and every mutation routed through it. Persistence and rendering live
// elsewhere; they talk to this package through the Service.
package chat

// ConversationKind discriminates channel conversations from direct messages.
type ConversationKind string

const (
	// KindChannel is a named channel visible to every user.
	KindChannel ConversationKind = "channel"

	// KindDirectMessage is a two-party conversation. The ref ID names the
	// other participant from the current user's point of view.
	KindDirectMessage ConversationKind = "dm"
)

// ConversationRef identifies a conversation from the viewpoint of the
// current user: either a channel by name, or a DM by the other participant.
type ConversationRef struct {
	Kind ConversationKind `json:"type"`
	ID   string           `json:"id"`
}

// ChannelRef returns a ref for the named channel.
func ChannelRef(name string) ConversationRef {
	return ConversationRef{Kind: KindChannel, ID: name}
}

// DirectMessageRef returns a ref for a DM with the named user.
func DirectMessageRef(user string) ConversationRef {
	return ConversationRef{Kind: KindDirectMessage, ID: user}
}

// Key resolves the ref to the canonical bucket key.
//
// Channel keys are viewpoint-independent ("channel:<name>"). DM keys sort
// the two participant names so that both sides resolve to the same bucket
// ("dm:<low>|<high>") no matter who is current.
func (r ConversationRef) Key(currentUser string) string {
	if r.Kind == KindChannel {
		return "channel:" + r.ID
	}
	a, b := currentUser, r.ID
	if b < a {
		a, b = b, a
	}
	return "dm:" + a + "|" + b
}

// Equal reports whether two refs point at the same conversation target.
func (r ConversationRef) Equal(other ConversationRef) bool {
	return r.Kind == other.Kind && r.ID == other.ID
}

// Title returns the display title for the conversation ("# General" or
// "DM: Nate"), matching the header shown above the message pane.
func (r ConversationRef) Title() string {
	if r.Kind == KindChannel {
		return "# " + r.ID
	}
	return "DM: " + r.ID
}
