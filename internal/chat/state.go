package chat

import "strings"

// State is the single owner of all conversation/task data. Fields are
// unexported so every mutation goes through the operations defined on it;
// the Service wraps those operations with persistence and events.
//
// State is not safe for concurrent use. All mutations run on the UI event
// loop, which processes one event at a time.
type State struct {
	users       []string
	currentUser string // empty means no identity selected
	channels    []string
	active      ConversationRef
	messages    map[string][]Message
	tasks       []Task
	hideDone    bool
}

// NewState returns the default state: the seed roster and channels, no
// current user, and the first channel active.
func NewState() *State {
	return &State{
		users:    []string{"Jared", "Nate"},
		channels: []string{"General", "Random"},
		active:   ChannelRef("General"),
		messages: make(map[string][]Message),
	}
}

// AddUser appends a new user to the roster. The name is trimmed first;
// empty names and case-insensitive duplicates are rejected. Users are
// append-only: there is no removal operation.
func (s *State) AddUser(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyUserName
	}
	for _, u := range s.users {
		if strings.EqualFold(u, name) {
			return &DuplicateUserError{Name: name}
		}
	}
	s.users = append(s.users, name)
	return nil
}

// SelectUser makes name the current user and repairs the active
// conversation, since switching identity can invalidate the active DM.
func (s *State) SelectUser(name string) {
	s.currentUser = name
	s.EnsureValidConversation()
}

// SwitchUser clears the current user, returning to identity selection.
// The active conversation is left as-is; it is repaired on next select.
func (s *State) SwitchUser() {
	s.currentUser = ""
}

// SetActive points the focus at the given conversation. Callers are the
// navigation UI, which only offers valid targets, so no validation runs.
func (s *State) SetActive(ref ConversationRef) {
	s.active = ref
}

// EnsureValidConversation repairs the active conversation after identity
// or roster changes. A DM whose target is gone or equals the current user
// is retargeted to the first other user, falling back to the first channel
// when no other user exists. Channel refs are never validated against the
// channel list; any channel name is treated as a valid target.
func (s *State) EnsureValidConversation() {
	if s.currentUser == "" {
		return
	}
	if s.active.Kind != KindDirectMessage {
		return
	}
	if s.active.ID != s.currentUser && s.hasUser(s.active.ID) {
		return
	}
	for _, u := range s.users {
		if u != s.currentUser {
			s.active = DirectMessageRef(u)
			return
		}
	}
	if len(s.channels) > 0 {
		s.active = ChannelRef(s.channels[0])
	}
}

func (s *State) hasUser(name string) bool {
	for _, u := range s.users {
		if u == name {
			return true
		}
	}
	return false
}

// CurrentUser returns the selected identity, or empty when none is set.
func (s *State) CurrentUser() string {
	return s.currentUser
}

// Users returns the roster in insertion order.
func (s *State) Users() []string {
	out := make([]string, len(s.users))
	copy(out, s.users)
	return out
}

// Channels returns the channel names in display order.
func (s *State) Channels() []string {
	out := make([]string, len(s.channels))
	copy(out, s.channels)
	return out
}

// DMPartners returns the users the current user can DM, preserving roster
// order.
func (s *State) DMPartners() []string {
	var out []string
	for _, u := range s.users {
		if u != s.currentUser {
			out = append(out, u)
		}
	}
	return out
}

// ActiveConversation returns the current focus ref.
func (s *State) ActiveConversation() ConversationRef {
	return s.active
}

// ActiveKey resolves the active conversation to its bucket key for the
// current user.
func (s *State) ActiveKey() string {
	return s.active.Key(s.currentUser)
}

// HideDoneTasks reports whether completed tasks are filtered from the list.
func (s *State) HideDoneTasks() bool {
	return s.hideDone
}

// SetHideDoneTasks toggles the completed-task filter.
func (s *State) SetHideDoneTasks(hide bool) {
	s.hideDone = hide
}
