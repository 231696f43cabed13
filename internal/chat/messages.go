package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AppendMessage creates a message from sender and pushes it onto the bucket
// for key, creating the bucket if absent. The text is trimmed; blank text
// is rejected, as is sending while no identity is selected.
func (s *State) AppendMessage(key, sender, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}
	if s.currentUser == "" {
		return Message{}, ErrNoCurrentUser
	}

	msg := Message{
		ID:        uuid.New().String(),
		Sender:    sender,
		Text:      text,
		SentAt:    time.Now(),
		Reactions: make(map[string]int),
	}
	s.messages[key] = append(s.messages[key], msg)
	return msg, nil
}

// DeleteMessage removes the message from its bucket and cascades to any
// task derived from it. Deleting an absent message is a no-op.
func (s *State) DeleteMessage(key, messageID string) {
	bucket := s.messages[key]
	kept := bucket[:0]
	for _, m := range bucket {
		if m.ID != messageID {
			kept = append(kept, m)
		}
	}
	s.messages[key] = kept
	s.removeTasksForMessage(messageID)
}

// AddReaction increments the emoji count on the message, starting at 1.
// Unknown message IDs are ignored. Counts only ever grow; there is no
// decrement.
func (s *State) AddReaction(key, messageID, emoji string) {
	bucket := s.messages[key]
	for i := range bucket {
		if bucket[i].ID != messageID {
			continue
		}
		if bucket[i].Reactions == nil {
			bucket[i].Reactions = make(map[string]int)
		}
		bucket[i].Reactions[emoji]++
		return
	}
}

// MessagesFor returns a copy of the bucket for key in append order.
// An absent bucket yields an empty slice, never an error.
func (s *State) MessagesFor(key string) []Message {
	bucket := s.messages[key]
	out := make([]Message, len(bucket))
	copy(out, bucket)
	return out
}

// findMessage locates a message within a specific bucket.
func (s *State) findMessage(key, messageID string) (Message, bool) {
	for _, m := range s.messages[key] {
		if m.ID == messageID {
			return m, true
		}
	}
	return Message{}, false
}
