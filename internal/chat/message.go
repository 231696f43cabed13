package chat

import "time"

// Message is a single entry in a conversation bucket. IDs are globally
// unique and immutable once created. Reactions map an emoji to a
// non-negative count; the map is never nil on a live message.
type Message struct {
	ID        string         `json:"id"`
	Sender    string         `json:"sender"`
	Text      string         `json:"text"`
	SentAt    time.Time      `json:"sentAt"`
	Reactions map[string]int `json:"reactions"`
}

// Task is a snapshot of a message promoted into the personal task list.
// Text, sender, and timestamp are copied at promotion time, not referenced;
// MessageID links back to the source message for cascade deletion only.
type Task struct {
	ID        string    `json:"id"`
	MessageID string    `json:"messageId"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	SentAt    time.Time `json:"sentAt"`
	Done      bool      `json:"done"`
}
