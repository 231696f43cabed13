// Package service wires the chat state model to persistence, events, and
// tracing. Every mutation runs the state operation, commits the encoded
// snapshot to the store, and publishes a change event for re-render.
package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"parley/internal/chat"
	"parley/internal/log"
	"parley/internal/pubsub"
)

const tracerName = "parley/internal/chat/service"

// Store is the durable key-value snapshot store the service commits to.
type Store interface {
	// Load returns the raw snapshot under key, or nil when absent.
	Load(key string) ([]byte, error)
	// Save replaces the snapshot under key.
	Save(key string, data []byte) error
}

// Change describes a state mutation for subscribers. Op names the
// operation that ran ("send-message", "promote-task", ...).
type Change struct {
	Op string
}

// Service owns the application state and routes every mutation through it.
// Reads never commit; each successful mutation is committed synchronously
// before the change event is published.
type Service struct {
	state  *chat.State
	store  Store
	broker *pubsub.Broker[Change]
	tracer trace.Tracer
}

// New loads the snapshot from the store and builds the service around the
// reconciled state. A missing or corrupt snapshot yields the defaults; load
// failures are absorbed, never returned.
func New(store Store) *Service {
	raw, err := store.Load(chat.SnapshotKey)
	if err != nil {
		log.ErrorErr(log.CatDB, "Snapshot load failed, starting from defaults", err)
		raw = nil
	}

	return &Service{
		state:  chat.DecodeSnapshot(raw),
		store:  store,
		broker: pubsub.NewBroker[Change](),
		tracer: otel.Tracer(tracerName),
	}
}

// State exposes the owned state for read-only projections. Callers must
// not retain it across mutations.
func (s *Service) State() *chat.State {
	return s.state
}

// Events returns the broker publishing a Change after every mutation.
func (s *Service) Events() *pubsub.Broker[Change] {
	return s.broker
}

// AddUser adds a name to the roster. Validation rejections come back as
// errors for the UI to display; the state is unchanged on rejection.
func (s *Service) AddUser(name string) error {
	_, span := s.startSpan("chat.add_user")
	defer span.End()

	if err := s.state.AddUser(name); err != nil {
		return err
	}
	s.commit("add-user")
	return nil
}

// SelectUser sets the current identity and repairs the active conversation.
func (s *Service) SelectUser(name string) {
	_, span := s.startSpan("chat.select_user", attribute.String("user", name))
	defer span.End()

	s.state.SelectUser(name)
	s.commit("select-user")
}

// SwitchUser clears the current identity.
func (s *Service) SwitchUser() {
	_, span := s.startSpan("chat.switch_user")
	defer span.End()

	s.state.SwitchUser()
	s.commit("switch-user")
}

// SetActive focuses the given conversation.
func (s *Service) SetActive(ref chat.ConversationRef) {
	_, span := s.startSpan("chat.set_active", attribute.String("conversation", ref.Key(s.state.CurrentUser())))
	defer span.End()

	s.state.SetActive(ref)
	s.commit("set-active")
}

// SendMessage appends a message from the current user to the active
// conversation. Blank text and a missing identity are rejected.
func (s *Service) SendMessage(text string) (chat.Message, error) {
	_, span := s.startSpan("chat.send_message")
	defer span.End()

	key := s.state.ActiveKey()
	msg, err := s.state.AppendMessage(key, s.state.CurrentUser(), text)
	if err != nil {
		return chat.Message{}, err
	}
	log.Debug(log.CatChat, "Message sent", "key", key, "id", msg.ID)
	s.commit("send-message")
	return msg, nil
}

// DeleteMessage removes a message from the active conversation and cascades
// to any task derived from it. Unknown IDs are a no-op but still commit.
func (s *Service) DeleteMessage(messageID string) {
	_, span := s.startSpan("chat.delete_message", attribute.String("message.id", messageID))
	defer span.End()

	s.state.DeleteMessage(s.state.ActiveKey(), messageID)
	s.commit("delete-message")
}

// AddReaction increments an emoji count on a message in the active
// conversation.
func (s *Service) AddReaction(messageID, emoji string) {
	_, span := s.startSpan("chat.add_reaction", attribute.String("emoji", emoji))
	defer span.End()

	s.state.AddReaction(s.state.ActiveKey(), messageID, emoji)
	s.commit("add-reaction")
}

// PromoteTask creates a task from a message in the active conversation.
// Repeat promotion of the same message reports false and changes nothing.
func (s *Service) PromoteTask(messageID string) bool {
	_, span := s.startSpan("chat.promote_task", attribute.String("message.id", messageID))
	defer span.End()

	_, ok := s.state.PromoteTask(s.state.ActiveKey(), messageID)
	if ok {
		s.commit("promote-task")
	}
	return ok
}

// SetTaskDone flips the completion flag on a task.
func (s *Service) SetTaskDone(taskID string, done bool) {
	_, span := s.startSpan("chat.set_task_done")
	defer span.End()

	s.state.SetTaskDone(taskID, done)
	s.commit("set-task-done")
}

// SetHideDone toggles the completed-task filter.
func (s *Service) SetHideDone(hide bool) {
	_, span := s.startSpan("chat.set_hide_done")
	defer span.End()

	s.state.SetHideDoneTasks(hide)
	s.commit("set-hide-done")
}

// Reload replaces the in-memory state with the snapshot currently in the
// store. Used when another process rewrites the store underneath us.
func (s *Service) Reload() {
	raw, err := s.store.Load(chat.SnapshotKey)
	if err != nil {
		log.ErrorErr(log.CatDB, "Snapshot reload failed, keeping current state", err)
		return
	}
	s.state = chat.DecodeSnapshot(raw)
	s.broker.Publish(pubsub.UpdatedEvent, Change{Op: "reload"})
}

// commit persists the full state and announces the change. Save failures
// are logged but not surfaced: the in-memory mutation already succeeded
// and the next commit retries the write anyway.
func (s *Service) commit(op string) {
	if err := s.store.Save(chat.SnapshotKey, chat.EncodeSnapshot(s.state)); err != nil {
		log.ErrorErr(log.CatDB, "Snapshot save failed", err, "op", op)
	}
	s.broker.Publish(pubsub.UpdatedEvent, Change{Op: op})
}

func (s *Service) startSpan(name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(context.Background(), name, trace.WithAttributes(attrs...))
}
