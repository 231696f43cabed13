package chat

import "github.com/google/uuid"

// PromoteTask derives a task from the message in bucket key. Promotion is
// idempotent per message: if a task for the message already exists, or the
// message cannot be found, nothing happens and ok is false.
func (s *State) PromoteTask(key, messageID string) (Task, bool) {
	for _, t := range s.tasks {
		if t.MessageID == messageID {
			return Task{}, false
		}
	}
	msg, found := s.findMessage(key, messageID)
	if !found {
		return Task{}, false
	}

	task := Task{
		ID:        uuid.New().String(),
		MessageID: msg.ID,
		Text:      msg.Text,
		Sender:    msg.Sender,
		SentAt:    msg.SentAt,
	}
	s.tasks = append(s.tasks, task)
	return task, true
}

// SetTaskDone sets the completion flag on the task; unknown IDs are ignored.
func (s *State) SetTaskDone(taskID string, done bool) {
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			s.tasks[i].Done = done
			return
		}
	}
}

// removeTasksForMessage drops every task derived from the message. There is
// at most one in practice, but the sweep does not rely on that.
func (s *State) removeTasksForMessage(messageID string) {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.MessageID != messageID {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
}

// TaskList returns tasks in promotion order. When hideDone is true,
// completed tasks are filtered out with relative order preserved.
func (s *State) TaskList(hideDone bool) []Task {
	var out []Task
	for _, t := range s.tasks {
		if hideDone && t.Done {
			continue
		}
		out = append(out, t)
	}
	return out
}
