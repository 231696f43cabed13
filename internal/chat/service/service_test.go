package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/chat"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	data    map[string][]byte
	loadErr error
	saveErr error
	saves   int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Load(key string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.data[key], nil
}

func (m *memStore) Save(key string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func TestNewStartsFromDefaultsWhenEmpty(t *testing.T) {
	svc := New(newMemStore())
	assert.Equal(t, []string{"Jared", "Nate"}, svc.State().Users())
	assert.Empty(t, svc.State().CurrentUser())
}

func TestNewAbsorbsLoadError(t *testing.T) {
	store := newMemStore()
	store.loadErr = errors.New("disk on fire")

	svc := New(store)
	assert.Equal(t, []string{"Jared", "Nate"}, svc.State().Users())
}

func TestNewRestoresSnapshot(t *testing.T) {
	seed := chat.NewState()
	seed.SelectUser("Nate")
	store := newMemStore()
	store.data[chat.SnapshotKey] = chat.EncodeSnapshot(seed)

	svc := New(store)
	assert.Equal(t, "Nate", svc.State().CurrentUser())
}

func TestMutationsCommit(t *testing.T) {
	store := newMemStore()
	svc := New(store)

	svc.SelectUser("Jared")
	msg, err := svc.SendMessage("hello there")
	require.NoError(t, err)
	require.Equal(t, 2, store.saves)

	restored := chat.DecodeSnapshot(store.data[chat.SnapshotKey])
	assert.Equal(t, "Jared", restored.CurrentUser())
	msgs := restored.MessagesFor("channel:General")
	require.Len(t, msgs, 1)
	assert.Equal(t, msg.ID, msgs[0].ID)
}

func TestRejectedMutationDoesNotCommit(t *testing.T) {
	store := newMemStore()
	svc := New(store)
	svc.SelectUser("Jared")
	savesBefore := store.saves

	_, err := svc.SendMessage("   ")
	assert.ErrorIs(t, err, chat.ErrEmptyMessage)
	assert.Equal(t, savesBefore, store.saves)

	err = svc.AddUser("jared")
	var dup *chat.DuplicateUserError
	assert.ErrorAs(t, err, &dup)
	assert.Equal(t, savesBefore, store.saves)
}

func TestRepeatPromotionDoesNotCommit(t *testing.T) {
	store := newMemStore()
	svc := New(store)
	svc.SelectUser("Jared")
	msg, err := svc.SendMessage("task me")
	require.NoError(t, err)

	require.True(t, svc.PromoteTask(msg.ID))
	savesAfterFirst := store.saves

	assert.False(t, svc.PromoteTask(msg.ID))
	assert.Equal(t, savesAfterFirst, store.saves)
}

func TestSaveErrorDoesNotLoseMutation(t *testing.T) {
	store := newMemStore()
	svc := New(store)
	svc.SelectUser("Jared")

	store.saveErr = errors.New("readonly fs")
	_, err := svc.SendMessage("still here")
	require.NoError(t, err)

	msgs := svc.State().MessagesFor("channel:General")
	assert.Len(t, msgs, 1)
}

func TestMutationsPublishChange(t *testing.T) {
	store := newMemStore()
	svc := New(store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := svc.Events().Subscribe(ctx)

	svc.SelectUser("Jared")

	select {
	case event := <-ch:
		assert.Equal(t, "select-user", event.Payload.Op)
	case <-time.After(time.Second):
		t.Fatal("no change event published")
	}
}

func TestDeleteMessageCascades(t *testing.T) {
	store := newMemStore()
	svc := New(store)
	svc.SelectUser("Jared")
	msg, err := svc.SendMessage("delete me")
	require.NoError(t, err)
	require.True(t, svc.PromoteTask(msg.ID))

	svc.DeleteMessage(msg.ID)

	assert.Empty(t, svc.State().MessagesFor("channel:General"))
	assert.Empty(t, svc.State().TaskList(false))
}

func TestReload(t *testing.T) {
	store := newMemStore()
	svc := New(store)
	svc.SelectUser("Jared")

	// another process rewrites the snapshot underneath us
	other := chat.NewState()
	require.NoError(t, other.AddUser("Alice"))
	other.SelectUser("Alice")
	store.data[chat.SnapshotKey] = chat.EncodeSnapshot(other)

	svc.Reload()

	assert.Equal(t, "Alice", svc.State().CurrentUser())
	assert.Contains(t, svc.State().Users(), "Alice")
}

func TestReloadRepairsStaleActiveConversation(t *testing.T) {
	store := newMemStore()
	svc := New(store)
	svc.SelectUser("Jared")

	// an external edit targets a DM partner who is not in the roster
	store.data[chat.SnapshotKey] = []byte(`{"users": ["Jared", "Nate"], "currentUser": "Jared", "activeConversation": {"type": "dm", "id": "Ghost"}}`)

	svc.Reload()

	assert.True(t, chat.DirectMessageRef("Nate").Equal(svc.State().ActiveConversation()))
	_, err := svc.SendMessage("after reload")
	require.NoError(t, err)
	assert.Len(t, svc.State().MessagesFor("dm:Jared|Nate"), 1)
	assert.Empty(t, svc.State().MessagesFor("dm:Ghost|Jared"))
}

func TestReloadKeepsStateOnLoadError(t *testing.T) {
	store := newMemStore()
	svc := New(store)
	svc.SelectUser("Jared")

	store.loadErr = errors.New("gone")
	svc.Reload()

	assert.Equal(t, "Jared", svc.State().CurrentUser())
}
