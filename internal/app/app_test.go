package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/chat"
	"parley/internal/chat/service"
	"parley/internal/config"
	"parley/internal/mode"
)

type memStore struct {
	data map[string][]byte
}

func (m *memStore) Load(key string) ([]byte, error) { return m.data[key], nil }
func (m *memStore) Save(key string, data []byte) error {
	m.data[key] = data
	return nil
}

func newTestModel(t *testing.T) (*Model, *service.Service, *memStore) {
	t.Helper()
	store := &memStore{data: make(map[string][]byte)}
	svc := service.New(store)
	cfg := config.Defaults()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	m := New(ctx, mode.Services{Chat: svc, Config: &cfg}, nil)
	return m, svc, store
}

func TestStartsOnIdentityWithoutUser(t *testing.T) {
	m, _, _ := newTestModel(t)
	assert.Equal(t, mode.ModeIdentity, m.active)
}

func TestStartsOnMessagingWithRestoredUser(t *testing.T) {
	store := &memStore{data: make(map[string][]byte)}
	seed := chat.NewState()
	seed.SelectUser("Nate")
	store.data[chat.SnapshotKey] = chat.EncodeSnapshot(seed)

	svc := service.New(store)
	cfg := config.Defaults()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	m := New(ctx, mode.Services{Chat: svc, Config: &cfg}, nil)
	assert.Equal(t, mode.ModeMessaging, m.active)
}

func TestWindowSizeReachesControllers(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(*Model)

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.NotEmpty(t, m.View())
}

func TestSwitchMode(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, _ := m.Update(mode.SwitchModeMsg{Mode: mode.ModeMessaging})
	m = next.(*Model)

	assert.Equal(t, mode.ModeMessaging, m.active)
}

func TestDBChangeReloadsState(t *testing.T) {
	m, svc, store := newTestModel(t)

	other := chat.NewState()
	require.NoError(t, other.AddUser("Alice"))
	store.data[chat.SnapshotKey] = chat.EncodeSnapshot(other)

	next, cmd := m.Update(dbChangedMsg{})
	m = next.(*Model)

	assert.Contains(t, svc.State().Users(), "Alice")
	assert.NotNil(t, cmd, "expected a toast and a re-arm command")
}
