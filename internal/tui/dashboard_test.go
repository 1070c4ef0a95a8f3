package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"askai/client/internal/backend/mocks"
	"askai/client/internal/controller"
	"askai/client/internal/model"
	"askai/client/internal/navigation"
	"askai/client/internal/repository"
	"askai/client/internal/session"
)

func setupDashboard(t *testing.T, history []model.HistoryEntry) (*Dashboard, *controller.Controller, *mocks.MockClient, *session.Session) {
	t.Helper()
	ctx := context.Background()

	b := mocks.NewMockClient(t)
	b.On("History", mock.Anything, "tok-1").Return(history, nil)

	s := session.New(repository.NewMemoryRepository(), "cli")
	require.NoError(t, s.Set(ctx, "tok-1"))
	ctrl := controller.New(b, session.NewGuard(s, navigation.NewRecorder(), nil))
	t.Cleanup(ctrl.Close)

	require.True(t, ctrl.Mount(ctx))
	ctrl.Wait()
	return NewDashboard(ctx, ctrl), ctrl, b, s
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func typeText(m *Dashboard, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestDashboard_SubmitOnEnter(t *testing.T) {
	m, ctrl, b, _ := setupDashboard(t, []model.HistoryEntry{})
	b.On("Ask", mock.Anything, "tok-1", "hello").Return(&model.AskResponse{Response: "hi there"}, nil).Once()

	typeText(m, "hello")
	m.Update(key(tea.KeyEnter))
	ctrl.Wait()

	assert.Empty(t, m.input.Value())
	snap := ctrl.Snapshot()
	assert.Equal(t, controller.StateSuccess, snap.State)

	m.Update(snapshotMsg(snap))
	assert.Contains(t, m.View(), "hi there")
}

func TestDashboard_EmptyEnterDoesNothing(t *testing.T) {
	m, ctrl, b, _ := setupDashboard(t, []model.HistoryEntry{})

	typeText(m, "   ")
	m.Update(key(tea.KeyEnter))
	ctrl.Wait()

	b.AssertNotCalled(t, "Ask", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, controller.StateIdle, ctrl.Snapshot().State)
}

func TestDashboard_HistorySelection(t *testing.T) {
	m, ctrl, _, _ := setupDashboard(t, []model.HistoryEntry{
		{ID: "2", Prompt: "second question", Response: "second answer"},
		{ID: "1", Prompt: "first question", Response: "first answer"},
	})
	require.Len(t, m.snap.History, 2)

	m.Update(key(tea.KeyTab))
	assert.Equal(t, focusHistory, m.focus)
	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyDown))
	assert.Equal(t, 1, m.cursor)

	m.Update(key(tea.KeyEnter))
	assert.Equal(t, focusInput, m.focus)

	snap := ctrl.Snapshot()
	assert.Equal(t, controller.StateSuccess, snap.State)
	assert.Equal(t, "first answer", snap.Exchange.Response)
}

func TestDashboard_NewChat(t *testing.T) {
	m, ctrl, _, _ := setupDashboard(t, []model.HistoryEntry{{ID: "1", Prompt: "q", Response: "a"}})
	require.True(t, ctrl.SelectHistory("1"))

	m.Update(key(tea.KeyCtrlN))

	assert.Equal(t, controller.StateIdle, ctrl.Snapshot().State)
}

func TestDashboard_Logout(t *testing.T) {
	m, _, _, s := setupDashboard(t, []model.HistoryEntry{})

	_, cmd := m.Update(key(tea.KeyCtrlL))

	require.NotNil(t, cmd)
	assert.Equal(t, ExitLoggedOut, m.Exit())
	assert.Empty(t, s.Token(context.Background()))
}

func TestDashboard_SignedOutByServer(t *testing.T) {
	m, ctrl, _, _ := setupDashboard(t, []model.HistoryEntry{})
	require.True(t, m.snap.Mounted)

	snap := ctrl.Snapshot()
	snap.Mounted = false
	_, cmd := m.Update(snapshotMsg(snap))

	require.NotNil(t, cmd)
	assert.Equal(t, ExitSignedOut, m.Exit())
}

func TestDashboard_ViewStates(t *testing.T) {
	m, _, _, _ := setupDashboard(t, []model.HistoryEntry{{ID: "1", Prompt: "What is the meaning of life, the universe and everything?", Response: "42"}})

	assert.Contains(t, m.View(), "Ask a question to get started.")
	assert.Contains(t, m.View(), "What is the meaning of life, t...")

	m.Update(snapshotMsg(controller.Snapshot{Mounted: true, State: controller.StateLoading, Query: "hello"}))
	assert.Contains(t, m.View(), "Thinking...")

	m.Update(snapshotMsg(controller.Snapshot{Mounted: true, State: controller.StateError, Query: "hello", Error: controller.MessageUnreachable}))
	assert.Contains(t, m.View(), controller.MessageUnreachable)
}
