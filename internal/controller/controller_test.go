package controller

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"askai/client/internal/backend"
	"askai/client/internal/backend/mocks"
	app_errors "askai/client/internal/errors"
	"askai/client/internal/model"
	"askai/client/internal/navigation"
	"askai/client/internal/repository"
	"askai/client/internal/session"
)

type fixture struct {
	ctrl    *Controller
	backend *mocks.MockClient
	session *session.Session
	nav     *navigation.Recorder
}

func setup(t *testing.T, token string) *fixture {
	t.Helper()
	b := mocks.NewMockClient(t)
	s := session.New(repository.NewMemoryRepository(), "view-1")
	if token != "" {
		require.NoError(t, s.Set(context.Background(), token))
	}
	rec := navigation.NewRecorder()
	ctrl := New(b, session.NewGuard(s, rec, nil))
	t.Cleanup(ctrl.Close)
	return &fixture{ctrl: ctrl, backend: b, session: s, nav: rec}
}

func answer(text string) *model.AskResponse {
	return &model.AskResponse{Response: text}
}

func blockUntil(ch <-chan struct{}) func(mock.Arguments) {
	return func(mock.Arguments) { <-ch }
}

func TestController_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty input is a no-op", func(t *testing.T) {
		f := setup(t, "tok-1")

		assert.False(t, f.ctrl.Submit(ctx, ""))
		assert.False(t, f.ctrl.Submit(ctx, "   \t\n"))

		f.ctrl.Wait()
		snap := f.ctrl.Snapshot()
		assert.Equal(t, StateIdle, snap.State)
		assert.Nil(t, snap.Exchange)
		f.backend.AssertNotCalled(t, "Ask", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Hello resolves to Success and refreshes history", func(t *testing.T) {
		f := setup(t, "tok-1")
		release := make(chan struct{})
		f.backend.On("History", mock.Anything, "tok-1").Return([]model.HistoryEntry{}, nil).Once()
		f.backend.On("Ask", mock.Anything, "tok-1", "hello").Run(blockUntil(release)).Return(answer("hi there"), nil).Once()
		f.backend.On("History", mock.Anything, "tok-1").
			Return([]model.HistoryEntry{{ID: "1", Prompt: "hello", Response: "hi there"}}, nil).Once()

		require.True(t, f.ctrl.Mount(ctx))
		f.ctrl.Wait()

		require.True(t, f.ctrl.Submit(ctx, "  hello  "))
		snap := f.ctrl.Snapshot()
		assert.Equal(t, StateLoading, snap.State)
		assert.Equal(t, "hello", snap.Query)
		require.NotNil(t, snap.Exchange)
		assert.Empty(t, snap.Exchange.Response)

		close(release)
		f.ctrl.Wait()

		snap = f.ctrl.Snapshot()
		assert.Equal(t, StateSuccess, snap.State)
		require.NotNil(t, snap.Exchange)
		assert.Equal(t, "hello", snap.Exchange.Query)
		assert.Equal(t, "hi there", snap.Exchange.Response)
		assert.Empty(t, snap.Error)
		require.Len(t, snap.History, 1)
		assert.Equal(t, "hello...", snap.History[0].Label)
		f.backend.AssertNumberOfCalls(t, "History", 2)
	})

	t.Run("No credential redirects without calling the service", func(t *testing.T) {
		f := setup(t, "")

		assert.False(t, f.ctrl.Submit(ctx, "hello"))

		route, ok := f.nav.Take()
		require.True(t, ok)
		assert.Equal(t, navigation.Login(), route)
		f.backend.AssertNotCalled(t, "Ask", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestController_Supersession(t *testing.T) {
	ctx := context.Background()

	t.Run("Newer answer first", func(t *testing.T) {
		f := setup(t, "tok-1")
		release1 := make(chan struct{})
		release2 := make(chan struct{})
		historyFetched := make(chan struct{}, 2)
		f.backend.On("Ask", mock.Anything, "tok-1", "q1").Run(blockUntil(release1)).Return(answer("R1"), nil).Once()
		f.backend.On("Ask", mock.Anything, "tok-1", "q2").Run(blockUntil(release2)).Return(answer("R2"), nil).Once()
		f.backend.On("History", mock.Anything, "tok-1").Run(func(mock.Arguments) { historyFetched <- struct{}{} }).
			Return([]model.HistoryEntry{{ID: "2", Prompt: "q2", Response: "R2"}}, nil).Once()
		f.backend.On("History", mock.Anything, "tok-1").
			Return([]model.HistoryEntry{{ID: "2", Prompt: "q2", Response: "R2"}, {ID: "1", Prompt: "q1", Response: "R1"}}, nil).Once()

		require.True(t, f.ctrl.Submit(ctx, "q1"))
		require.True(t, f.ctrl.Submit(ctx, "q2"))

		close(release2)
		require.Eventually(t, func() bool {
			snap := f.ctrl.Snapshot()
			return snap.State == StateSuccess && snap.Exchange != nil && snap.Exchange.Response == "R2"
		}, time.Second, 5*time.Millisecond)
		<-historyFetched
		require.Eventually(t, func() bool { return len(f.ctrl.Snapshot().History) == 1 }, time.Second, 5*time.Millisecond)

		close(release1)
		f.ctrl.Wait()

		snap := f.ctrl.Snapshot()
		assert.Equal(t, StateSuccess, snap.State)
		assert.Equal(t, "q2", snap.Query)
		require.NotNil(t, snap.Exchange)
		assert.Equal(t, "R2", snap.Exchange.Response)
		// The older answer is not shown, but history picks it up.
		require.Len(t, snap.History, 2)
		assert.Equal(t, "q1", snap.History[1].Prompt)
		f.backend.AssertNumberOfCalls(t, "History", 2)
	})

	t.Run("Older answer first", func(t *testing.T) {
		f := setup(t, "tok-1")
		release1 := make(chan struct{})
		release2 := make(chan struct{})
		f.backend.On("Ask", mock.Anything, "tok-1", "q1").Run(blockUntil(release1)).Return(answer("R1"), nil).Once()
		f.backend.On("Ask", mock.Anything, "tok-1", "q2").Run(blockUntil(release2)).Return(answer("R2"), nil).Once()
		historyFetched := make(chan struct{}, 2)
		f.backend.On("History", mock.Anything, "tok-1").Run(func(mock.Arguments) { historyFetched <- struct{}{} }).
			Return([]model.HistoryEntry{}, nil)

		require.True(t, f.ctrl.Submit(ctx, "q1"))
		require.True(t, f.ctrl.Submit(ctx, "q2"))

		close(release1)
		<-historyFetched
		snap := f.ctrl.Snapshot()
		assert.Equal(t, StateLoading, snap.State)
		assert.Equal(t, "q2", snap.Query)
		assert.Empty(t, snap.Exchange.Response)

		close(release2)
		f.ctrl.Wait()

		snap = f.ctrl.Snapshot()
		assert.Equal(t, StateSuccess, snap.State)
		assert.Equal(t, "R2", snap.Exchange.Response)
		f.backend.AssertNumberOfCalls(t, "History", 2)
	})

	t.Run("Wait while queries are submitted", func(t *testing.T) {
		f := setup(t, "tok-1")
		f.backend.On("Ask", mock.Anything, "tok-1", "q").Return(answer("R"), nil)
		f.backend.On("History", mock.Anything, "tok-1").Return([]model.HistoryEntry{}, nil)

		stop := make(chan struct{})
		var waiters sync.WaitGroup
		for i := 0; i < 4; i++ {
			waiters.Add(1)
			go func() {
				defer waiters.Done()
				for {
					select {
					case <-stop:
						return
					default:
						f.ctrl.Wait()
					}
				}
			}()
		}

		for i := 0; i < 200; i++ {
			require.True(t, f.ctrl.Submit(ctx, "q"))
		}
		close(stop)
		waiters.Wait()
		f.ctrl.Wait()

		select {
		case <-f.ctrl.Settled():
		default:
			t.Fatal("controller still has outstanding work after Wait")
		}
		assert.Equal(t, StateSuccess, f.ctrl.Snapshot().State)
	})

	t.Run("Superseded failure is not shown", func(t *testing.T) {
		f := setup(t, "tok-1")
		release1 := make(chan struct{})
		f.backend.On("Ask", mock.Anything, "tok-1", "q1").Run(blockUntil(release1)).
			Return(nil, fmt.Errorf("%w: dial", app_errors.ErrUnreachable)).Once()
		f.backend.On("Ask", mock.Anything, "tok-1", "q2").Return(answer("R2"), nil).Once()
		f.backend.On("History", mock.Anything, "tok-1").Return([]model.HistoryEntry{}, nil).Once()

		require.True(t, f.ctrl.Submit(ctx, "q1"))
		require.True(t, f.ctrl.Submit(ctx, "q2"))
		close(release1)
		f.ctrl.Wait()

		snap := f.ctrl.Snapshot()
		assert.Equal(t, StateSuccess, snap.State)
		assert.Empty(t, snap.Error)
	})

	t.Run("Superseded round trip is cancelled", func(t *testing.T) {
		f := setup(t, "tok-1")
		cancelled := make(chan struct{})
		f.backend.On("Ask", mock.Anything, "tok-1", "q1").Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
			close(cancelled)
		}).Return(nil, fmt.Errorf("%w: context canceled", app_errors.ErrUnreachable)).Once()
		f.backend.On("Ask", mock.Anything, "tok-1", "q2").Return(answer("R2"), nil).Once()
		f.backend.On("History", mock.Anything, "tok-1").Return([]model.HistoryEntry{}, nil).Once()

		require.True(t, f.ctrl.Submit(ctx, "q1"))
		require.True(t, f.ctrl.Submit(ctx, "q2"))

		select {
		case <-cancelled:
		case <-time.After(2 * time.Second):
			t.Fatal("superseded round trip was not cancelled")
		}
		f.ctrl.Wait()
		assert.Equal(t, "R2", f.ctrl.Snapshot().Exchange.Response)
	})
}

func TestController_Failures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"Unreachable", fmt.Errorf("%w: connection refused", app_errors.ErrUnreachable), MessageUnreachable},
		{"Backend detail shown verbatim", &backend.APIError{StatusCode: http.StatusInternalServerError, Detail: "Model overloaded"}, "Model overloaded"},
		{"Backend error without detail", &backend.APIError{StatusCode: http.StatusBadGateway}, MessageGeneric},
		{"Malformed body", fmt.Errorf("%w: unexpected token", app_errors.ErrMalformedResponse), MessageMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, "tok-1")
			f.backend.On("Ask", mock.Anything, "tok-1", "hello").Return(nil, tt.err).Once()

			require.True(t, f.ctrl.Submit(ctx, "hello"))
			f.ctrl.Wait()

			snap := f.ctrl.Snapshot()
			assert.Equal(t, StateError, snap.State)
			assert.Equal(t, tt.message, snap.Error)
			require.NotNil(t, snap.Exchange)
			assert.Empty(t, snap.Exchange.Response)
			f.backend.AssertNotCalled(t, "History", mock.Anything, mock.Anything)
		})
	}

	t.Run("Failed history refresh keeps Success", func(t *testing.T) {
		f := setup(t, "tok-1")
		previous := []model.HistoryEntry{{ID: "7", Prompt: "earlier", Response: "old"}}
		f.backend.On("History", mock.Anything, "tok-1").Return(previous, nil).Once()
		f.backend.On("Ask", mock.Anything, "tok-1", "hello").Return(answer("hi there"), nil).Once()
		f.backend.On("History", mock.Anything, "tok-1").Return(nil, fmt.Errorf("%w: reset", app_errors.ErrUnreachable)).Once()

		require.True(t, f.ctrl.Mount(ctx))
		f.ctrl.Wait()
		require.True(t, f.ctrl.Submit(ctx, "hello"))
		f.ctrl.Wait()

		snap := f.ctrl.Snapshot()
		assert.Equal(t, StateSuccess, snap.State)
		assert.Empty(t, snap.Error)
		require.Len(t, snap.History, 1)
		assert.Equal(t, "7", snap.History[0].ID)
	})
}

func TestController_Unauthorized(t *testing.T) {
	ctx := context.Background()
	unauthorized := &backend.APIError{StatusCode: http.StatusUnauthorized, Detail: "Could not validate credentials"}

	t.Run("Concurrent 401s clear and redirect once", func(t *testing.T) {
		f := setup(t, "tok-1")
		release1 := make(chan struct{})
		f.backend.On("History", mock.Anything, "tok-1").Return([]model.HistoryEntry{}, nil).Once()
		f.backend.On("Ask", mock.Anything, "tok-1", "q1").Run(blockUntil(release1)).Return(nil, unauthorized).Once()
		f.backend.On("Ask", mock.Anything, "tok-1", "q2").Return(nil, unauthorized).Once()

		require.True(t, f.ctrl.Mount(ctx))
		require.True(t, f.ctrl.Submit(ctx, "q1"))
		require.True(t, f.ctrl.Submit(ctx, "q2"))
		close(release1)
		f.ctrl.Wait()

		assert.Empty(t, f.session.Token(ctx))
		assert.Equal(t, 1, f.nav.Count())
		route, _ := f.nav.Take()
		assert.Equal(t, navigation.LoginPath, route.Path)

		snap := f.ctrl.Snapshot()
		assert.False(t, snap.Mounted)
		assert.Equal(t, StateIdle, snap.State)
		assert.Empty(t, snap.Error)
	})

	t.Run("401 on history fetch redirects", func(t *testing.T) {
		f := setup(t, "tok-1")
		f.backend.On("History", mock.Anything, "tok-1").Return(nil, unauthorized).Once()

		require.True(t, f.ctrl.Mount(ctx))
		f.ctrl.Wait()

		assert.Empty(t, f.session.Token(ctx))
		assert.Equal(t, 1, f.nav.Count())
	})

	t.Run("401 for a replaced credential keeps the new login", func(t *testing.T) {
		f := setup(t, "tok-1")
		release := make(chan struct{})
		f.backend.On("Ask", mock.Anything, "tok-1", "hello").Run(blockUntil(release)).Return(nil, unauthorized).Once()

		require.True(t, f.ctrl.Submit(ctx, "hello"))
		require.NoError(t, f.session.Set(ctx, "tok-2"))
		close(release)
		f.ctrl.Wait()

		assert.Equal(t, "tok-2", f.session.Token(ctx))
		assert.Equal(t, 0, f.nav.Count())
		assert.Equal(t, StateError, f.ctrl.Snapshot().State)
	})
}

func TestController_ObserveExternal(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "tok-1")
	f.backend.On("Ask", mock.Anything, "tok-1", "q1").Return(answer("R1"), nil).Once()
	f.backend.On("Ask", mock.Anything, "tok-1", "q2").Return(answer("R2"), nil).Once()
	f.backend.On("History", mock.Anything, "tok-1").Return([]model.HistoryEntry{}, nil)

	assert.False(t, f.ctrl.ObserveExternal(ctx, ""))
	assert.True(t, f.ctrl.ObserveExternal(ctx, "q1"))
	f.ctrl.Wait()
	assert.False(t, f.ctrl.ObserveExternal(ctx, "q1"))
	assert.False(t, f.ctrl.ObserveExternal(ctx, "q1"))

	assert.True(t, f.ctrl.ObserveExternal(ctx, "q2"))
	f.ctrl.Wait()

	f.backend.AssertNumberOfCalls(t, "Ask", 2)
	assert.Equal(t, "R2", f.ctrl.Snapshot().Exchange.Response)
}

func TestController_Mount(t *testing.T) {
	ctx := context.Background()

	t.Run("Without credential redirects", func(t *testing.T) {
		f := setup(t, "")

		assert.False(t, f.ctrl.Mount(ctx))
		assert.False(t, f.ctrl.Snapshot().Mounted)
		route, ok := f.nav.Take()
		require.True(t, ok)
		assert.Equal(t, navigation.Login(), route)
	})

	t.Run("Fetches history once per mount", func(t *testing.T) {
		f := setup(t, "tok-1")
		entries := []model.HistoryEntry{{ID: "1", Prompt: "What is the meaning of life, the universe and everything?", Response: "42"}}
		f.backend.On("History", mock.Anything, "tok-1").Return(entries, nil).Once()

		require.True(t, f.ctrl.Mount(ctx))
		require.True(t, f.ctrl.Mount(ctx))
		f.ctrl.Wait()

		snap := f.ctrl.Snapshot()
		assert.True(t, snap.Mounted)
		assert.Equal(t, StateIdle, snap.State)
		require.Len(t, snap.History, 1)
		assert.Equal(t, "What is the meaning of life, t...", snap.History[0].Label)
	})
}

func TestController_SelectHistory(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "tok-1")
	release := make(chan struct{})
	f.backend.On("History", mock.Anything, "tok-1").
		Return([]model.HistoryEntry{{ID: "3", Prompt: "capital of France", Response: "Paris"}}, nil)
	f.backend.On("Ask", mock.Anything, "tok-1", "slow").Run(blockUntil(release)).Return(answer("late"), nil).Once()

	require.True(t, f.ctrl.Mount(ctx))
	f.ctrl.Wait()

	assert.False(t, f.ctrl.SelectHistory("missing"))

	require.True(t, f.ctrl.Submit(ctx, "slow"))
	require.True(t, f.ctrl.SelectHistory("3"))
	close(release)
	f.ctrl.Wait()

	snap := f.ctrl.Snapshot()
	assert.Equal(t, StateSuccess, snap.State)
	assert.Equal(t, "capital of France", snap.Query)
	require.NotNil(t, snap.Exchange)
	assert.Equal(t, "Paris", snap.Exchange.Response)
	// Mount, then the refresh after the hidden "slow" answer.
	f.backend.AssertNumberOfCalls(t, "History", 2)
}

func TestController_NewChat(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "tok-1")
	release := make(chan struct{})
	history := []model.HistoryEntry{{ID: "1", Prompt: "hello", Response: "hi there"}}
	f.backend.On("History", mock.Anything, "tok-1").Return(history, nil)
	f.backend.On("Ask", mock.Anything, "tok-1", "pending").Run(blockUntil(release)).Return(answer("late"), nil).Once()

	require.True(t, f.ctrl.Mount(ctx))
	require.True(t, f.ctrl.Submit(ctx, "pending"))
	f.ctrl.NewChat()
	close(release)
	f.ctrl.Wait()

	snap := f.ctrl.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Empty(t, snap.Query)
	assert.Nil(t, snap.Exchange)
	assert.Len(t, snap.History, 1)
	f.backend.AssertNumberOfCalls(t, "History", 2)
}

func TestController_Logout(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "tok-1")
	release := make(chan struct{})
	f.backend.On("History", mock.Anything, "tok-1").Return([]model.HistoryEntry{}, nil).Once()
	f.backend.On("Ask", mock.Anything, "tok-1", "hello").Run(blockUntil(release)).Return(answer("late"), nil).Once()

	require.True(t, f.ctrl.Mount(ctx))
	require.True(t, f.ctrl.Submit(ctx, "hello"))

	require.NoError(t, f.ctrl.Logout(ctx))
	route, ok := f.nav.Take()
	require.True(t, ok)
	assert.Equal(t, navigation.LoginPath, route.Path)
	assert.Empty(t, f.session.Token(ctx))

	close(release)
	f.ctrl.Wait()

	snap := f.ctrl.Snapshot()
	assert.False(t, snap.Mounted)
	assert.Equal(t, StateIdle, snap.State)
	assert.Nil(t, snap.Exchange)
}

func TestController_Subscribe(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "tok-1")
	f.backend.On("Ask", mock.Anything, "tok-1", "hello").Return(answer("hi there"), nil).Once()
	f.backend.On("History", mock.Anything, "tok-1").Return([]model.HistoryEntry{}, nil).Once()

	updates, unsubscribe := f.ctrl.Subscribe()
	require.True(t, f.ctrl.Submit(ctx, "hello"))
	f.ctrl.Wait()

	// Only the latest snapshot is buffered.
	select {
	case snap := <-updates:
		assert.Equal(t, StateSuccess, snap.State)
		assert.Equal(t, "hi there", snap.Exchange.Response)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}

	unsubscribe()
	_, open := <-updates
	assert.False(t, open)
}

func TestState_Text(t *testing.T) {
	for _, s := range []State{StateIdle, StateLoading, StateSuccess, StateError} {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var back State
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}
	assert.Equal(t, "loading", StateLoading.String())
	assert.Error(t, new(State).UnmarshalText([]byte("done")))
}

func TestController_MountWithNewCredential(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "tok-1")
	f.backend.On("History", mock.Anything, "tok-1").
		Return([]model.HistoryEntry{{ID: "1", Prompt: "mine", Response: "a"}}, nil).Once()
	f.backend.On("History", mock.Anything, "tok-2").Return([]model.HistoryEntry{}, nil).Once()

	require.True(t, f.ctrl.Mount(ctx))
	f.ctrl.Wait()
	require.Len(t, f.ctrl.Snapshot().History, 1)

	require.NoError(t, f.session.Set(ctx, "tok-2"))
	require.True(t, f.ctrl.Mount(ctx))
	f.ctrl.Wait()

	assert.Empty(t, f.ctrl.Snapshot().History)
}
