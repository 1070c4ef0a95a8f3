package session

import (
	"context"
	"log/slog"
	"sync"

	"askai/client/internal/metrics"
	"askai/client/internal/navigation"
)

// Guard gates the dashboard on the session credential. Failing the guard is a
// silent redirect to the login view, never an error.
type Guard struct {
	session *Session
	nav     navigation.Navigator
	metrics *metrics.Metrics

	mu sync.Mutex
}

func NewGuard(s *Session, nav navigation.Navigator, m *metrics.Metrics) *Guard {
	return &Guard{session: s, nav: nav, metrics: m}
}

// Session returns the session the guard reads.
func (g *Guard) Session() *Session { return g.session }

// Enter runs on every dashboard entry. It returns the credential when one is
// present; otherwise it redirects to login and returns false.
func (g *Guard) Enter(ctx context.Context) (string, bool) {
	return g.Authorize(ctx)
}

// Authorize reads the credential before an outbound call. An absent credential
// redirects exactly like a failed Enter.
func (g *Guard) Authorize(ctx context.Context) (string, bool) {
	token := g.session.Token(ctx)
	if token != "" {
		return token, true
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.redirectLocked()
	return "", false
}

// Invalidate handles an unauthorized answer for a call made with token: the
// credential is cleared and the view sent to login. Only the first report for
// a credential clears it, so concurrent 401s redirect once, and a token that
// has since been replaced by a new login is ignored. It reports whether a
// redirect happened.
func (g *Guard) Invalidate(ctx context.Context, token string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	cleared, err := g.session.ClearIf(ctx, token)
	if err != nil {
		slog.Error("Failed to clear rejected session credential", "session", g.session.Key(), "error", err)
		cleared = true
	}
	if !cleared {
		return false
	}
	slog.Info("Session credential rejected by AI service, redirecting to login", "session", g.session.Key())
	g.redirectLocked()
	return true
}

// Logout clears the credential and redirects without waiting for any call.
func (g *Guard) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	err := g.session.Clear(ctx)
	g.redirectLocked()
	return err
}

func (g *Guard) redirectLocked() {
	route := navigation.Login()
	g.metrics.RecordRedirect(route.Path)
	g.nav.Navigate(route)
}
