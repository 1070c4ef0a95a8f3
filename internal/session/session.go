// Package session holds the session credential of one client view and the
// guard that gates the dashboard on it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"askai/client/internal/repository"
)

// Session is the explicit credential state of one view: created at login,
// read before every authenticated call, cleared by logout or a 401.
type Session struct {
	store repository.CredentialRepository
	key   string
	mu    sync.Mutex
}

func New(store repository.CredentialRepository, key string) *Session {
	return &Session{store: store, key: key}
}

// Key identifies the view owning this session.
func (s *Session) Key() string { return s.key }

// Token returns the stored credential, or "" when none is stored. A store
// failure is reported as absence: the user is sent to log in again.
func (s *Session) Token(ctx context.Context) string {
	token, err := s.store.GetCredential(ctx, s.key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Warn("Failed to read session credential, treating as signed out", "session", s.key, "error", err)
		}
		return ""
	}
	return token
}

// Set stores a freshly issued credential.
func (s *Session) Set(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("refusing to store an empty credential")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.SaveCredential(ctx, s.key, token)
}

// Clear removes the credential unconditionally.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.DeleteCredential(ctx, s.key)
}

// ClearIf removes the credential only while it still equals token, so that a
// late 401 for a replaced credential cannot sign out a newer login. It reports
// whether the stored credential was token.
func (s *Session) ClearIf(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.GetCredential(ctx, s.key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if current != token {
		return false, nil
	}
	return true, s.store.DeleteCredential(ctx, s.key)
}
