package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"askai/client/internal/backend"
	app_errors "askai/client/internal/errors"
	"askai/client/internal/model"
	"askai/client/internal/navigation"
	"askai/client/internal/session"
)

// Messages shown by the login and signup forms.
const (
	MessageLoginSuccess  = "Login successful!"
	MessageLoginFailed   = "Invalid email or password"
	MessageSignupSuccess = "Signup successful!"
	MessageSignupFailed  = "Signup failed."
	MessageServerDown    = "Error connecting to server."
)

// AuthResult is what the login and signup forms display.
type AuthResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type AuthService struct {
	backend backend.Client
}

func NewAuthService(b backend.Client) *AuthService {
	return &AuthService{backend: b}
}

// Login exchanges credentials for a session credential. On success the
// credential is stored in sess and nav is sent to the dashboard. A rejected
// login is not an error; it is reported through the result message.
func (s *AuthService) Login(ctx context.Context, sess *session.Session, nav navigation.Navigator, creds model.Credentials) (*AuthResult, error) {
	creds, err := normalize(creds)
	if err != nil {
		return nil, err
	}

	resp, err := s.backend.Login(ctx, creds)
	if err != nil {
		slog.Info("Login rejected", "session", sess.Key(), "error", err)
		return &AuthResult{Message: failureMessage(err, MessageLoginFailed)}, nil
	}

	if err := sess.Set(ctx, resp.AccessToken); err != nil {
		return nil, fmt.Errorf("%w: could not store session credential: %v", app_errors.ErrInternal, err)
	}
	slog.Info("Login succeeded", "session", sess.Key())
	nav.Navigate(navigation.Dashboard(""))
	return &AuthResult{Success: true, Message: MessageLoginSuccess}, nil
}

// Signup registers a new account. It never signs the user in.
func (s *AuthService) Signup(ctx context.Context, creds model.Credentials) (*AuthResult, error) {
	creds, err := normalize(creds)
	if err != nil {
		return nil, err
	}

	if err := s.backend.Signup(ctx, creds); err != nil {
		slog.Info("Signup rejected", "error", err)
		return &AuthResult{Message: failureMessage(err, MessageSignupFailed)}, nil
	}
	return &AuthResult{Success: true, Message: MessageSignupSuccess}, nil
}

func normalize(creds model.Credentials) (model.Credentials, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return creds, fmt.Errorf("%w: email and password are required", app_errors.ErrValidation)
	}
	return creds, nil
}

func failureMessage(err error, fallback string) string {
	if errors.Is(err, app_errors.ErrUnreachable) {
		return MessageServerDown
	}
	if detail := backend.DetailOf(err); detail != "" {
		return detail
	}
	return fallback
}
