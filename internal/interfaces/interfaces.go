package interfaces

import (
	"context"

	"askai/client/internal/model"
	"askai/client/internal/navigation"
	"askai/client/internal/service"
	"askai/client/internal/session"
)

// This file defines the service contracts consumed by the API layer and the
// terminal client. Handlers depend on these rather than on concrete services.

// AuthService defines the contract for login and signup.
type AuthService interface {
	Login(ctx context.Context, sess *session.Session, nav navigation.Navigator, creds model.Credentials) (*service.AuthResult, error)
	Signup(ctx context.Context, creds model.Credentials) (*service.AuthResult, error)
}

// LandingService defines the contract for the pre-login query box.
type LandingService interface {
	Submit(nav navigation.Navigator, text string) bool
	Suggestions() []string
}

// ViewService defines the contract for the per-browser view registry.
type ViewService interface {
	Get(id string) *service.View
}
