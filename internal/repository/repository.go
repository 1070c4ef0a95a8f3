package repository

import "context"

// CredentialRepository stores session credentials keyed by the view that owns
// them (a browser view id, or a fixed key for the terminal client).
// This interface makes it easy to switch storage implementations.
type CredentialRepository interface {
	// GetCredential returns ErrNotFound when no credential is stored for key.
	GetCredential(ctx context.Context, key string) (string, error)
	SaveCredential(ctx context.Context, key, token string) error
	// DeleteCredential is a no-op when nothing is stored for key.
	DeleteCredential(ctx context.Context, key string) error
}
