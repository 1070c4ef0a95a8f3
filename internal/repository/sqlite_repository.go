package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) CredentialRepository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) GetCredential(ctx context.Context, key string) (string, error) {
	query := "SELECT token FROM credentials WHERE key = ?"
	var token string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("could not read credential: %w", err)
	}
	return token, nil
}

func (r *sqliteRepository) SaveCredential(ctx context.Context, key, token string) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO credentials (key, token, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, key, token, now, now); err != nil {
		return fmt.Errorf("could not save credential: %w", err)
	}
	return nil
}

func (r *sqliteRepository) DeleteCredential(ctx context.Context, key string) error {
	query := "DELETE FROM credentials WHERE key = ?"
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("could not delete credential: %w", err)
	}
	return nil
}
