package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bazil852/aiinfluencerbackend/internal/domain"
)

type CredentialRepository struct {
	pool PgxPool
}

func NewCredentialRepository(pool PgxPool) *CredentialRepository {
	return &CredentialRepository{pool: pool}
}

// GetHeyGenKey returns the provider API key for a user. Absence is a hard
// failure for any generation tied to that user.
func (r *CredentialRepository) GetHeyGenKey(ctx context.Context, userID uuid.UUID) (string, error) {
	query := `SELECT heygen_key FROM api_keys WHERE user_id = $1`

	var key string
	err := r.pool.QueryRow(ctx, query, userID).Scan(&key)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrAPIKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get heygen key: %w", err)
	}

	return key, nil
}

// SetHeyGenKey inserts or replaces a user's provider API key.
func (r *CredentialRepository) SetHeyGenKey(ctx context.Context, userID uuid.UUID, key string) error {
	query := `
		INSERT INTO api_keys (user_id, heygen_key)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET heygen_key = EXCLUDED.heygen_key
	`

	if _, err := r.pool.Exec(ctx, query, userID, key); err != nil {
		return fmt.Errorf("set heygen key: %w", err)
	}

	return nil
}
