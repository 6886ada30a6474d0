package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bazil852/aiinfluencerbackend/internal/domain"
)

type InfluencerRepository struct {
	pool PgxPool
}

func NewInfluencerRepository(pool PgxPool) *InfluencerRepository {
	return &InfluencerRepository{pool: pool}
}

func (r *InfluencerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Influencer, error) {
	query := `
		SELECT id, user_id, name, template_id, created_at
		FROM influencers
		WHERE id = $1
	`

	var inf domain.Influencer
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&inf.ID,
		&inf.UserID,
		&inf.Name,
		&inf.TemplateID,
		&inf.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInfluencerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get influencer by id: %w", err)
	}

	return &inf, nil
}

func (r *InfluencerRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Influencer, error) {
	query := `
		SELECT id, user_id, name, template_id, created_at
		FROM influencers
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list influencers: %w", err)
	}
	defer rows.Close()

	var infs []*domain.Influencer
	for rows.Next() {
		var inf domain.Influencer
		err := rows.Scan(&inf.ID, &inf.UserID, &inf.Name, &inf.TemplateID, &inf.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan influencer: %w", err)
		}
		infs = append(infs, &inf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate influencers: %w", err)
	}

	return infs, nil
}
