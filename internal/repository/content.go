package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bazil852/aiinfluencerbackend/internal/domain"
)

const contentColumns = `id, influencer_id, title, script, status, video_id, video_url, error, created_at, updated_at`

type ContentRepository struct {
	pool PgxPool
}

func NewContentRepository(pool PgxPool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

func (r *ContentRepository) Create(ctx context.Context, content *domain.Content) error {
	query := `
		INSERT INTO contents (id, influencer_id, title, script, status, video_id, video_url, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	if content.ID == uuid.Nil {
		content.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		content.ID,
		content.InfluencerID,
		content.Title,
		content.Script,
		content.Status,
		content.VideoID,
		content.VideoURL,
		content.Error,
	).Scan(&content.CreatedAt, &content.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create content: %w", err)
	}

	return nil
}

func (r *ContentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE id = $1`

	content, err := scanContent(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get content by id: %w", err)
	}

	return content, nil
}

// GetByVideoID correlates a provider completion callback to its stored job.
func (r *ContentRepository) GetByVideoID(ctx context.Context, videoID string) (*domain.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE video_id = $1`

	content, err := scanContent(r.pool.QueryRow(ctx, query, videoID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get content by video id: %w", err)
	}

	return content, nil
}

func (r *ContentRepository) MarkCompleted(ctx context.Context, id uuid.UUID, videoURL string) error {
	query := `
		UPDATE contents
		SET status = $1, video_url = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := r.pool.Exec(ctx, query, domain.ContentStatusCompleted, videoURL, id)
	if err != nil {
		return fmt.Errorf("mark content completed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}

	return nil
}

func (r *ContentRepository) ListByInfluencer(ctx context.Context, influencerID uuid.UUID) ([]*domain.Content, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM contents
		WHERE influencer_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, influencerID)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	defer rows.Close()

	var contents []*domain.Content
	for rows.Next() {
		content, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		contents = append(contents, content)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contents: %w", err)
	}

	return contents, nil
}

func scanContent(row pgx.Row) (*domain.Content, error) {
	var content domain.Content
	err := row.Scan(
		&content.ID,
		&content.InfluencerID,
		&content.Title,
		&content.Script,
		&content.Status,
		&content.VideoID,
		&content.VideoURL,
		&content.Error,
		&content.CreatedAt,
		&content.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &content, nil
}
