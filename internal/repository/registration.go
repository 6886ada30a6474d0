package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bazil852/aiinfluencerbackend/internal/domain"
)

const registrationColumns = `id, user_id, influencer_id, name, url, event, kind, secret, active, last_triggered_at, created_at`

type RegistrationRepository struct {
	pool PgxPool
}

func NewRegistrationRepository(pool PgxPool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO webhooks (id, user_id, influencer_id, name, url, event, kind, secret, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)
		RETURNING created_at
	`

	if reg.ID == uuid.Nil {
		reg.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		reg.ID,
		reg.UserID,
		reg.InfluencerID,
		reg.Name,
		reg.URL,
		reg.Event,
		reg.Kind,
		reg.Secret,
		reg.Active,
	).Scan(&reg.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRegistrationExists
		}
		return fmt.Errorf("create registration: %w", err)
	}

	return nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM webhooks WHERE id = $1`

	reg, err := scanRegistration(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get registration by id: %w", err)
	}

	return reg, nil
}

// ListActiveByKind returns every active registration of the given kind. The
// registry reconciles from this set; fan-out filters further by influencer.
func (r *RegistrationRepository) ListActiveByKind(ctx context.Context, kind string) ([]*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM webhooks
		WHERE kind = $1 AND active = true
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("list registrations by kind: %w", err)
	}
	defer rows.Close()

	return collectRegistrations(rows)
}

// ListActiveSubscribers returns the active automation-subscriber registrations
// for one influencer, i.e. the fan-out delivery targets.
func (r *RegistrationRepository) ListActiveSubscribers(ctx context.Context, influencerID uuid.UUID) ([]*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM webhooks
		WHERE influencer_id = $1 AND kind = $2 AND active = true
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, influencerID, domain.KindAutomationSubscriber)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	return collectRegistrations(rows)
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM webhooks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations by user: %w", err)
	}
	defer rows.Close()

	return collectRegistrations(rows)
}

func (r *RegistrationRepository) Update(ctx context.Context, reg *domain.Registration) error {
	query := `
		UPDATE webhooks
		SET name = $1, url = $2, event = $3, active = $4
		WHERE id = $5
	`

	tag, err := r.pool.Exec(ctx, query, reg.Name, reg.URL, reg.Event, reg.Active, reg.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRegistrationExists
		}
		return fmt.Errorf("update registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRegistrationNotFound
	}

	return nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM webhooks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRegistrationNotFound
	}

	return nil
}

func (r *RegistrationRepository) UpdateLastTriggered(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE webhooks SET last_triggered_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("update last triggered: %w", err)
	}
	return nil
}

func scanRegistration(row pgx.Row) (*domain.Registration, error) {
	var reg domain.Registration
	var secret *string

	err := row.Scan(
		&reg.ID,
		&reg.UserID,
		&reg.InfluencerID,
		&reg.Name,
		&reg.URL,
		&reg.Event,
		&reg.Kind,
		&secret,
		&reg.Active,
		&reg.LastTriggeredAt,
		&reg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if secret != nil {
		reg.Secret = *secret
	}

	return &reg, nil
}

func collectRegistrations(rows pgx.Rows) ([]*domain.Registration, error) {
	var regs []*domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", err)
	}
	return regs, nil
}
