package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bazil852/aiinfluencerbackend/internal/domain"
)

type AccountRepository struct {
	pool PgxPool
}

func NewAccountRepository(pool PgxPool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, current_plan, price_id, subscription_id, created_at
		FROM users
		WHERE email = $1
	`

	var user domain.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.CurrentPlan,
		&user.PriceID,
		&user.SubscriptionID,
		&user.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

// SetPlan stores the subscription state a billing event resolved to. All three
// fields nil resets the user to the free tier.
func (r *AccountRepository) SetPlan(ctx context.Context, email string, plan *domain.Plan, priceID, subscriptionID *string) error {
	query := `
		UPDATE users
		SET current_plan = $1, price_id = $2, subscription_id = $3
		WHERE email = $4
	`

	var planID any
	if plan != nil {
		planID = plan.ID
	}

	tag, err := r.pool.Exec(ctx, query, planID, priceID, subscriptionID, email)
	if err != nil {
		return fmt.Errorf("set user plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (r *AccountRepository) GetPlanByPriceID(ctx context.Context, priceID string) (*domain.Plan, error) {
	query := `
		SELECT id, plan_name, price_id, monthly_price
		FROM plans
		WHERE price_id = $1
	`

	var plan domain.Plan
	err := r.pool.QueryRow(ctx, query, priceID).Scan(
		&plan.ID,
		&plan.PlanName,
		&plan.PriceID,
		&plan.MonthlyPrice,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get plan by price id: %w", err)
	}

	return &plan, nil
}
