package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a billing account. Plan fields are nullable: a user with no
// current plan is on the free tier.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	CurrentPlan    *uuid.UUID `json:"current_plan,omitempty"`
	PriceID        *string    `json:"price_id,omitempty"`
	SubscriptionID *string    `json:"subscription_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Plan maps a Stripe price to a subscription tier.
type Plan struct {
	ID           uuid.UUID `json:"id"`
	PlanName     string    `json:"plan_name"`
	PriceID      string    `json:"price_id"`
	MonthlyPrice float64   `json:"monthly_price"`
}
