package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bazil852/aiinfluencerbackend/internal/domain"
)

// RegistrationRepositoryInterface defines operations for webhook registrations
type RegistrationRepositoryInterface interface {
	Create(ctx context.Context, reg *domain.Registration) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error)
	ListActiveByKind(ctx context.Context, kind string) ([]*domain.Registration, error)
	ListActiveSubscribers(ctx context.Context, influencerID uuid.UUID) ([]*domain.Registration, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Registration, error)
	Update(ctx context.Context, reg *domain.Registration) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateLastTriggered(ctx context.Context, id uuid.UUID) error
}

// ContentRepositoryInterface defines operations for generation job records
type ContentRepositoryInterface interface {
	Create(ctx context.Context, content *domain.Content) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Content, error)
	GetByVideoID(ctx context.Context, videoID string) (*domain.Content, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, videoURL string) error
	ListByInfluencer(ctx context.Context, influencerID uuid.UUID) ([]*domain.Content, error)
}

// CredentialRepositoryInterface defines provider credential lookups
type CredentialRepositoryInterface interface {
	GetHeyGenKey(ctx context.Context, userID uuid.UUID) (string, error)
	SetHeyGenKey(ctx context.Context, userID uuid.UUID, key string) error
}

// InfluencerRepositoryInterface defines influencer profile lookups
type InfluencerRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Influencer, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Influencer, error)
}

// AccountRepositoryInterface defines billing account access
type AccountRepositoryInterface interface {
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	SetPlan(ctx context.Context, email string, plan *domain.Plan, priceID, subscriptionID *string) error
	GetPlanByPriceID(ctx context.Context, priceID string) (*domain.Plan, error)
}
