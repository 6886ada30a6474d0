package domain

import (
	"time"

	"github.com/google/uuid"
)

// Influencer is the tenant-owned profile videos are generated for. TemplateID
// selects the provider template used for every generation on this profile.
type Influencer struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	TemplateID string    `json:"template_id"`
	CreatedAt  time.Time `json:"created_at"`
}
