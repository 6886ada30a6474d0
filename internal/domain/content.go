package domain

import (
	"time"

	"github.com/google/uuid"
)

// Content statuses
const (
	ContentStatusGenerating = "generating"
	ContentStatusCompleted  = "completed"
	ContentStatusFailed     = "failed"
)

// Content is one generation job: created when an inbound trigger fires,
// completed (or failed) when the provider calls back.
type Content struct {
	ID           uuid.UUID `json:"id"`
	InfluencerID uuid.UUID `json:"influencer_id"`
	Title        string    `json:"title"`
	Script       string    `json:"script"`
	Status       string    `json:"status"`
	VideoID      *string   `json:"video_id,omitempty"`
	VideoURL     *string   `json:"video_url,omitempty"`
	Error        *string   `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsTerminal reports whether the job can no longer change state.
func (c *Content) IsTerminal() bool {
	return c.Status == ContentStatusCompleted || c.Status == ContentStatusFailed
}
