package provider

import "context"

// GenerateRequest carries everything needed to render one video.
type GenerateRequest struct {
	// TemplateID selects the influencer's avatar template on the provider side.
	TemplateID string
	Title      string
	Script     string
	// APIKey is the owning user's provider credential.
	APIKey string
}

// VideoProvider is the outbound video-generation API. Generate returns once
// the provider has accepted the job; the rendered video arrives later through
// an inbound completion callback carrying the same video id.
type VideoProvider interface {
	Generate(ctx context.Context, req GenerateRequest) (videoID string, err error)
}
