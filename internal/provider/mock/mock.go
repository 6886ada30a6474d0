package mock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"

	"github.com/bazil852/aiinfluencerbackend/internal/provider"
)

// Provider implements provider.VideoProvider for tests and development. Video
// ids are deterministic over (template, title, script) so repeated runs
// correlate, and every accepted request is recorded.
type Provider struct {
	mu       sync.Mutex
	requests []provider.GenerateRequest

	// FailWith, when set, is returned from every Generate call.
	FailWith error
}

func New() *Provider {
	return &Provider{}
}

func (p *Provider) Generate(ctx context.Context, req provider.GenerateRequest) (string, error) {
	if p.FailWith != nil {
		return "", p.FailWith
	}
	if req.APIKey == "" {
		return "", errors.New("mock provider: missing api key")
	}
	if req.TemplateID == "" {
		return "", errors.New("mock provider: missing template id")
	}

	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()

	sum := sha256.Sum256([]byte(req.TemplateID + "\x00" + req.Title + "\x00" + req.Script))
	return "mock_" + hex.EncodeToString(sum[:8]), nil
}

// Requests returns a copy of every request Generate accepted.
func (p *Provider) Requests() []provider.GenerateRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]provider.GenerateRequest, len(p.requests))
	copy(out, p.requests)
	return out
}
