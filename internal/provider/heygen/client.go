package heygen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bazil852/aiinfluencerbackend/internal/provider"
)

// Config holds the configuration for the HeyGen client
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://api.heygen.com",
		Timeout: 30 * time.Second,
	}
}

// Client is the HTTP client for the HeyGen API. Template generation is a
// creation call, so it is never retried; the timeout is the only guard
// against a hanging provider.
type Client struct {
	httpClient *http.Client
	config     Config
}

var _ provider.VideoProvider = (*Client)(nil)

// NewClient creates a new HeyGen client
func NewClient(config Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// Generate calls POST /v2/template/{template_id}/generate and returns the
// provider's video id. A response without a video id is a failure.
func (c *Client) Generate(ctx context.Context, req provider.GenerateRequest) (string, error) {
	body := generateRequest{
		Test:      false,
		Caption:   false,
		Title:     req.Title,
		Variables: scriptVariables(req.Script),
	}

	var resp generateResponse
	path := fmt.Sprintf("/v2/template/%s/generate", req.TemplateID)
	if err := c.doRequest(ctx, http.MethodPost, path, req.APIKey, body, &resp); err != nil {
		return "", err
	}

	if resp.Error != nil {
		return "", fmt.Errorf("heygen rejected generation: %s: %s", resp.Error.Code, resp.Error.Message)
	}
	if resp.Data == nil || resp.Data.VideoID == "" {
		return "", ErrNoVideoID
	}

	return resp.Data.VideoID, nil
}

// VideoURL returns the provider-hosted location for a video id.
func (c *Client) VideoURL(videoID string) string {
	return c.config.BaseURL + "/videos/" + videoID
}

func (c *Client) doRequest(ctx context.Context, method, path, apiKey string, body interface{}, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	url := c.config.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("heygen returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}

	return nil
}
