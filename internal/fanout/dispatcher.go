package fanout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bazil852/aiinfluencerbackend/internal/domain"
)

// EventVideoCompleted is the only event currently fanned out.
const EventVideoCompleted = "video.completed"

// Event is the payload delivered to every automation subscriber of an
// influencer when one of its generation jobs reaches a terminal state.
type Event struct {
	Event   string       `json:"event"`
	Content EventContent `json:"content"`
}

type EventContent struct {
	Title          string `json:"title"`
	Script         string `json:"script"`
	InfluencerName string `json:"influencerName"`
	VideoURL       string `json:"video_url"`
	Status         string `json:"status"`
}

// SubscriberSource is the slice of the registration store the dispatcher reads.
type SubscriberSource interface {
	ListActiveSubscribers(ctx context.Context, influencerID uuid.UUID) ([]*domain.Registration, error)
	UpdateLastTriggered(ctx context.Context, id uuid.UUID) error
}

// Dispatcher delivers terminal job results to automation subscribers.
// Delivery is best-effort: one attempt per subscriber per event, and one
// subscriber's failure never blocks the others.
type Dispatcher struct {
	subscribers SubscriberSource
	client      *http.Client
	logger      *slog.Logger
}

func NewDispatcher(subscribers SubscriberSource, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		subscribers: subscribers,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Dispatch sends the event to every active automation subscriber registered
// for the influencer. Only the subscriber listing can fail; individual
// delivery failures are logged and swallowed.
func (d *Dispatcher) Dispatch(ctx context.Context, influencerID uuid.UUID, event Event) error {
	subs, err := d.subscribers.ListActiveSubscribers(ctx, influencerID)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	for _, sub := range subs {
		if err := d.deliver(ctx, sub, event.Event, payload); err != nil {
			d.logger.Error("fan-out delivery failed",
				"registration_id", sub.ID,
				"url", sub.URL,
				"event", event.Event,
				"error", err,
			)
			continue
		}

		if err := d.subscribers.UpdateLastTriggered(ctx, sub.ID); err != nil {
			d.logger.Warn("failed to update last triggered",
				"registration_id", sub.ID,
				"error", err,
			)
		}

		d.logger.Info("fan-out delivered",
			"registration_id", sub.ID,
			"url", sub.URL,
			"event", event.Event,
		)
	}

	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, sub *domain.Registration, eventType string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sub.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Influencer-Event", eventType)
	req.Header.Set("User-Agent", "AIInfluencer-Webhook/1.0")
	if sub.Secret != "" {
		req.Header.Set("X-Influencer-Signature", Sign(sub.Secret, payload))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("subscriber returned HTTP %d", resp.StatusCode)
	}

	return nil
}
