package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/bazil852/aiinfluencerbackend/internal/domain"
	"github.com/bazil852/aiinfluencerbackend/internal/provider/heygen"
)

// GenerationCompleter finishes a job identified by the provider's video id.
type GenerationCompleter interface {
	Complete(ctx context.Context, videoID, videoURL string) (*domain.Content, error)
}

// CallbackHandler receives the provider's asynchronous completion events.
type CallbackHandler struct {
	service GenerationCompleter
	logger  *slog.Logger
}

func NewCallbackHandler(service GenerationCompleter, logger *slog.Logger) *CallbackHandler {
	return &CallbackHandler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /v1/heygen/callback - provider completion callback.
//
// Callbacks that do not correlate to a stored job answer 404 and change
// nothing; the provider may be calling back about a job another deployment
// submitted.
func (h *CallbackHandler) Handle(c *fiber.Ctx) error {
	var event heygen.CompletionEvent
	if err := c.BodyParser(&event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid callback payload",
		})
	}

	if event.EventData.VideoID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "video_id is required",
		})
	}

	// Non-success events carry no media URL; there is nothing to complete.
	// They are acknowledged so the provider stops retrying.
	if event.EventData.URL == "" {
		h.logger.Warn("callback without media url acknowledged",
			"event_type", event.EventType,
			"video_id", event.EventData.VideoID,
		)
		return c.JSON(fiber.Map{"success": true})
	}

	content, err := h.service.Complete(c.Context(), event.EventData.VideoID, event.EventData.URL)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": domain.ErrJobNotFound.Message,
			})
		}

		h.logger.Error("callback processing failed",
			"video_id", event.EventData.VideoID,
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process callback",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"contentId": content.ID,
	})
}
