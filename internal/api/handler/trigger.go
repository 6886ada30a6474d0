package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/bazil852/aiinfluencerbackend/internal/domain"
	"github.com/bazil852/aiinfluencerbackend/internal/registry"
)

// EndpointResolver maps a request path to its mounted trigger endpoint.
type EndpointResolver interface {
	Lookup(path string) (registry.Endpoint, bool)
}

// GenerationSubmitter starts a generation job for a mounted endpoint.
type GenerationSubmitter interface {
	Submit(ctx context.Context, ep registry.Endpoint, title, script string) (*domain.Content, error)
}

// TriggerHandler serves the dynamically mounted inbound endpoints. It is
// registered as a catch-all; paths without a mounted endpoint get a 404.
type TriggerHandler struct {
	endpoints EndpointResolver
	service   GenerationSubmitter
	logger    *slog.Logger
}

func NewTriggerHandler(endpoints EndpointResolver, service GenerationSubmitter, logger *slog.Logger) *TriggerHandler {
	return &TriggerHandler{
		endpoints: endpoints,
		service:   service,
		logger:    logger,
	}
}

type TriggerRequest struct {
	Title  string `json:"title"`
	Script string `json:"script"`
}

// Handle POST <registered path> - start a generation job.
//
// The response body is flat by contract with existing callers:
// {"success":true,"videoId":...} on success, {"error":...} otherwise.
func (h *TriggerHandler) Handle(c *fiber.Ctx) error {
	ep, ok := h.endpoints.Lookup(c.Path())
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": domain.ErrEndpointNotFound.Message,
		})
	}

	var req TriggerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	content, err := h.service.Submit(c.Context(), ep, req.Title, req.Script)
	if err != nil {
		status := fiber.StatusInternalServerError
		message := "An unexpected error occurred"

		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			status = appErr.StatusCode
			message = appErr.Message
		}
		if status >= 500 {
			h.logger.Error("trigger failed",
				"path", c.Path(),
				"registration_id", ep.RegistrationID,
				"error", err,
			)
		}

		return c.Status(status).JSON(fiber.Map{
			"error": message,
		})
	}

	h.logger.Info("trigger accepted",
		"path", c.Path(),
		"registration_id", ep.RegistrationID,
		"content_id", content.ID,
	)

	return c.JSON(fiber.Map{
		"success": true,
		"videoId": content.VideoID,
	})
}
