package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bazil852/aiinfluencerbackend/internal/repository"
)

// CredentialsHandler manages per-user provider API keys.
type CredentialsHandler struct {
	credentials repository.CredentialRepositoryInterface
	logger      *slog.Logger
}

func NewCredentialsHandler(credentials repository.CredentialRepositoryInterface, logger *slog.Logger) *CredentialsHandler {
	return &CredentialsHandler{
		credentials: credentials,
		logger:      logger,
	}
}

type SetHeyGenKeyRequest struct {
	HeyGenKey string `json:"heygenKey"`
}

// SetHeyGenKey PUT /v1/users/:id/heygen-key - store or replace the key.
// The key is never echoed back.
func (h *CredentialsHandler) SetHeyGenKey(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var req SetHeyGenKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.HeyGenKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "heygenKey is required",
		})
	}

	if err := h.credentials.SetHeyGenKey(c.Context(), userID, req.HeyGenKey); err != nil {
		h.logger.Error("failed to store heygen key", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store API key",
		})
	}

	h.logger.Info("heygen key updated", "user_id", userID)

	return c.JSON(fiber.Map{
		"success": true,
	})
}
