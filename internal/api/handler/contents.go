package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bazil852/aiinfluencerbackend/internal/repository"
)

// ContentsHandler exposes generation job history.
type ContentsHandler struct {
	contents repository.ContentRepositoryInterface
	logger   *slog.Logger
}

func NewContentsHandler(contents repository.ContentRepositoryInterface, logger *slog.Logger) *ContentsHandler {
	return &ContentsHandler{
		contents: contents,
		logger:   logger,
	}
}

// ListByInfluencer GET /v1/influencers/:id/contents - newest first.
func (h *ContentsHandler) ListByInfluencer(c *fiber.Ctx) error {
	influencerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid influencer ID",
		})
	}

	contents, err := h.contents.ListByInfluencer(c.Context(), influencerID)
	if err != nil {
		h.logger.Error("failed to list contents", "influencer_id", influencerID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch contents",
		})
	}

	return c.JSON(fiber.Map{
		"contents": contents,
	})
}
