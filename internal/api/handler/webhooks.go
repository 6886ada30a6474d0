package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bazil852/aiinfluencerbackend/internal/domain"
	"github.com/bazil852/aiinfluencerbackend/internal/repository"
)

// WebhooksHandler manages webhook registrations.
type WebhooksHandler struct {
	registrations repository.RegistrationRepositoryInterface
	logger        *slog.Logger
}

func NewWebhooksHandler(registrations repository.RegistrationRepositoryInterface, logger *slog.Logger) *WebhooksHandler {
	return &WebhooksHandler{
		registrations: registrations,
		logger:        logger,
	}
}

type CreateWebhookRequest struct {
	UserID        uuid.UUID   `json:"userId"`
	Name          string      `json:"name"`
	URL           string      `json:"url"`
	Event         string      `json:"event"`
	Kind          string      `json:"kind"`
	InfluencerIDs []uuid.UUID `json:"influencerIds"`
}

type UpdateWebhookRequest struct {
	Name   *string `json:"name"`
	URL    *string `json:"url"`
	Event  *string `json:"event"`
	Active *bool   `json:"active"`
}

type WebhookResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	InfluencerID    uuid.UUID `json:"influencer_id"`
	Name            string    `json:"name"`
	URL             string    `json:"url"`
	Event           string    `json:"event"`
	Kind            string    `json:"kind"`
	Active          bool      `json:"active"`
	LastTriggeredAt *string   `json:"last_triggered_at,omitempty"`
	CreatedAt       string    `json:"created_at"`
}

func webhookResponse(reg *domain.Registration) WebhookResponse {
	var lastTriggered *string
	if reg.LastTriggeredAt != nil {
		t := reg.LastTriggeredAt.Format("2006-01-02T15:04:05Z07:00")
		lastTriggered = &t
	}

	return WebhookResponse{
		ID:              reg.ID,
		UserID:          reg.UserID,
		InfluencerID:    reg.InfluencerID,
		Name:            reg.Name,
		URL:             reg.URL,
		Event:           reg.Event,
		Kind:            reg.Kind,
		Active:          reg.Active,
		LastTriggeredAt: lastTriggered,
		CreatedAt:       reg.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Create POST /v1/webhooks - one registration per influencer id in the request.
func (h *WebhooksHandler) Create(c *fiber.Ctx) error {
	var req CreateWebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.UserID == uuid.Nil || req.Name == "" || req.URL == "" || req.Event == "" || len(req.InfluencerIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	kind := req.Kind
	if kind == "" {
		kind = domain.KindInboundTrigger
	}

	secret, err := generateSecret(32)
	if err != nil {
		h.logger.Error("failed to generate secret", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create webhook",
		})
	}

	created := make([]WebhookResponse, 0, len(req.InfluencerIDs))
	for _, influencerID := range req.InfluencerIDs {
		reg := &domain.Registration{
			UserID:       req.UserID,
			InfluencerID: influencerID,
			Name:         req.Name,
			URL:          req.URL,
			Event:        req.Event,
			Kind:         kind,
			Secret:       secret,
			Active:       true,
		}
		if err := reg.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if err := h.registrations.Create(c.Context(), reg); err != nil {
			if errors.Is(err, domain.ErrRegistrationExists) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error": domain.ErrRegistrationExists.Message,
				})
			}
			h.logger.Error("failed to create webhook",
				"user_id", req.UserID,
				"influencer_id", influencerID,
				"error", err,
			)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create webhook",
			})
		}

		created = append(created, webhookResponse(reg))
	}

	h.logger.Info("webhooks created",
		"user_id", req.UserID,
		"count", len(created),
		"kind", kind,
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"webhooks": created,
		"secret":   secret,
	})
}

// List GET /v1/webhooks?userId= - all registrations owned by a user.
func (h *WebhooksHandler) List(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing userId query parameter",
		})
	}

	regs, err := h.registrations.ListByUser(c.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list webhooks", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch webhooks",
		})
	}

	response := make([]WebhookResponse, 0, len(regs))
	for _, reg := range regs {
		response = append(response, webhookResponse(reg))
	}

	return c.JSON(fiber.Map{
		"webhooks": response,
	})
}

// Update PATCH /v1/webhooks/:id - partial update of mutable fields.
func (h *WebhooksHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook ID",
		})
	}

	var req UpdateWebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	reg, err := h.registrations.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRegistrationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": domain.ErrRegistrationNotFound.Message,
			})
		}
		h.logger.Error("failed to load webhook", "webhook_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update webhook",
		})
	}

	if req.Name != nil {
		reg.Name = *req.Name
	}
	if req.URL != nil {
		reg.URL = *req.URL
	}
	if req.Event != nil {
		reg.Event = *req.Event
	}
	if req.Active != nil {
		reg.Active = *req.Active
	}

	if err := reg.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.registrations.Update(c.Context(), reg); err != nil {
		h.logger.Error("failed to update webhook", "webhook_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update webhook",
		})
	}

	h.logger.Info("webhook updated", "webhook_id", id)

	return c.JSON(webhookResponse(reg))
}

// Delete DELETE /v1/webhooks/:id
func (h *WebhooksHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook ID",
		})
	}

	if err := h.registrations.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrRegistrationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": domain.ErrRegistrationNotFound.Message,
			})
		}
		h.logger.Error("failed to delete webhook", "webhook_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete webhook",
		})
	}

	h.logger.Info("webhook deleted", "webhook_id", id)

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func generateSecret(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
