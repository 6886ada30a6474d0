package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v83"

	"github.com/bazil852/aiinfluencerbackend/internal/domain"
)

// BillingService applies Stripe webhook events and cancels subscriptions.
type BillingService interface {
	HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error
	CancelSubscription(ctx context.Context, email, subscriptionID string) (*stripe.Subscription, error)
}

type BillingHandler struct {
	service BillingService
	logger  *slog.Logger
}

func NewBillingHandler(service BillingService, logger *slog.Logger) *BillingHandler {
	return &BillingHandler{
		service: service,
		logger:  logger,
	}
}

// Webhook POST /v1/stripe/webhook - raw Stripe event delivery.
func (h *BillingHandler) Webhook(c *fiber.Ctx) error {
	sig := c.Get("Stripe-Signature")

	if err := h.service.HandleWebhook(c.Context(), c.Body(), sig); err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) && appErr.StatusCode < 500 {
			return c.Status(appErr.StatusCode).JSON(fiber.Map{
				"error": appErr.Message,
			})
		}

		h.logger.Error("stripe webhook processing failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process webhook",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

type CancelSubscriptionRequest struct {
	Email string `json:"email"`
	SubID string `json:"subId"`
}

// CancelSubscription POST /v1/stripe/cancel-subscription
func (h *BillingHandler) CancelSubscription(c *fiber.Ctx) error {
	var req CancelSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email is required",
		})
	}
	if req.SubID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Subscription Id is required",
		})
	}

	sub, err := h.service.CancelSubscription(c.Context(), req.Email, req.SubID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": domain.ErrCustomerNotFound.Message,
			})
		}
		h.logger.Error("failed to cancel subscription", "email", req.Email, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to cancel subscription",
		})
	}

	return c.JSON(fiber.Map{
		"success":              true,
		"canceledSubscription": sub,
	})
}

// Info GET /v1/stripe - endpoint liveness hint for dashboard configuration.
func (h *BillingHandler) Info(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Stripe webhook endpoint is active. Use POST to send webhook events.",
	})
}
