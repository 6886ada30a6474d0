package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v83"

	"github.com/bazil852/aiinfluencerbackend/internal/domain"
	"github.com/bazil852/aiinfluencerbackend/internal/repository"
)

// Service keeps user plans in sync with Stripe. Stripe is the source of
// truth: webhook events carry the change and the matching plan row is looked
// up by price id before the user record is updated.
type Service struct {
	accounts      repository.AccountRepositoryInterface
	stripe        StripeClient
	webhookSecret string
	logger        *slog.Logger
}

func NewService(
	accounts repository.AccountRepositoryInterface,
	stripeClient StripeClient,
	webhookSecret string,
	logger *slog.Logger,
) *Service {
	return &Service{
		accounts:      accounts,
		stripe:        stripeClient,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// HandleWebhook verifies the signature and applies the event. Signature
// failures surface as a bad request; unhandled event types are acknowledged
// without action.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := stripe.ConstructEvent(payload, sigHeader, s.webhookSecret)
	if err != nil {
		return domain.ErrBadRequest.WithError(fmt.Errorf("verify webhook signature: %w", err))
	}

	return s.processEvent(ctx, &event)
}

func (s *Service) processEvent(ctx context.Context, event *stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event)
	case "customer.subscription.updated":
		return s.handleSubscriptionUpdated(ctx, event)
	case "customer.subscription.deleted":
		return s.handleSubscriptionDeleted(ctx, event)
	default:
		s.logger.Debug("ignoring stripe event", "type", event.Type)
		return nil
	}
}

func (s *Service) handleCheckoutCompleted(ctx context.Context, event *stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("unmarshal checkout session: %w", err)
	}

	if session.Subscription == nil || session.Subscription.ID == "" {
		s.logger.Warn("checkout session has no subscription", "session_id", session.ID)
		return nil
	}
	subscriptionID := session.Subscription.ID

	// The webhook payload carries neither line items nor a full customer,
	// so the subscription is fetched for its price.
	sub, err := s.stripe.RetrieveSubscription(ctx, subscriptionID)
	if err != nil {
		return err
	}
	priceID := priceIDFromSubscription(sub)
	if priceID == "" {
		s.logger.Warn("subscription carries no price", "subscription_id", subscriptionID)
		return nil
	}

	email := s.customerEmail(ctx, &session, sub)
	if email == "" {
		s.logger.Warn("no customer email on checkout session", "session_id", session.ID)
		return nil
	}

	return s.applyPlan(ctx, email, priceID, subscriptionID)
}

func (s *Service) handleSubscriptionUpdated(ctx context.Context, event *stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("unmarshal subscription: %w", err)
	}

	priceID := priceIDFromSubscription(&sub)
	if priceID == "" {
		s.logger.Warn("subscription carries no price", "subscription_id", sub.ID)
		return nil
	}

	email := s.customerEmail(ctx, nil, &sub)
	if email == "" {
		s.logger.Warn("no customer email on subscription", "subscription_id", sub.ID)
		return nil
	}

	return s.applyPlan(ctx, email, priceID, sub.ID)
}

func (s *Service) handleSubscriptionDeleted(ctx context.Context, event *stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("unmarshal subscription: %w", err)
	}

	email := s.customerEmail(ctx, nil, &sub)
	if email == "" {
		s.logger.Warn("no customer email on subscription", "subscription_id", sub.ID)
		return nil
	}

	// Back to the free tier: plan, price and subscription are all cleared.
	if err := s.accounts.SetPlan(ctx, email, nil, nil, nil); err != nil {
		return fmt.Errorf("reset plan for %s: %w", email, err)
	}

	s.logger.Info("subscription cancelled, user reset to free tier", "email", email)
	return nil
}

// CancelSubscription cancels a subscription on Stripe on behalf of a user.
func (s *Service) CancelSubscription(ctx context.Context, email, subscriptionID string) (*stripe.Subscription, error) {
	if _, err := s.stripe.FindCustomerByEmail(ctx, email); err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, domain.ErrInternal.WithError(err)
	}

	sub, err := s.stripe.CancelSubscription(ctx, subscriptionID)
	if err != nil {
		s.logger.Error("failed to cancel subscription", "email", email, "subscription_id", subscriptionID, "error", err)
		return nil, domain.ErrInternal.WithError(err)
	}

	s.logger.Info("subscription cancelled", "email", email, "subscription_id", subscriptionID)
	return sub, nil
}

// applyPlan resolves the plan matching the Stripe price and stores it on the
// user record. An unknown price is logged and acknowledged so Stripe does not
// keep retrying an event this deployment can never apply.
func (s *Service) applyPlan(ctx context.Context, email, priceID, subscriptionID string) error {
	plan, err := s.accounts.GetPlanByPriceID(ctx, priceID)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			s.logger.Warn("no plan matches stripe price", "price_id", priceID, "email", email)
			return nil
		}
		return fmt.Errorf("look up plan %s: %w", priceID, err)
	}

	if err := s.accounts.SetPlan(ctx, email, plan, &priceID, &subscriptionID); err != nil {
		return fmt.Errorf("set plan for %s: %w", email, err)
	}

	s.logger.Info("user plan updated", "email", email, "plan", plan.PlanName, "price_id", priceID)
	return nil
}

// customerEmail digs the email out of whatever the event carried, falling
// back to a customer retrieve when only the id is present.
func (s *Service) customerEmail(ctx context.Context, session *stripe.CheckoutSession, sub *stripe.Subscription) string {
	if session != nil {
		if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
			return session.CustomerDetails.Email
		}
		if session.CustomerEmail != "" {
			return session.CustomerEmail
		}
	}

	var customerID string
	switch {
	case session != nil && session.Customer != nil:
		customerID = session.Customer.ID
	case sub != nil && sub.Customer != nil:
		customerID = sub.Customer.ID
	}
	if customerID == "" {
		return ""
	}

	cust, err := s.stripe.RetrieveCustomer(ctx, customerID)
	if err != nil {
		s.logger.Warn("customer retrieve failed", "customer_id", customerID, "error", err)
		return ""
	}
	return cust.Email
}

func priceIDFromSubscription(sub *stripe.Subscription) string {
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return ""
	}
	item := sub.Items.Data[0]
	if item.Price == nil {
		return ""
	}
	return item.Price.ID
}
