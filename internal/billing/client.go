package billing

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v83"

	"github.com/bazil852/aiinfluencerbackend/internal/domain"
)

// StripeClient is the slice of the Stripe API the billing service touches.
type StripeClient interface {
	RetrieveCustomer(ctx context.Context, id string) (*stripe.Customer, error)
	RetrieveSubscription(ctx context.Context, id string) (*stripe.Subscription, error)
	FindCustomerByEmail(ctx context.Context, email string) (*stripe.Customer, error)
	CancelSubscription(ctx context.Context, id string) (*stripe.Subscription, error)
}

type apiClient struct {
	sc *stripe.Client
}

// NewStripeClient wraps the official client behind the StripeClient interface.
func NewStripeClient(secretKey string) StripeClient {
	return &apiClient{sc: stripe.NewClient(secretKey)}
}

func (c *apiClient) RetrieveCustomer(ctx context.Context, id string) (*stripe.Customer, error) {
	cust, err := c.sc.V1Customers.Retrieve(ctx, id, nil)
	if err != nil {
		return nil, fmt.Errorf("retrieve customer %s: %w", id, err)
	}
	return cust, nil
}

func (c *apiClient) RetrieveSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	sub, err := c.sc.V1Subscriptions.Retrieve(ctx, id, nil)
	if err != nil {
		return nil, fmt.Errorf("retrieve subscription %s: %w", id, err)
	}
	return sub, nil
}

func (c *apiClient) FindCustomerByEmail(ctx context.Context, email string) (*stripe.Customer, error) {
	params := &stripe.CustomerListParams{}
	params.Email = stripe.String(email)
	params.Limit = stripe.Int64(1)

	for cust, err := range c.sc.V1Customers.List(ctx, params) {
		if err != nil {
			return nil, fmt.Errorf("list customers: %w", err)
		}
		return cust, nil
	}

	return nil, domain.ErrCustomerNotFound
}

func (c *apiClient) CancelSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	sub, err := c.sc.V1Subscriptions.Cancel(ctx, id, nil)
	if err != nil {
		return nil, fmt.Errorf("cancel subscription %s: %w", id, err)
	}
	return sub, nil
}
