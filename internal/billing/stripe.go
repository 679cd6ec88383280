package billing

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"

	"github.com/dropDatabas3/cordely/internal/observability/logger"
)

// StripeConfig agrupa las credenciales y el plan por defecto.
type StripeConfig struct {
	APIKey  string
	PriceID string // price del plan estándar para altas nuevas
}

// StripeBilling implementa Billing contra la API de Stripe.
type StripeBilling struct {
	api     *client.API
	priceID string
}

// NewStripe crea el cliente con la key dada.
func NewStripe(cfg StripeConfig) *StripeBilling {
	api := &client.API{}
	api.Init(cfg.APIKey, nil)
	return &StripeBilling{api: api, priceID: cfg.PriceID}
}

func (b *StripeBilling) CreateCustomerWithSubscription(ctx context.Context, p NewCustomerParams) (*Customer, error) {
	custParams := &stripe.CustomerParams{
		Email: stripe.String(p.Email),
		Name:  stripe.String(p.Name),
		Params: stripe.Params{
			Context: ctx,
			Metadata: map[string]string{
				"siteKey":    p.SiteKey,
				"siteName":   p.SiteName,
				"ownerPhone": p.OwnerPhone,
			},
		},
	}
	cust, err := b.api.Customers.New(custParams)
	if err != nil {
		return nil, fmt.Errorf("stripe customer: %w", err)
	}

	subParams := &stripe.SubscriptionParams{
		Customer: stripe.String(cust.ID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(b.priceID)},
		},
		Params: stripe.Params{Context: ctx},
	}
	sub, err := b.api.Subscriptions.New(subParams)
	if err != nil {
		return nil, fmt.Errorf("stripe subscription: %w", err)
	}

	logger.From(ctx).Info("stripe customer creado",
		logger.Component("billing"),
		logger.CustomerID(cust.ID),
		logger.SubscriptionID(sub.ID),
	)
	return &Customer{CustomerID: cust.ID, SubscriptionID: sub.ID}, nil
}

func (b *StripeBilling) FindPendingCancellation(ctx context.Context, customerID string) (*Subscription, error) {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String("all"),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(10)

	it := b.api.Subscriptions.List(params)
	for it.Next() {
		s := it.Subscription()
		if (s.Status == stripe.SubscriptionStatusActive || s.Status == stripe.SubscriptionStatusTrialing) &&
			s.CancelAtPeriodEnd {
			return &Subscription{
				ID:                s.ID,
				Status:            string(s.Status),
				CancelAtPeriodEnd: s.CancelAtPeriodEnd,
			}, nil
		}
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("stripe list subscriptions: %w", err)
	}
	return nil, ErrNoPendingCancel
}

func (b *StripeBilling) ResumeSubscription(ctx context.Context, subscriptionID string) error {
	params := &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(false),
		Params:            stripe.Params{Context: ctx},
	}
	if _, err := b.api.Subscriptions.Update(subscriptionID, params); err != nil {
		return fmt.Errorf("stripe resume: %w", err)
	}
	return nil
}
