package billing

import (
	"context"
	"encoding/json"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/subscription"
	"github.com/stripe/stripe-go/v82/webhook"

	"lexhub_backend/internal/config"
)

// StripeProvider implements Provider against the Stripe API.
type StripeProvider struct {
	webhookSecret string
	successURL    string
	cancelURL     string
}

func NewStripeProvider(cfg *config.Config) *StripeProvider {
	stripe.Key = cfg.Stripe.SecretKey

	return &StripeProvider{
		webhookSecret: cfg.Stripe.WebhookSecret,
		successURL:    cfg.Stripe.SuccessURL,
		cancelURL:     cfg.Stripe.CancelURL,
	}
}

func (p *StripeProvider) EnsureCustomer(ctx context.Context, userID, email, name string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx
	params.AddMetadata("user_id", userID)

	c, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe customer create: %w", err)
	}
	return c.ID, nil
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, customerID, userID, priceID string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(customerID),
		SuccessURL: stripe.String(p.successURL),
		CancelURL:  stripe.String(p.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			// The webhook handler resolves the user from this metadata.
			Metadata: map[string]string{"user_id": userID},
		},
	}
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout session: %w", err)
	}
	return s.URL, nil
}

// invoicePayload and subscriptionPayload decode just the fields we need
// from the raw event body; the shape of the full objects varies with the
// account's API version.
type invoicePayload struct {
	Subscription string `json:"subscription"`
	Customer     string `json:"customer"`
	Parent       *struct {
		SubscriptionDetails *struct {
			Subscription string `json:"subscription"`
		} `json:"subscription_details"`
	} `json:"parent"`
}

type subscriptionPayload struct {
	ID       string            `json:"id"`
	Customer string            `json:"customer"`
	Metadata map[string]string `json:"metadata"`
	Plan     *struct {
		ID string `json:"id"`
	} `json:"plan"`
	Items *struct {
		Data []struct {
			Price *struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

func (sp *subscriptionPayload) planID() string {
	if sp.Plan != nil && sp.Plan.ID != "" {
		return sp.Plan.ID
	}
	if sp.Items != nil && len(sp.Items.Data) > 0 && sp.Items.Data[0].Price != nil {
		return sp.Items.Data[0].Price.ID
	}
	return ""
}

func (p *StripeProvider) ParseWebhook(payload []byte, signature string) (*Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification: %w", err)
	}

	switch event.Type {
	case "invoice.payment_succeeded":
		var inv invoicePayload
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return nil, fmt.Errorf("decode invoice payload: %w", err)
		}

		subID := inv.Subscription
		if subID == "" && inv.Parent != nil && inv.Parent.SubscriptionDetails != nil {
			subID = inv.Parent.SubscriptionDetails.Subscription
		}
		if subID == "" {
			// One-off invoice with no subscription attached
			return &Event{Type: EventUnknown, ProviderType: string(event.Type)}, nil
		}

		sub, err := subscription.Get(subID, nil)
		if err != nil {
			return nil, fmt.Errorf("stripe subscription fetch: %w", err)
		}

		out := &Event{
			Type:           EventPaymentSucceeded,
			ProviderType:   string(event.Type),
			SubscriptionID: subID,
			CustomerID:     inv.Customer,
			UserID:         sub.Metadata["user_id"],
		}
		if len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
			out.PlanID = sub.Items.Data[0].Price.ID
		}
		return out, nil

	case "customer.subscription.deleted":
		var sub subscriptionPayload
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("decode subscription payload: %w", err)
		}

		return &Event{
			Type:           EventSubscriptionDeleted,
			ProviderType:   string(event.Type),
			SubscriptionID: sub.ID,
			CustomerID:     sub.Customer,
			PlanID:         sub.planID(),
			UserID:         sub.Metadata["user_id"],
		}, nil

	default:
		return &Event{Type: EventUnknown, ProviderType: string(event.Type)}, nil
	}
}
