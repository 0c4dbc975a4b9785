package billing

import "context"

// EventType is the provider-neutral classification of an inbound
// billing event.
type EventType string

const (
	EventPaymentSucceeded    EventType = "payment_succeeded"
	EventSubscriptionDeleted EventType = "subscription_deleted"
	EventUnknown             EventType = "unknown"
)

// Event is the provider-neutral view of a verified webhook payload.
// UserID comes from metadata carried on the provider's subscription
// object; it may be empty for events not tied to a subscription.
type Event struct {
	Type           EventType
	ProviderType   string // the provider's own event-type string, for logging
	SubscriptionID string
	CustomerID     string
	PlanID         string
	UserID         string
}

// Provider abstracts the payment provider so services and tests never
// touch the SDK directly.
type Provider interface {
	// EnsureCustomer returns the provider customer ID for the user,
	// creating one when absent.
	EnsureCustomer(ctx context.Context, userID, email, name string) (string, error)

	// CreateCheckoutSession starts a subscription checkout and returns
	// the URL the client is redirected to.
	CreateCheckoutSession(ctx context.Context, customerID, userID, priceID string) (string, error)

	// ParseWebhook verifies the signature over the raw payload and maps
	// the event into the neutral Event shape. A signature failure must
	// return an error without interpreting the payload.
	ParseWebhook(payload []byte, signature string) (*Event, error)
}
