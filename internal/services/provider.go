package services

import (
	"time"
)

// EventKind is the closed set of payment-provider lifecycle events the
// reconciler handles. Anything else maps to EventOther and is acknowledged
// without touching state.
type EventKind string

const (
	EventCheckoutCompleted   EventKind = "checkout.session.completed"
	EventInvoicePaid         EventKind = "invoice.payment_succeeded"
	EventSubscriptionUpdated EventKind = "customer.subscription.updated"
	EventSubscriptionDeleted EventKind = "customer.subscription.deleted"
	EventOther               EventKind = "other"
)

// ProviderEvent is a verified, parsed provider event. The raw payload is
// discarded once one of these exists.
type ProviderEvent struct {
	ID             string
	Kind           EventKind
	CustomerID     string
	SubscriptionID string
	DeviceID       string // from checkout session metadata, when present
}

// PlanDetail is the slice of a provider subscription the reconciler needs:
// status, billing interval, period end and the latest charge for the audit
// trail.
type PlanDetail struct {
	ID               string
	Status           string
	Interval         string // "month" or "year"
	CurrentPeriodEnd time.Time
	Amount           int64 // smallest currency unit
	Currency         string
	TransactionID    string
}

// CheckoutParams carries the inputs for a hosted checkout session.
type CheckoutParams struct {
	Email    string
	PriceID  string
	DeviceID string
}

// PaymentProvider is the payment collaborator: verify-and-parse inbound
// events, resolve customers and subscriptions, create checkout sessions.
type PaymentProvider interface {
	ParseEvent(payload []byte, sigHeader string) (*ProviderEvent, error)
	CustomerEmail(customerID string) (string, error)
	SubscriptionDetail(subscriptionID string) (*PlanDetail, error)
	CreateCheckoutSession(params CheckoutParams) (string, error)
}

// Mailer sends a notification email. Fire-and-forget from the caller's
// perspective: failures are logged, never propagated into request outcomes.
type Mailer interface {
	Send(to, subject, body string) error
}
