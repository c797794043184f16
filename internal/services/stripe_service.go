package services

import (
	"encoding/json"
	"fmt"
	"time"

	"aebox-api/internal/config"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/subscription"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeService implements PaymentProvider using the Stripe API.
type StripeService struct {
	webhookSecret string
	successURL    string
	cancelURL     string
}

// NewStripeService creates a Stripe-backed payment provider
func NewStripeService() *StripeService {
	stripe.Key = config.AppConfig.StripeAPIKey
	return &StripeService{
		webhookSecret: config.AppConfig.StripeWebhookSecret,
		successURL:    config.AppConfig.CheckoutSuccessURL,
		cancelURL:     config.AppConfig.CheckoutCancelURL,
	}
}

// ParseEvent verifies the signature over the raw payload bytes and lowers
// the Stripe event into a ProviderEvent. Verification runs before any body
// parsing: re-serialization would change the signed byte sequence.
func (s *StripeService) ParseEvent(payload []byte, sigHeader string) (*ProviderEvent, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, s.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	parsed := &ProviderEvent{ID: event.ID, Kind: EventOther}

	switch event.Type {
	case "checkout.session.completed":
		var sess struct {
			Customer     string            `json:"customer"`
			Subscription string            `json:"subscription"`
			Metadata     map[string]string `json:"metadata"`
		}
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("failed to parse checkout session event: %w", err)
		}
		parsed.Kind = EventCheckoutCompleted
		parsed.CustomerID = sess.Customer
		parsed.SubscriptionID = sess.Subscription
		parsed.DeviceID = sess.Metadata["device_id"]

	case "invoice.payment_succeeded":
		var invoice struct {
			Customer     string `json:"customer"`
			Subscription string `json:"subscription"`
			Parent       *struct {
				SubscriptionDetails *struct {
					Subscription string `json:"subscription"`
				} `json:"subscription_details"`
			} `json:"parent"`
		}
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return nil, fmt.Errorf("failed to parse invoice event: %w", err)
		}
		parsed.Kind = EventInvoicePaid
		parsed.CustomerID = invoice.Customer
		parsed.SubscriptionID = invoice.Subscription
		if parsed.SubscriptionID == "" && invoice.Parent != nil && invoice.Parent.SubscriptionDetails != nil {
			parsed.SubscriptionID = invoice.Parent.SubscriptionDetails.Subscription
		}

	case "customer.subscription.updated", "customer.subscription.deleted":
		var sub struct {
			ID       string `json:"id"`
			Customer string `json:"customer"`
		}
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("failed to parse subscription event: %w", err)
		}
		if event.Type == "customer.subscription.deleted" {
			parsed.Kind = EventSubscriptionDeleted
		} else {
			parsed.Kind = EventSubscriptionUpdated
		}
		parsed.CustomerID = sub.Customer
		parsed.SubscriptionID = sub.ID
	}

	return parsed, nil
}

// CustomerEmail resolves a Stripe customer id to the customer's email
func (s *StripeService) CustomerEmail(customerID string) (string, error) {
	c, err := customer.Get(customerID, nil)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve stripe customer: %w", err)
	}
	return c.Email, nil
}

// SubscriptionDetail fetches a Stripe subscription and maps it onto the
// narrow PlanDetail slice the reconciler consumes.
func (s *StripeService) SubscriptionDetail(subscriptionID string) (*PlanDetail, error) {
	sub, err := subscription.Get(subscriptionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve stripe subscription: %w", err)
	}

	detail := &PlanDetail{
		ID:            sub.ID,
		Status:        string(sub.Status),
		TransactionID: sub.ID,
	}
	if sub.LatestInvoice != nil {
		detail.TransactionID = sub.LatestInvoice.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		item := sub.Items.Data[0]
		detail.CurrentPeriodEnd = time.Unix(item.CurrentPeriodEnd, 0)
		if item.Price != nil {
			detail.Amount = item.Price.UnitAmount
			detail.Currency = string(item.Price.Currency)
			if item.Price.Recurring != nil {
				detail.Interval = string(item.Price.Recurring.Interval)
			}
		}
	}
	return detail, nil
}

// CreateCheckoutSession creates a hosted subscription checkout session and
// returns its redirect URL. The device id travels in session metadata so
// the completed-checkout webhook can carry it back.
func (s *StripeService) CreateCheckoutSession(p CheckoutParams) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail: stripe.String(p.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.successURL),
		CancelURL:  stripe.String(s.cancelURL),
	}
	params.AddMetadata("username", p.Email)
	if p.DeviceID != "" {
		params.AddMetadata("device_id", p.DeviceID)
	}

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return sess.URL, nil
}
