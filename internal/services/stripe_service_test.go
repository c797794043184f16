package services

import (
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const testWebhookSecret = "whsec_test_secret"

// signPayload builds the Stripe-Signature header Stripe would attach to
// the payload.
func signPayload(payload []byte) string {
	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, testWebhookSecret)
	return fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))
}

func eventPayload(eventType, object string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test_1",
		"api_version": %q,
		"type": %q,
		"data": {"object": %s}
	}`, stripe.APIVersion, eventType, object))
}

func TestParseEventRejectsBadSignature(t *testing.T) {
	s := &StripeService{webhookSecret: testWebhookSecret}

	payload := eventPayload("checkout.session.completed", `{}`)
	_, err := s.ParseEvent(payload, "t=1,v1=deadbeef")
	assert.Error(t, err)

	_, err = s.ParseEvent(payload, "")
	assert.Error(t, err)
}

func TestParseEventCheckoutCompleted(t *testing.T) {
	s := &StripeService{webhookSecret: testWebhookSecret}

	payload := eventPayload("checkout.session.completed", `{
		"id": "cs_1",
		"customer": "cus_1",
		"subscription": "sub_1",
		"metadata": {"username": "alice@example.com", "device_id": "device_abc"}
	}`)

	event, err := s.ParseEvent(payload, signPayload(payload))
	require.NoError(t, err)
	assert.Equal(t, "evt_test_1", event.ID)
	assert.Equal(t, EventCheckoutCompleted, event.Kind)
	assert.Equal(t, "cus_1", event.CustomerID)
	assert.Equal(t, "sub_1", event.SubscriptionID)
	assert.Equal(t, "device_abc", event.DeviceID)
}

func TestParseEventInvoiceSubscriptionFallback(t *testing.T) {
	s := &StripeService{webhookSecret: testWebhookSecret}

	// Newer invoice payloads move the subscription reference under
	// parent.subscription_details.
	payload := eventPayload("invoice.payment_succeeded", `{
		"id": "in_1",
		"customer": "cus_1",
		"parent": {"subscription_details": {"subscription": "sub_9"}}
	}`)

	event, err := s.ParseEvent(payload, signPayload(payload))
	require.NoError(t, err)
	assert.Equal(t, EventInvoicePaid, event.Kind)
	assert.Equal(t, "sub_9", event.SubscriptionID)
}

func TestParseEventSubscriptionDeleted(t *testing.T) {
	s := &StripeService{webhookSecret: testWebhookSecret}

	payload := eventPayload("customer.subscription.deleted", `{
		"id": "sub_1",
		"customer": "cus_1"
	}`)

	event, err := s.ParseEvent(payload, signPayload(payload))
	require.NoError(t, err)
	assert.Equal(t, EventSubscriptionDeleted, event.Kind)
	assert.Equal(t, "sub_1", event.SubscriptionID)
	assert.Equal(t, "cus_1", event.CustomerID)
}

func TestParseEventUnknownTypeIsOther(t *testing.T) {
	s := &StripeService{webhookSecret: testWebhookSecret}

	payload := eventPayload("charge.refunded", `{"id": "ch_1"}`)

	event, err := s.ParseEvent(payload, signPayload(payload))
	require.NoError(t, err)
	assert.Equal(t, EventOther, event.Kind)
	assert.Empty(t, event.CustomerID)
}
