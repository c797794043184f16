package api

import (
	"net/http"

	"aebox-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

// StripeWebhook ingests a provider-signed lifecycle event.
//
// The signature is verified against the raw request bytes before any
// parsing. A verification or parse failure returns 400: the provider
// redelivers the same payload, so nothing is gained by retrying here. A
// dispatch failure returns 500 so the provider does retry. Once the core
// state change lands, the response is 200 even if side effects failed.
func StripeWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		logging.Errorf("Failed to read webhook body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Failed to read request body",
		})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Empty request body",
		})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	event, err := paymentProvider.ParseEvent(body, signature)
	if err != nil {
		logging.Errorf("Webhook verification failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Signature verification failed",
		})
		return
	}

	if replayProtection.Seen(event.ID) {
		logging.Infof("Duplicate webhook event %s, acknowledging", event.ID)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Duplicate event",
		})
		return
	}

	if err := subscriptionService.HandleEvent(event); err != nil {
		logging.Errorf("Failed to process webhook event %s: %v", event.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to process event",
		})
		return
	}

	// Record only after the state change landed: a 500 above must leave
	// the event unrecorded so the provider's retry is reprocessed.
	replayProtection.Mark(event.ID)

	logging.Infof("Webhook event processed - id: %s, kind: %s", event.ID, event.Kind)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Event processed successfully",
	})
}
