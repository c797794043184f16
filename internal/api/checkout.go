package api

import (
	"net/http"

	"aebox-api/internal/response"
	"aebox-api/internal/services"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest represents a checkout session request
type CheckoutRequest struct {
	Email    string `json:"email" binding:"required,email"`
	PriceID  string `json:"price_id" binding:"required"`
	DeviceID string `json:"device_id"`
}

// CreateCheckoutSession creates a hosted checkout session and returns its
// redirect URL
func CreateCheckoutSession(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	url, err := paymentProvider.CreateCheckoutSession(services.CheckoutParams{
		Email:    req.Email,
		PriceID:  req.PriceID,
		DeviceID: req.DeviceID,
	})
	if err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to create checkout session: "+err.Error())
		return
	}

	response.SuccessJSON(c, gin.H{"url": url})
}
