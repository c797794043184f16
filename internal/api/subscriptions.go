package api

import (
	"errors"
	"net/http"
	"time"

	"aebox-api/internal/database"
	"aebox-api/internal/response"
	"aebox-api/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SubscriptionRequest represents a direct create/update subscription call.
// Pointer fields distinguish "absent" from "zero": absent fields are left
// unchanged on update.
type SubscriptionRequest struct {
	SubscriptionType *string    `json:"subscription_type"`
	Status           *string    `json:"status"`
	ExpiryDate       *time.Time `json:"expiry_date"`
	DeviceID         *string    `json:"device_id"`
}

// UpsertSubscription creates or updates the subscription record for a
// username. 201 on create, 200 on update.
func UpsertSubscription(c *gin.Context) {
	username := c.Param("username")

	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	subscription, created, err := subscriptionService.CreateOrUpdate(username, services.SubscriptionFields{
		SubscriptionType: req.SubscriptionType,
		Status:           req.Status,
		ExpiryDate:       req.ExpiryDate,
		DeviceID:         req.DeviceID,
	})
	if err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to save subscription: "+err.Error())
		return
	}

	if created {
		response.CreatedJSON(c, subscription)
		return
	}
	response.SuccessJSON(c, subscription)
}

// GetSubscription gets the subscription record for a username
func GetSubscription(c *gin.Context) {
	username := c.Param("username")

	subscription, err := database.GetSubscriptionByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ErrorJSON(c, http.StatusNotFound, "Subscription not found")
			return
		}
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to get subscription: "+err.Error())
		return
	}
	response.SuccessJSON(c, subscription)
}

// DeleteSubscription removes the subscription record for a username
func DeleteSubscription(c *gin.Context) {
	username := c.Param("username")

	if err := subscriptionService.Delete(username); err != nil {
		if errors.Is(err, services.ErrSubscriptionNotFound) {
			response.ErrorJSON(c, http.StatusNotFound, "Subscription not found")
			return
		}
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to delete subscription: "+err.Error())
		return
	}
	response.SuccessJSON(c, gin.H{"username": username})
}

// GetPaymentHistory lists the payment audit entries for a username
func GetPaymentHistory(c *gin.Context) {
	username := c.Param("username")

	entries, err := database.GetPaymentHistoryByUsername(username)
	if err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to get payment history: "+err.Error())
		return
	}
	response.SuccessJSON(c, entries)
}
