package database

import (
	"aebox-api/internal/models"
)

// CreateSubscription creates a subscription record
func CreateSubscription(subscription *models.Subscription) error {
	return DB.Create(subscription).Error
}

// UpdateSubscription saves a subscription record
func UpdateSubscription(subscription *models.Subscription) error {
	return DB.Save(subscription).Error
}

// GetSubscriptionByUsername fetches the subscription record for a username
func GetSubscriptionByUsername(username string) (*models.Subscription, error) {
	var subscription models.Subscription
	err := DB.Where("username = ?", username).First(&subscription).Error
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

// DeleteSubscriptionByUsername removes the subscription record for a
// username and reports how many rows matched.
func DeleteSubscriptionByUsername(username string) (int64, error) {
	result := DB.Where("username = ?", username).Delete(&models.Subscription{})
	return result.RowsAffected, result.Error
}
