package database

import (
	"aebox-api/internal/models"
)

// CreatePaymentHistory appends a payment audit entry. Entries are never
// updated or deleted.
func CreatePaymentHistory(entry *models.PaymentHistory) error {
	return DB.Create(entry).Error
}

// GetPaymentHistoryByUsername returns the payment entries for a username,
// newest first.
func GetPaymentHistoryByUsername(username string) ([]models.PaymentHistory, error) {
	var entries []models.PaymentHistory
	err := DB.Where("username = ?", username).Order("payment_date DESC").Find(&entries).Error
	return entries, err
}
