package models

import (
	"time"
)

// PaymentHistory is an append-only audit record of a successful payment.
// Rows are written once on activation or renewal and never updated.
type PaymentHistory struct {
	BaseModel

	Username         string    `json:"username" gorm:"not null;size:255;index"`
	SubscriptionType string    `json:"subscription_type" gorm:"size:20"`
	PaymentDate      time.Time `json:"payment_date"`
	Amount           int64     `json:"amount"`
	Currency         string    `json:"currency" gorm:"size:10"`
	TransactionID    string    `json:"transaction_id" gorm:"size:100;index"`
	IsRenewal        bool      `json:"is_renewal"`
}
