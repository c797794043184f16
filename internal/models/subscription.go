package models

import (
	"time"
)

// Subscription types derived from the Stripe billing interval.
const (
	SubscriptionTypeMonthly = "monthly"
	SubscriptionTypeAnnual  = "annual"
	SubscriptionTypeUnknown = "unknown"
)

// Subscription is the single authoritative subscription record per user.
//
// Username is the unique key: the reconciler always upserts, never appends,
// so at most one row exists per username at any time.
type Subscription struct {
	BaseModel

	Username         string    `json:"username" gorm:"not null;size:255;uniqueIndex"`
	SubscriptionType string    `json:"subscription_type" gorm:"size:20"`
	Status           string    `json:"status" gorm:"size:40;index"`
	ExpiryDate       time.Time `json:"expiry_date"`
	DeviceID         string    `json:"device_id" gorm:"size:100"`
}

// SubscriptionTypeForInterval maps a Stripe billing interval onto the local
// subscription type enumeration.
func SubscriptionTypeForInterval(interval string) string {
	switch interval {
	case "month":
		return SubscriptionTypeMonthly
	case "year":
		return SubscriptionTypeAnnual
	default:
		return SubscriptionTypeUnknown
	}
}
