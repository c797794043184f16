package models

import (
	"time"
)

// DeviceSync represents the sync state of a single device
type DeviceSync struct {
	BaseModel

	DeviceID   string    `json:"device_id" gorm:"not null;size:100;uniqueIndex"`
	SyncStatus string    `json:"sync_status" gorm:"size:20;index"`
	LastSynced time.Time `json:"last_synced"`
}
