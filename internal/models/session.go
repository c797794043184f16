package models

import (
	"time"
)

// Session represents a user session window
type Session struct {
	BaseModel

	UserID    uint       `json:"user_id" gorm:"not null;index"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Status    string     `json:"status" gorm:"size:20;index"`
}
