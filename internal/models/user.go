package models

// User represents a registered frontend user
type User struct {
	BaseModel

	Username  string `json:"username" gorm:"not null;size:100;uniqueIndex"`
	Email     string `json:"email" gorm:"size:255;index"`
	FirstName string `json:"first_name" gorm:"size:100"`
	LastName  string `json:"last_name" gorm:"size:100"`
}
