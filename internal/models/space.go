package models

// Space represents a workspace a user organizes boxes in
type Space struct {
	BaseModel

	Name        string `json:"name" gorm:"not null;size:200"`
	Description string `json:"description" gorm:"type:text"`
}
