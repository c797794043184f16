package models

// Application represents an application tile inside a box.
//
// Order is the position of the application among its box siblings. New
// applications are appended at max(order)+1; positions are only compacted
// back to 0..n-1 by an explicit reorder of the whole box.
type Application struct {
	BaseModel

	Name        string `json:"name" gorm:"not null;size:200"`
	Description string `json:"description" gorm:"type:text"`
	BoxID       uint   `json:"box_id" gorm:"not null;index"`
	Order       int    `json:"order" gorm:"column:order;not null;default:0"`
	ViewID      string `json:"view_id" gorm:"size:100"`
}
