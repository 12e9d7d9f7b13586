package models

import "time"

// Message is an inbound contact-form submission. VehicleID is a weak
// back-reference filled in by best-effort matching; the vehicle may be
// deleted later, so readers must treat it as optional.
type Message struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"required"`
	Email     string    `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
	Phone     string    `json:"phone,omitempty" gorm:"type:varchar(30)"`
	Subject   string    `json:"subject" gorm:"type:varchar(100)" validate:"required,max=100"`
	Message   string    `json:"message" validate:"required,max=1000"`
	VehicleID *string   `json:"vehicleId,omitempty" gorm:"type:varchar(36)"`
	IsRead    bool      `json:"isRead" gorm:"default:false;index:idx_read_created,priority:1"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_read_created,priority:2,sort:desc"`
}
