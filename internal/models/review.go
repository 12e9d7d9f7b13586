package models

import "time"

// Review is a customer review. Submissions start unapproved and only appear
// on the public site after an admin approves them.
type Review struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string    `json:"name" gorm:"type:varchar(100)" validate:"required"`
	Email      string    `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
	Rating     int       `json:"rating" validate:"required,min=1,max=5"`
	Title      string    `json:"title" gorm:"type:varchar(100)" validate:"required,max=100"`
	Comment    string    `json:"comment" gorm:"type:varchar(500)" validate:"required,max=500"`
	IsApproved bool      `json:"isApproved" gorm:"default:false;index:idx_approved_created,priority:1"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index:idx_approved_created,priority:2,sort:desc"`
}
