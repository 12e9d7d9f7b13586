package models

import "time"

// RoleAdmin is the only role the back office cares about: every admin route
// requires it.
const RoleAdmin = "admin"

// User represents a back-office account.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Role      string    `json:"role" gorm:"type:varchar(20);default:admin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the account may use the admin API.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
