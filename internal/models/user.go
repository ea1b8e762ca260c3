package models

import "gorm.io/gorm"

// User roles. Admins manage the catalog and other users; regular users
// operate the till.
const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)

// User is an operator account.
type User struct {
	UserID     string `json:"user_id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" validate:"required,min=1,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `json:"password,omitempty" gorm:"type:varchar(255)" validate:"required,min=6"`
	Role       string `json:"role" gorm:"type:varchar(20)" validate:"omitempty,oneof=ROLE_ADMIN ROLE_USER"`
	gorm.Model `json:"-"`
}
