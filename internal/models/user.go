package models

import "time"

type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleDietitian UserRole = "dietitian"
	RoleManager   UserRole = "canteen_manager"
	RoleSupplier  UserRole = "supplier"
)

// ValidRole reports whether r is one of the known canteen roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleStudent, RoleDietitian, RoleManager, RoleSupplier:
		return true
	}
	return false
}

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
