package models

import "time"

// Reservation - a student booking for one meal slot. Never mutated after
// creation, only deleted by the owner.
type Reservation struct {
	ID         uint     `gorm:"primaryKey"`
	UserID     uint     `gorm:"index;not null"`
	MealSlotID uint     `gorm:"index;not null"`
	MealSlot   MealSlot `gorm:"foreignKey:MealSlotID"`
	PartySize  int      `gorm:"not null;default:1"`
	CreatedAt  time.Time
}
