package models

import "time"

// MealExecution - what actually happened when a meal slot was served on a
// given date. Input for waste reporting outside this service.
type MealExecution struct {
	ID            uint      `gorm:"primaryKey"`
	MealSlotID    uint      `gorm:"index;not null"`
	MealSlot      MealSlot  `gorm:"foreignKey:MealSlotID"`
	ExecutionDate time.Time `gorm:"type:date;not null;index"`
	ProducedQty   int       `gorm:"not null"`
	ServedQty     int       `gorm:"not null"`
	UnservedQty   int       `gorm:"not null"`
	CreatedAt     time.Time
}
