package models

import "time"

// Meal types served by the canteen.
const (
	MealLunch  = "lunch"
	MealDinner = "dinner"
)

// MenuCycle - a dated multi-day meal plan. Replaced wholesale on edit.
type MenuCycle struct {
	ID        uint       `gorm:"primaryKey"`
	Name      string     `gorm:"size:200;not null"`
	StartDate time.Time  `gorm:"type:date;not null;index"`
	EndDate   time.Time  `gorm:"type:date;not null;index"`
	MealSlots []MealSlot `gorm:"foreignKey:MenuCycleID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MealSlot - one meal (lunch/dinner) on one weekday of a cycle.
// Weekday is 1..5, Monday=1.
type MealSlot struct {
	ID          uint           `gorm:"primaryKey"`
	MenuCycleID uint           `gorm:"index;not null"`
	Weekday     int            `gorm:"not null"`
	MealType    string         `gorm:"size:20;not null"`
	Description string         `gorm:"size:500"`
	Items       []MenuItemLine `gorm:"foreignKey:MealSlotID;constraint:OnDelete:CASCADE"`
}

// MenuItemLine - one ingredient of a meal slot. The ingredient name is the
// key used for matching against the supplier catalog and historical tables.
type MenuItemLine struct {
	ID                 uint   `gorm:"primaryKey"`
	MealSlotID         uint   `gorm:"index;not null"`
	Ingredient         string `gorm:"size:200;not null"`
	ProductID          *uint  // optional link to a SupplierProduct
	QuantityPerServing int    // kg per assumed serving, 0 when unknown
}
