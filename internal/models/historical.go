package models

// Historical demand reference data. Loaded once from past canteen seasons,
// not derived from live reservations. Weekday is a lowercase English name
// ("monday".."friday").

// HistoricalDailyTotal - total servings historically offered for a
// weekday/meal-type combination.
type HistoricalDailyTotal struct {
	ID            uint   `gorm:"primaryKey"`
	Weekday       string `gorm:"size:20;not null;index:idx_hist_day,priority:1"`
	MealType      string `gorm:"size:20;not null;index:idx_hist_day,priority:2"`
	TotalServings int    `gorm:"not null"`
}

// HistoricalDishShare - how often one specific dish was reserved for a
// weekday/meal-type combination. ReservationCount feeds the historical
// forecast directly as a multiplier.
type HistoricalDishShare struct {
	ID               uint    `gorm:"primaryKey"`
	Weekday          string  `gorm:"size:20;not null;index:idx_hist_dish,priority:1"`
	MealType         string  `gorm:"size:20;not null;index:idx_hist_dish,priority:2"`
	DishDescription  string  `gorm:"size:500;not null"`
	ReservationCount int     `gorm:"not null"`
	ChoiceShare      float64 // fraction of the day's reservations, informational
}
