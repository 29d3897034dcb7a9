package models

import "time"

// ProductionPlanEntry - one row of the committed production plan. The whole
// table is regenerated on every plan computation, old rows are deleted first.
type ProductionPlanEntry struct {
	ID           uint      `gorm:"primaryKey"`
	ProductName  string    `gorm:"size:200;not null"`
	PlannedQty   int       `gorm:"not null"`
	RealizedQty  int       `gorm:"not null"`
	DeviationPct float64   `gorm:"not null"`
	Alert        bool      `gorm:"not null;index"`
	ComputedAt   time.Time `gorm:"not null"`
}
