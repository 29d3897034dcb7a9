package models

import "time"

// Supplier - a registered producer. Only approved suppliers take part in
// priority ordering and purchase-order generation. RegistrationDate drives
// the priority ordering (oldest first).
type Supplier struct {
	ID               uint              `gorm:"primaryKey"`
	Name             string            `gorm:"size:200;not null"`
	RegistrationDate time.Time         `gorm:"type:date;not null;index"`
	Approved         bool              `gorm:"not null;default:false"`
	Products         []SupplierProduct `gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SupplierProduct - one product offer of a supplier, with its production
// window and capacity. The set of offers of approved suppliers forms the
// product catalog the provisioning pipeline matches ingredient names against.
type SupplierProduct struct {
	ID              uint      `gorm:"primaryKey"`
	SupplierID      uint      `gorm:"index;not null"`
	Name            string    `gorm:"size:200;not null;index"`
	Category        string    `gorm:"size:100"` // protein, vegetable, cereal, fruit, dairy
	Biological      bool      `gorm:"not null;default:false"`
	ProductionStart time.Time `gorm:"type:date;not null"`
	ProductionEnd   time.Time `gorm:"type:date;not null"`
	Capacity        int       `gorm:"not null"` // kg per production window
}
