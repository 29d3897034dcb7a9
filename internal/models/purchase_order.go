package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderDelivered OrderStatus = "delivered"
)

// ValidOrderStatus reports whether s is a known purchase-order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderDelivered:
		return true
	}
	return false
}

// PurchaseOrder - one order of one product to one supplier. PriorityRank is
// the supplier's 1-based position in the ascending-registration-date ordering
// of approved suppliers (rank 1 = highest priority).
type PurchaseOrder struct {
	ID           uint            `gorm:"primaryKey"`
	SupplierID   uint            `gorm:"index;not null"`
	Supplier     Supplier        `gorm:"foreignKey:SupplierID"`
	ProductID    uint            `gorm:"index;not null"`
	Product      SupplierProduct `gorm:"foreignKey:ProductID"`
	Quantity     int             `gorm:"not null"`
	DeliveryDate time.Time       `gorm:"type:date;not null"`
	Status       OrderStatus     `gorm:"size:20;not null;default:pending;index"`
	PriorityRank int             `gorm:"not null"`
	CreatedAt    time.Time
}
