package provisioning

import (
	"time"

	"cantina-backend/internal/models"
)

// Narrow contracts the provisioning pipeline consumes. The gorm-backed
// implementation lives in store.go; tests substitute in-memory fakes.

type MenuRepository interface {
	// ListOverlappingPeriod returns every menu cycle whose [start,end]
	// interval overlaps the given period, with slots and items loaded.
	ListOverlappingPeriod(start, end time.Time) ([]models.MenuCycle, error)
}

type ReservationRepository interface {
	// ListWithinPeriod returns reservations whose meal slot belongs to a
	// cycle wholly contained in the period, with the slot's ingredient
	// lines loaded. Partially overlapping cycles do not count.
	ListWithinPeriod(start, end time.Time) ([]models.Reservation, error)
}

type HistoricalRepository interface {
	// DishReservationCount looks up the historical reservation count for an
	// exact dish description on a weekday/meal-type. ok is false when no
	// historical row exists for that dish.
	DishReservationCount(weekday, mealType, dishDescription string) (count int, ok bool, err error)
}

type SupplierRepository interface {
	// ListApproved returns approved suppliers with their product offers.
	ListApproved() ([]models.Supplier, error)
}

type ProductCatalog interface {
	// FindByExactName returns every catalog offer whose name matches exactly.
	FindByExactName(name string) ([]models.SupplierProduct, error)
	// FindByNameLike is the fallback substring match used when the exact
	// lookup finds nothing. Known precision risk: it can match the wrong
	// product.
	FindByNameLike(name string) ([]models.SupplierProduct, error)
}

type PlanRepository interface {
	DeleteAll() error
	Insert(entry *models.ProductionPlanEntry) error
	ListAll() ([]models.ProductionPlanEntry, error)
	ListAlerts() ([]models.ProductionPlanEntry, error)
}

type OrderRepository interface {
	Insert(order *models.PurchaseOrder) error
	List(status models.OrderStatus) ([]models.PurchaseOrder, error)
	UpdateStatus(orderID uint, status models.OrderStatus) (*models.PurchaseOrder, error)
}
