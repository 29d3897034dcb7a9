package provisioning

import (
	"errors"
	"time"

	"cantina-backend/internal/models"

	"gorm.io/gorm"
)

// Store is the gorm-backed implementation of every repository contract the
// pipeline consumes. Queries load associations eagerly so the pure
// aggregation code never triggers hidden I/O.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListOverlappingPeriod(start, end time.Time) ([]models.MenuCycle, error) {
	var cycles []models.MenuCycle
	err := s.db.
		Preload("MealSlots.Items").
		Where("start_date <= ? AND end_date >= ?", end, start).
		Find(&cycles).Error
	return cycles, err
}

func (s *Store) ListWithinPeriod(start, end time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.
		Joins("JOIN meal_slots ON meal_slots.id = reservations.meal_slot_id").
		Joins("JOIN menu_cycles ON menu_cycles.id = meal_slots.menu_cycle_id").
		Where("menu_cycles.start_date >= ? AND menu_cycles.end_date <= ?", start, end).
		Preload("MealSlot.Items").
		Find(&reservations).Error
	return reservations, err
}

func (s *Store) DishReservationCount(weekday, mealType, dishDescription string) (int, bool, error) {
	var share models.HistoricalDishShare
	err := s.db.
		Where("weekday = ? AND meal_type = ? AND dish_description = ?", weekday, mealType, dishDescription).
		First(&share).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return share.ReservationCount, true, nil
}

func (s *Store) ListApproved() ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := s.db.
		Preload("Products").
		Where("approved = ?", true).
		Find(&suppliers).Error
	return suppliers, err
}

func (s *Store) FindByExactName(name string) ([]models.SupplierProduct, error) {
	var offers []models.SupplierProduct
	err := s.db.Where("name = ?", name).Find(&offers).Error
	return offers, err
}

func (s *Store) FindByNameLike(name string) ([]models.SupplierProduct, error) {
	var offers []models.SupplierProduct
	err := s.db.Where("name ILIKE ?", "%"+name+"%").Find(&offers).Error
	return offers, err
}

func (s *Store) DeleteAll() error {
	return s.db.Where("1 = 1").Delete(&models.ProductionPlanEntry{}).Error
}

func (s *Store) Insert(entry *models.ProductionPlanEntry) error {
	return s.db.Create(entry).Error
}

func (s *Store) ListAll() ([]models.ProductionPlanEntry, error) {
	var entries []models.ProductionPlanEntry
	err := s.db.Order("product_name asc").Find(&entries).Error
	return entries, err
}

func (s *Store) ListAlerts() ([]models.ProductionPlanEntry, error) {
	var entries []models.ProductionPlanEntry
	err := s.db.Where("alert = ?", true).Order("product_name asc").Find(&entries).Error
	return entries, err
}

// OrderStore holds the purchase-order side of the gorm handle.
type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) Insert(order *models.PurchaseOrder) error {
	return s.db.Create(order).Error
}

func (s *OrderStore) List(status models.OrderStatus) ([]models.PurchaseOrder, error) {
	q := s.db.Preload("Supplier").Preload("Product").Order("priority_rank asc")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.PurchaseOrder
	err := q.Find(&orders).Error
	return orders, err
}

func (s *OrderStore) UpdateStatus(orderID uint, status models.OrderStatus) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	if err := s.db.First(&order, orderID).Error; err != nil {
		return nil, err
	}

	order.Status = status
	if err := s.db.Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
