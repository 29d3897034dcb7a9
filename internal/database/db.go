package database

import (
	"log"

	"cantina-backend/internal/config"
	"cantina-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init opens the Postgres connection and migrates the schema. The returned
// handle is passed down to handlers and stores; there is no package-level
// singleton.
func Init(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.MenuCycle{},
		&models.MealSlot{},
		&models.MenuItemLine{},
		&models.Reservation{},
		&models.HistoricalDailyTotal{},
		&models.HistoricalDishShare{},
		&models.Supplier{},
		&models.SupplierProduct{},
		&models.ProductionPlanEntry{},
		&models.PurchaseOrder{},
		&models.MealExecution{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connection established, migration complete.")
	return db
}
