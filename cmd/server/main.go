package main

import (
	"log"
	"strings"

	"cantina-backend/internal/auth"
	"cantina-backend/internal/config"
	"cantina-backend/internal/database"
	"cantina-backend/internal/execution"
	"cantina-backend/internal/menu"
	"cantina-backend/internal/models"
	"cantina-backend/internal/provisioning"
	"cantina-backend/internal/reservation"
	"cantina-backend/internal/supplier"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	db := database.Init(cfg)

	// Provisioning engine: explicit service with injected stores, no
	// package-level singletons.
	store := provisioning.NewStore(db)
	provisioningSvc := provisioning.NewService(
		store,
		store,
		store,
		store,
		store,
		store,
		provisioning.NewOrderStore(db),
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg, db))
	api.Post("/auth/login", auth.LoginHandler(cfg, db))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(db))

	// Menu cycles (mutations are for the dietitian)
	protected.Get("/menus", menu.ListMenusHandler(db))
	protected.Get("/menus/:id", menu.GetMenuHandler(db))
	protected.Post("/menus", auth.RequireRole(models.RoleDietitian), menu.CreateMenuHandler(db))
	protected.Post("/menus/generate", auth.RequireRole(models.RoleDietitian), menu.GenerateMenuHandler(db))
	protected.Put("/menus/:id", auth.RequireRole(models.RoleDietitian), menu.UpdateMenuHandler(db))
	protected.Delete("/menus/:id", auth.RequireRole(models.RoleDietitian), menu.DeleteMenuHandler(db))

	// Suppliers and product offers
	protected.Get("/suppliers/supply-order", supplier.SupplyOrderHandler(db))
	protected.Get("/suppliers", supplier.ListSuppliersHandler(db))
	protected.Get("/suppliers/:id", supplier.GetSupplierHandler(db))
	protected.Post("/suppliers", auth.RequireRole(models.RoleSupplier, models.RoleManager), supplier.RegisterSupplierHandler(db))
	protected.Post("/suppliers/:id/products", auth.RequireRole(models.RoleSupplier, models.RoleManager), supplier.AddProductHandler(db))
	protected.Put("/suppliers/:id/approval", auth.RequireRole(models.RoleManager), supplier.ApproveSupplierHandler(db))

	// Student reservations
	protected.Post("/reservations", auth.RequireRole(models.RoleStudent), reservation.CreateReservationHandler(db))
	protected.Get("/reservations", reservation.ListMyReservationsHandler(db))
	protected.Delete("/reservations/:id", reservation.DeleteReservationHandler(db))

	// Meal execution records
	protected.Post("/meal-executions", auth.RequireRole(models.RoleManager), execution.CreateExecutionHandler(db))
	protected.Get("/meal-executions", execution.ListExecutionsHandler(db))
	protected.Delete("/meal-executions/:id", auth.RequireRole(models.RoleManager), execution.DeleteExecutionHandler(db))

	// Provisioning pipeline
	protected.Get("/provisioning/needs", provisioning.NeedsHandler(provisioningSvc))
	protected.Get("/provisioning/preview", provisioning.PreviewHandler(provisioningSvc))

	manager := protected.Group("/provisioning")
	manager.Use(auth.RequireRole(models.RoleManager))
	manager.Post("/plan", provisioning.CommitPlanHandler(provisioningSvc))
	manager.Get("/plan", provisioning.ListPlanHandler(provisioningSvc))
	manager.Get("/alerts", provisioning.ListAlertsHandler(provisioningSvc))
	manager.Post("/orders", provisioning.GenerateOrdersHandler(provisioningSvc))
	manager.Get("/orders", provisioning.ListOrdersHandler(provisioningSvc))
	manager.Put("/orders/:id/status", provisioning.UpdateOrderStatusHandler(provisioningSvc))

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
