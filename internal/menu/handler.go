package menu

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"cantina-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// -------------------------
// Request/Response Types
// -------------------------

type MenuItemLineRequest struct {
	Ingredient         string `json:"ingredient"`
	ProductID          *uint  `json:"product_id"`
	QuantityPerServing int    `json:"quantity_per_serving"`
}

type MealSlotRequest struct {
	Weekday     int                   `json:"weekday"`
	MealType    string                `json:"meal_type"`
	Description string                `json:"description"`
	Items       []MenuItemLineRequest `json:"items"`
}

type MenuCycleRequest struct {
	Name      string            `json:"name"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
	MealSlots []MealSlotRequest `json:"meal_slots"`
}

type GenerateMenuRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
}

type MenuItemLineResponse struct {
	ID                 uint   `json:"id"`
	Ingredient         string `json:"ingredient"`
	ProductID          *uint  `json:"product_id"`
	QuantityPerServing int    `json:"quantity_per_serving"`
}

type MealSlotResponse struct {
	ID          uint                   `json:"id"`
	Weekday     int                    `json:"weekday"`
	MealType    string                 `json:"meal_type"`
	Description string                 `json:"description"`
	Items       []MenuItemLineResponse `json:"items"`
}

type MenuCycleResponse struct {
	ID        uint               `json:"id"`
	Name      string             `json:"name"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	MealSlots []MealSlotResponse `json:"meal_slots"`
}

func buildCycle(body MenuCycleRequest) (*models.MenuCycle, error) {
	if strings.TrimSpace(body.Name) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Menu name must not be empty")
	}
	startDate, err := time.Parse("2006-01-02", body.StartDate)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "start_date must be a YYYY-MM-DD date")
	}
	endDate, err := time.Parse("2006-01-02", body.EndDate)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "end_date must be a YYYY-MM-DD date")
	}
	if endDate.Before(startDate) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "end_date must not be before start_date")
	}

	cycle := &models.MenuCycle{
		Name:      strings.TrimSpace(body.Name),
		StartDate: startDate,
		EndDate:   endDate,
	}

	for _, slot := range body.MealSlots {
		if slot.Weekday < 1 || slot.Weekday > 5 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "weekday must be between 1 (Monday) and 5 (Friday)")
		}
		if slot.MealType != models.MealLunch && slot.MealType != models.MealDinner {
			return nil, fiber.NewError(fiber.StatusBadRequest, "meal_type must be 'lunch' or 'dinner'")
		}

		mealSlot := models.MealSlot{
			Weekday:     slot.Weekday,
			MealType:    slot.MealType,
			Description: slot.Description,
		}
		for _, item := range slot.Items {
			if strings.TrimSpace(item.Ingredient) == "" {
				return nil, fiber.NewError(fiber.StatusBadRequest, "Ingredient name must not be empty")
			}
			if item.QuantityPerServing < 0 {
				return nil, fiber.NewError(fiber.StatusBadRequest, "quantity_per_serving must not be negative")
			}
			mealSlot.Items = append(mealSlot.Items, models.MenuItemLine{
				Ingredient:         strings.TrimSpace(item.Ingredient),
				ProductID:          item.ProductID,
				QuantityPerServing: item.QuantityPerServing,
			})
		}
		cycle.MealSlots = append(cycle.MealSlots, mealSlot)
	}

	return cycle, nil
}

// -------------------------
// Menu Cycle CRUD
// -------------------------

// POST /api/menus
func CreateMenuHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body MenuCycleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		cycle, err := buildCycle(body)
		if err != nil {
			return err
		}

		if err := db.Create(cycle).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create menu cycle")
		}

		return c.Status(fiber.StatusCreated).JSON(cycleResponse(*cycle))
	}
}

// GET /api/menus
func ListMenusHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cycles []models.MenuCycle
		if err := db.Preload("MealSlots.Items").Order("start_date asc").Find(&cycles).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list menu cycles")
		}

		resp := make([]MenuCycleResponse, 0, len(cycles))
		for _, cycle := range cycles {
			resp = append(resp, cycleResponse(cycle))
		}
		return c.JSON(resp)
	}
}

// GET /api/menus/:id
func GetMenuHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cycle models.MenuCycle
		if err := db.Preload("MealSlots.Items").First(&cycle, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Menu cycle not found")
		}
		return c.JSON(cycleResponse(cycle))
	}
}

// PUT /api/menus/:id
// Edits replace the whole cycle: old slots are dropped and the submitted
// ones created, there is no partial diff.
func UpdateMenuHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cycle models.MenuCycle
		if err := db.First(&cycle, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Menu cycle not found")
		}

		var body MenuCycleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		replacement, err := buildCycle(body)
		if err != nil {
			return err
		}

		tx := db.Begin()
		if tx.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not start transaction")
		}

		var slotIDs []uint
		if err := tx.Model(&models.MealSlot{}).Where("menu_cycle_id = ?", cycle.ID).Pluck("id", &slotIDs).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Could not replace menu cycle")
		}
		if len(slotIDs) > 0 {
			if err := tx.Where("meal_slot_id IN ?", slotIDs).Delete(&models.MenuItemLine{}).Error; err != nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusInternalServerError, "Could not replace menu cycle")
			}
			if err := tx.Where("menu_cycle_id = ?", cycle.ID).Delete(&models.MealSlot{}).Error; err != nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusInternalServerError, "Could not replace menu cycle")
			}
		}

		cycle.Name = replacement.Name
		cycle.StartDate = replacement.StartDate
		cycle.EndDate = replacement.EndDate
		cycle.MealSlots = replacement.MealSlots

		if err := tx.Save(&cycle).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update menu cycle")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update menu cycle")
		}

		return c.JSON(cycleResponse(cycle))
	}
}

// DELETE /api/menus/:id
func DeleteMenuHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cycle models.MenuCycle
		if err := db.First(&cycle, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Menu cycle not found")
		}

		if err := db.Select("MealSlots").Delete(&cycle).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete menu cycle")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/menus/generate
// Auto-generates a balanced Monday-to-Friday cycle from the approved
// suppliers' current offers.
func GenerateMenuHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body GenerateMenuRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		startDate, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "start_date must be a YYYY-MM-DD date")
		}

		var approved []models.Supplier
		if err := db.Preload("Products").Where("approved = ?", true).Find(&approved).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load supplier offers")
		}

		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		cycle, err := GenerateWeekly(OffersByCategory(approved), startDate, body.Name, time.Now(), rng)
		if err != nil {
			if errors.Is(err, ErrNotMonday) || errors.Is(err, ErrInsufficientLead) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate menu cycle")
		}

		if err := db.Create(cycle).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save generated menu cycle")
		}

		return c.Status(fiber.StatusCreated).JSON(cycleResponse(*cycle))
	}
}

func cycleResponse(cycle models.MenuCycle) MenuCycleResponse {
	resp := MenuCycleResponse{
		ID:        cycle.ID,
		Name:      cycle.Name,
		StartDate: cycle.StartDate.Format("2006-01-02"),
		EndDate:   cycle.EndDate.Format("2006-01-02"),
		MealSlots: make([]MealSlotResponse, 0, len(cycle.MealSlots)),
	}
	for _, slot := range cycle.MealSlots {
		slotResp := MealSlotResponse{
			ID:          slot.ID,
			Weekday:     slot.Weekday,
			MealType:    slot.MealType,
			Description: slot.Description,
			Items:       make([]MenuItemLineResponse, 0, len(slot.Items)),
		}
		for _, item := range slot.Items {
			slotResp.Items = append(slotResp.Items, MenuItemLineResponse{
				ID:                 item.ID,
				Ingredient:         item.Ingredient,
				ProductID:          item.ProductID,
				QuantityPerServing: item.QuantityPerServing,
			})
		}
		resp.MealSlots = append(resp.MealSlots, slotResp)
	}
	return resp
}
