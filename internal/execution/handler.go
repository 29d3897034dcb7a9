package execution

import (
	"time"

	"cantina-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Meal execution records: what was produced, served and left over when a
// planned meal slot actually ran. Waste reporting consumes these elsewhere.

type CreateExecutionRequest struct {
	MealSlotID    uint   `json:"meal_slot_id"`
	ExecutionDate string `json:"execution_date"`
	ProducedQty   int    `json:"produced_qty"`
	ServedQty     int    `json:"served_qty"`
	UnservedQty   int    `json:"unserved_qty"`
}

type ExecutionResponse struct {
	ID            uint   `json:"id"`
	MealSlotID    uint   `json:"meal_slot_id"`
	ExecutionDate string `json:"execution_date"`
	ProducedQty   int    `json:"produced_qty"`
	ServedQty     int    `json:"served_qty"`
	UnservedQty   int    `json:"unserved_qty"`
}

// POST /api/meal-executions
func CreateExecutionHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateExecutionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		executionDate, err := time.Parse("2006-01-02", body.ExecutionDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "execution_date must be a YYYY-MM-DD date")
		}
		if body.ProducedQty < 0 || body.ServedQty < 0 || body.UnservedQty < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantities must not be negative")
		}

		var slot models.MealSlot
		if err := db.First(&slot, body.MealSlotID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Meal slot not found")
		}

		exec := models.MealExecution{
			MealSlotID:    slot.ID,
			ExecutionDate: executionDate,
			ProducedQty:   body.ProducedQty,
			ServedQty:     body.ServedQty,
			UnservedQty:   body.UnservedQty,
		}
		if err := db.Create(&exec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create execution record")
		}

		return c.Status(fiber.StatusCreated).JSON(executionResponse(exec))
	}
}

// GET /api/meal-executions?start=...&end=...
func ListExecutionsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := db.Order("execution_date asc")

		if startStr := c.Query("start"); startStr != "" {
			start, err := time.Parse("2006-01-02", startStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "start must be a YYYY-MM-DD date")
			}
			end, err := time.Parse("2006-01-02", c.Query("end"))
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "end must be a YYYY-MM-DD date")
			}
			q = q.Where("execution_date BETWEEN ? AND ?", start, end)
		}

		var executions []models.MealExecution
		if err := q.Find(&executions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list execution records")
		}

		resp := make([]ExecutionResponse, 0, len(executions))
		for _, e := range executions {
			resp = append(resp, executionResponse(e))
		}
		return c.JSON(resp)
	}
}

// DELETE /api/meal-executions/:id
func DeleteExecutionHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var exec models.MealExecution
		if err := db.First(&exec, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Execution record not found")
		}

		if err := db.Delete(&exec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete execution record")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func executionResponse(e models.MealExecution) ExecutionResponse {
	return ExecutionResponse{
		ID:            e.ID,
		MealSlotID:    e.MealSlotID,
		ExecutionDate: e.ExecutionDate.Format("2006-01-02"),
		ProducedQty:   e.ProducedQty,
		ServedQty:     e.ServedQty,
		UnservedQty:   e.UnservedQty,
	}
}
