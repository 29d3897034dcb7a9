package reservation

import (
	"cantina-backend/internal/auth"
	"cantina-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateReservationRequest struct {
	MealSlotID uint `json:"meal_slot_id"`
	PartySize  int  `json:"party_size"`
}

type ReservationResponse struct {
	ID          uint   `json:"id"`
	MealSlotID  uint   `json:"meal_slot_id"`
	Description string `json:"description"`
	MealType    string `json:"meal_type"`
	PartySize   int    `json:"party_size"`
	CreatedAt   string `json:"created_at"`
}

// -------------------------
// Reservations
// -------------------------

// POST /api/reservations
func CreateReservationHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body CreateReservationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.PartySize < 1 {
			body.PartySize = 1
		}

		var slot models.MealSlot
		if err := db.First(&slot, body.MealSlotID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Meal slot not found")
		}

		res := models.Reservation{
			UserID:     userID,
			MealSlotID: slot.ID,
			PartySize:  body.PartySize,
		}
		if err := db.Create(&res).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create reservation")
		}
		res.MealSlot = slot

		return c.Status(fiber.StatusCreated).JSON(reservationResponse(res))
	}
}

// GET /api/reservations
func ListMyReservationsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var reservations []models.Reservation
		if err := db.Preload("MealSlot").Where("user_id = ?", userID).Find(&reservations).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list reservations")
		}

		resp := make([]ReservationResponse, 0, len(reservations))
		for _, r := range reservations {
			resp = append(resp, reservationResponse(r))
		}
		return c.JSON(resp)
	}
}

// DELETE /api/reservations/:id
func DeleteReservationHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var res models.Reservation
		if err := db.First(&res, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reservation not found")
		}
		if res.UserID != userID {
			return fiber.NewError(fiber.StatusForbidden, "You can only delete your own reservations")
		}

		if err := db.Delete(&res).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete reservation")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func reservationResponse(r models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:          r.ID,
		MealSlotID:  r.MealSlotID,
		Description: r.MealSlot.Description,
		MealType:    r.MealSlot.MealType,
		PartySize:   r.PartySize,
		CreatedAt:   r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
