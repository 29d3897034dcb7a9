package provisioning

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"cantina-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// -------------------------
// Request/Response Types
// -------------------------

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

type OrderResponse struct {
	ID           uint               `json:"id"`
	Supplier     string             `json:"supplier"`
	Product      string             `json:"product"`
	Quantity     int                `json:"quantity"`
	DeliveryDate string             `json:"delivery_date"`
	Status       models.OrderStatus `json:"status"`
	PriorityRank int                `json:"priority_rank"`
}

type PlanEntryResponse struct {
	ID           uint    `json:"id"`
	Product      string  `json:"product"`
	PlannedQty   int     `json:"planned_qty"`
	RealizedQty  int     `json:"realized_qty"`
	DeviationPct float64 `json:"deviation_pct"`
	Alert        bool    `json:"alert"`
	ComputedAt   string  `json:"computed_at"`
}

func parsePeriod(c *fiber.Ctx) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "start must be a YYYY-MM-DD date")
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "end must be a YYYY-MM-DD date")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "end must not be before start")
	}
	return start, end, nil
}

// -------------------------
// Handlers
// -------------------------

// GET /api/provisioning/needs?start=...&end=...
func NeedsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parsePeriod(c)
		if err != nil {
			return err
		}

		needs, err := svc.ComputeNeeds(start, end)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute needs")
		}

		return c.JSON(fiber.Map{
			"period":         formatPeriod(start, end),
			"needs":          needs,
			"total_products": len(needs),
		})
	}
}

// GET /api/provisioning/preview?start=...&end=...&source=history|reservations
func PreviewHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parsePeriod(c)
		if err != nil {
			return err
		}

		source := c.Query("source", SourceHistory)
		if source != SourceHistory && source != SourceReservations {
			return fiber.NewError(fiber.StatusBadRequest, "source must be 'history' or 'reservations'")
		}

		preview, err := svc.Preview(start, end, source)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute preview")
		}

		return c.JSON(preview)
	}
}

// POST /api/provisioning/plan?start=...&end=...
func CommitPlanHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parsePeriod(c)
		if err != nil {
			return err
		}

		result, err := svc.CommitPlan(start, end)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute the production plan")
		}

		return c.JSON(fiber.Map{
			"success":        true,
			"period":         formatPeriod(start, end),
			"plan":           result.Plan,
			"alerts":         result.Alerts,
			"total_products": result.TotalProducts,
			"alert_count":    result.AlertCount,
		})
	}
}

// GET /api/provisioning/plan
func ListPlanHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := svc.ListPlan()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list the production plan")
		}
		return c.JSON(planEntryResponses(entries))
	}
}

// GET /api/provisioning/alerts
func ListAlertsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := svc.ListAlerts()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list alerts")
		}

		return c.JSON(fiber.Map{
			"total_alerts": len(entries),
			"alerts":       planEntryResponses(entries),
		})
	}
}

// POST /api/provisioning/orders?start=...&end=...&delivery_date=...
func GenerateOrdersHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parsePeriod(c)
		if err != nil {
			return err
		}
		deliveryDate, err := time.Parse("2006-01-02", c.Query("delivery_date"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "delivery_date must be a YYYY-MM-DD date")
		}

		result, err := svc.GenerateOrders(start, end, deliveryDate)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate purchase orders")
		}

		return c.JSON(fiber.Map{
			"success":        true,
			"period":         formatPeriod(start, end),
			"delivery_date":  deliveryDate.Format("2006-01-02"),
			"created_orders": result.CreatedOrders,
			"total":          result.Total,
			"errors":         result.Errors,
		})
	}
}

// GET /api/provisioning/orders?status=pending|confirmed|delivered
func ListOrdersHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := models.OrderStatus(c.Query("status"))
		if status != "" && !models.ValidOrderStatus(status) {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown order status")
		}

		orders, err := svc.ListOrders(status)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list purchase orders")
		}

		resp := make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			resp = append(resp, OrderResponse{
				ID:           o.ID,
				Supplier:     o.Supplier.Name,
				Product:      o.Product.Name,
				Quantity:     o.Quantity,
				DeliveryDate: o.DeliveryDate.Format("2006-01-02"),
				Status:       o.Status,
				PriorityRank: o.PriorityRank,
			})
		}

		return c.JSON(fiber.Map{
			"total":  len(resp),
			"orders": resp,
		})
	}
}

// PUT /api/provisioning/orders/:id/status
func UpdateOrderStatusHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderID, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid order id")
		}

		var body UpdateOrderStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if !models.ValidOrderStatus(body.Status) {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Status must be one of %s, %s, %s", models.OrderPending, models.OrderConfirmed, models.OrderDelivered))
		}

		order, err := svc.UpdateOrderStatus(uint(orderID), body.Status)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Purchase order not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update the purchase order")
		}

		return c.JSON(fiber.Map{
			"success":  true,
			"order_id": order.ID,
			"status":   order.Status,
		})
	}
}

func planEntryResponses(entries []models.ProductionPlanEntry) []PlanEntryResponse {
	resp := make([]PlanEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, PlanEntryResponse{
			ID:           e.ID,
			Product:      e.ProductName,
			PlannedQty:   e.PlannedQty,
			RealizedQty:  e.RealizedQty,
			DeviationPct: e.DeviationPct,
			Alert:        e.Alert,
			ComputedAt:   e.ComputedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return resp
}
