package provisioning

import (
	"fmt"
	"sort"
	"time"

	"cantina-backend/internal/models"
)

// Adjustment sources selectable for a preview. A committed plan always uses
// real reservations.
const (
	SourceHistory      = "history"
	SourceReservations = "reservations"
)

// Service sequences the provisioning pipeline: needs aggregation, demand
// adjustment, deviation analysis and purchase-order generation. One instance
// per composition root; every call runs to completion synchronously.
type Service struct {
	menus        MenuRepository
	reservations ReservationRepository
	history      HistoricalRepository
	suppliers    SupplierRepository
	catalog      ProductCatalog
	plans        PlanRepository
	orders       OrderRepository
}

func NewService(
	menus MenuRepository,
	reservations ReservationRepository,
	history HistoricalRepository,
	suppliers SupplierRepository,
	catalog ProductCatalog,
	plans PlanRepository,
	orders OrderRepository,
) *Service {
	return &Service{
		menus:        menus,
		reservations: reservations,
		history:      history,
		suppliers:    suppliers,
		catalog:      catalog,
		plans:        plans,
		orders:       orders,
	}
}

type PreviewResult struct {
	Period        string             `json:"period"`
	PlannedNeeds  map[string]int     `json:"planned_needs"`
	AdjustedNeeds map[string]int     `json:"adjusted_needs"`
	Deviations    map[string]float64 `json:"deviations"`
}

type PlanLine struct {
	Product      string  `json:"product"`
	PlannedQty   int     `json:"planned_qty"`
	RealizedQty  int     `json:"realized_qty"`
	DeviationPct float64 `json:"deviation_pct"`
	Alert        bool    `json:"alert"`
}

type DeviationAlert struct {
	Product      string  `json:"product"`
	DeviationPct float64 `json:"deviation_pct"`
	Message      string  `json:"message"`
}

type PlanResult struct {
	Plan          []PlanLine       `json:"plan"`
	Alerts        []DeviationAlert `json:"alerts"`
	TotalProducts int              `json:"total_products"`
	AlertCount    int              `json:"alert_count"`
}

type OrderResult struct {
	CreatedOrders []CreatedOrder `json:"created_orders"`
	Total         int            `json:"total"`
	Errors        []string       `json:"errors"`
}

// ComputeNeeds aggregates the planned baseline for the period.
func (s *Service) ComputeNeeds(start, end time.Time) (map[string]int, error) {
	menus, err := s.menus.ListOverlappingPeriod(start, end)
	if err != nil {
		return nil, err
	}
	return ComputeNeeds(menus, start, end), nil
}

// Preview computes planned and adjusted needs plus deviations without
// persisting anything. source picks the adjustment strategy; the default is
// the historical forecast, used before students have reserved.
func (s *Service) Preview(start, end time.Time, source string) (*PreviewResult, error) {
	menus, err := s.menus.ListOverlappingPeriod(start, end)
	if err != nil {
		return nil, err
	}
	needs := ComputeNeeds(menus, start, end)

	var adjusted map[string]int
	switch source {
	case SourceReservations:
		reservations, err := s.reservations.ListWithinPeriod(start, end)
		if err != nil {
			return nil, err
		}
		adjusted, _ = AdjustWithReservations(needs, reservations)
	default:
		adjusted, err = AdjustWithHistory(menus, start, end, s.history)
		if err != nil {
			return nil, err
		}
	}

	deviations := map[string]float64{}
	for _, product := range unionKeys(needs, adjusted) {
		deviations[product] = round2(Deviation(needs[product], adjusted[product]))
	}

	return &PreviewResult{
		Period:        formatPeriod(start, end),
		PlannedNeeds:  needs,
		AdjustedNeeds: adjusted,
		Deviations:    deviations,
	}, nil
}

// CommitPlan recomputes the production plan from the planned menu and real
// reservations and persists it, replacing all previous plan rows. Returns
// the full plan plus the alert subset.
func (s *Service) CommitPlan(start, end time.Time) (*PlanResult, error) {
	// Full replace, never a merge.
	if err := s.plans.DeleteAll(); err != nil {
		return nil, err
	}

	needs, err := s.ComputeNeeds(start, end)
	if err != nil {
		return nil, err
	}
	reservations, err := s.reservations.ListWithinPeriod(start, end)
	if err != nil {
		return nil, err
	}
	adjusted, _ := AdjustWithReservations(needs, reservations)

	result := &PlanResult{}
	computedAt := time.Now()

	for _, product := range unionKeys(needs, adjusted) {
		planned := needs[product]
		realized := adjusted[product]

		// The alert rule applies to the raw deviation; rounding is only for
		// the stored percentage.
		rawDeviation := Deviation(planned, realized)
		deviation := round2(rawDeviation)
		alert := NeedsAlert(rawDeviation)

		line := PlanLine{
			Product:      product,
			PlannedQty:   planned,
			RealizedQty:  realized,
			DeviationPct: deviation,
			Alert:        alert,
		}
		result.Plan = append(result.Plan, line)

		if alert {
			result.Alerts = append(result.Alerts, DeviationAlert{
				Product:      product,
				DeviationPct: deviation,
				Message:      fmt.Sprintf("deviation of %.1f%% for product %q", deviation, product),
			})
		}

		entry := models.ProductionPlanEntry{
			ProductName:  product,
			PlannedQty:   planned,
			RealizedQty:  realized,
			DeviationPct: deviation,
			Alert:        alert,
			ComputedAt:   computedAt,
		}
		if err := s.plans.Insert(&entry); err != nil {
			return nil, err
		}
	}

	result.TotalProducts = len(result.Plan)
	result.AlertCount = len(result.Alerts)
	return result, nil
}

// GenerateOrders turns the planned baseline (no adjustment) into purchase
// orders to the highest-priority approved suppliers.
func (s *Service) GenerateOrders(start, end, deliveryDate time.Time) (*OrderResult, error) {
	needs, err := s.ComputeNeeds(start, end)
	if err != nil {
		return nil, err
	}

	created, errs, err := s.generateOrders(needs, deliveryDate)
	if err != nil {
		return nil, err
	}

	return &OrderResult{
		CreatedOrders: created,
		Total:         len(created),
		Errors:        errs,
	}, nil
}

// ListPlan returns the currently persisted production plan.
func (s *Service) ListPlan() ([]models.ProductionPlanEntry, error) {
	return s.plans.ListAll()
}

// ListAlerts returns the persisted plan rows that crossed the alert
// threshold.
func (s *Service) ListAlerts() ([]models.ProductionPlanEntry, error) {
	return s.plans.ListAlerts()
}

// ListOrders returns purchase orders, optionally filtered by status.
func (s *Service) ListOrders(status models.OrderStatus) ([]models.PurchaseOrder, error) {
	return s.orders.List(status)
}

// UpdateOrderStatus moves an order through pending -> confirmed -> delivered.
func (s *Service) UpdateOrderStatus(orderID uint, status models.OrderStatus) (*models.PurchaseOrder, error) {
	return s.orders.UpdateStatus(orderID, status)
}

func unionKeys(a, b map[string]int) []string {
	seen := map[string]struct{}{}
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatPeriod(start, end time.Time) string {
	return fmt.Sprintf("%s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
}
