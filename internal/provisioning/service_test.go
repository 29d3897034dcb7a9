package provisioning

import (
	"errors"
	"strings"
	"testing"
	"time"

	"cantina-backend/internal/models"
)

type fakeMenus struct {
	cycles []models.MenuCycle
}

func (f *fakeMenus) ListOverlappingPeriod(start, end time.Time) ([]models.MenuCycle, error) {
	return f.cycles, nil
}

type fakeReservations struct {
	reservations []models.Reservation
}

func (f *fakeReservations) ListWithinPeriod(start, end time.Time) ([]models.Reservation, error) {
	return f.reservations, nil
}

type fakeSuppliers struct {
	approved []models.Supplier
}

func (f *fakeSuppliers) ListApproved() ([]models.Supplier, error) {
	return f.approved, nil
}

type fakeCatalog struct {
	offers []models.SupplierProduct
}

func (f *fakeCatalog) FindByExactName(name string) ([]models.SupplierProduct, error) {
	var out []models.SupplierProduct
	for _, o := range f.offers {
		if o.Name == name {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindByNameLike(name string) ([]models.SupplierProduct, error) {
	var out []models.SupplierProduct
	for _, o := range f.offers {
		if strings.Contains(strings.ToLower(o.Name), strings.ToLower(name)) {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakePlans struct {
	entries []models.ProductionPlanEntry
	nextID  uint
}

func (f *fakePlans) DeleteAll() error {
	f.entries = nil
	return nil
}

func (f *fakePlans) Insert(entry *models.ProductionPlanEntry) error {
	f.nextID++
	entry.ID = f.nextID
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakePlans) ListAll() ([]models.ProductionPlanEntry, error) {
	return f.entries, nil
}

func (f *fakePlans) ListAlerts() ([]models.ProductionPlanEntry, error) {
	var out []models.ProductionPlanEntry
	for _, e := range f.entries {
		if e.Alert {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeOrders struct {
	orders []models.PurchaseOrder
	nextID uint
}

func (f *fakeOrders) Insert(order *models.PurchaseOrder) error {
	f.nextID++
	order.ID = f.nextID
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrders) List(status models.OrderStatus) ([]models.PurchaseOrder, error) {
	if status == "" {
		return f.orders, nil
	}
	var out []models.PurchaseOrder
	for _, o := range f.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) UpdateStatus(orderID uint, status models.OrderStatus) (*models.PurchaseOrder, error) {
	for i := range f.orders {
		if f.orders[i].ID == orderID {
			f.orders[i].Status = status
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, errors.New("order not found")
}

type serviceFixture struct {
	svc          *Service
	menus        *fakeMenus
	reservations *fakeReservations
	history      *fakeHistory
	plans        *fakePlans
	orders       *fakeOrders
	catalog      *fakeCatalog
	suppliers    *fakeSuppliers
}

func newFixture() *serviceFixture {
	f := &serviceFixture{
		menus:        &fakeMenus{},
		reservations: &fakeReservations{},
		history:      &fakeHistory{counts: map[string]int{}},
		suppliers:    &fakeSuppliers{},
		catalog:      &fakeCatalog{},
		plans:        &fakePlans{},
		orders:       &fakeOrders{},
	}
	f.svc = NewService(f.menus, f.reservations, f.history, f.suppliers, f.catalog, f.plans, f.orders)
	return f
}

func TestPreviewPersistsNothing(t *testing.T) {
	f := newFixture()
	f.menus.cycles = []models.MenuCycle{weeklyCycle(
		date(2025, time.June, 2), date(2025, time.June, 6),
		lunchSlot(1, "Soup", line("carrot", 5)),
	)}

	result, err := f.svc.Preview(date(2025, time.June, 2), date(2025, time.June, 6), SourceHistory)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	if result.PlannedNeeds["carrot"] != 5 {
		t.Errorf("planned carrot = %d, want 5", result.PlannedNeeds["carrot"])
	}
	// No history: forecast falls back to the baseline, zero deviation.
	if result.AdjustedNeeds["carrot"] != 5 {
		t.Errorf("adjusted carrot = %d, want 5", result.AdjustedNeeds["carrot"])
	}
	if result.Deviations["carrot"] != 0 {
		t.Errorf("deviation carrot = %v, want 0", result.Deviations["carrot"])
	}
	if result.Period != "2025-06-02 to 2025-06-06" {
		t.Errorf("period = %q", result.Period)
	}

	if len(f.plans.entries) != 0 {
		t.Errorf("preview persisted %d plan entries", len(f.plans.entries))
	}
	if len(f.orders.orders) != 0 {
		t.Errorf("preview persisted %d orders", len(f.orders.orders))
	}
}

func TestPreviewWithReservationsSource(t *testing.T) {
	f := newFixture()
	slot := lunchSlot(1, "Soup", line("carrot", 10))
	f.menus.cycles = []models.MenuCycle{weeklyCycle(
		date(2025, time.June, 2), date(2025, time.June, 6), slot,
	)}
	f.reservations.reservations = []models.Reservation{reservationFor(slot, 20)}

	result, err := f.svc.Preview(date(2025, time.June, 2), date(2025, time.June, 6), SourceReservations)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	// 10 planned + floor(20 * 10/10) = 30.
	if result.AdjustedNeeds["carrot"] != 30 {
		t.Errorf("adjusted carrot = %d, want 30", result.AdjustedNeeds["carrot"])
	}
	if result.Deviations["carrot"] != 200 {
		t.Errorf("deviation carrot = %v, want 200", result.Deviations["carrot"])
	}
}

func TestCommitPlanReplacesPreviousPlan(t *testing.T) {
	f := newFixture()
	f.plans.entries = []models.ProductionPlanEntry{{ProductName: "stale", PlannedQty: 99}}

	slot := lunchSlot(1, "Soup", line("carrot", 10))
	f.menus.cycles = []models.MenuCycle{weeklyCycle(
		date(2025, time.June, 2), date(2025, time.June, 6), slot,
	)}

	result, err := f.svc.CommitPlan(date(2025, time.June, 2), date(2025, time.June, 6))
	if err != nil {
		t.Fatalf("CommitPlan failed: %v", err)
	}

	if result.TotalProducts != 1 {
		t.Fatalf("total products = %d, want 1", result.TotalProducts)
	}
	if len(f.plans.entries) != 1 || f.plans.entries[0].ProductName != "carrot" {
		t.Errorf("persisted plan = %+v, want single carrot row", f.plans.entries)
	}
}

func TestCommitPlanIdempotentForUnchangedInputs(t *testing.T) {
	f := newFixture()
	slot := lunchSlot(1, "Soup", line("carrot", 10), line("onion", 4))
	f.menus.cycles = []models.MenuCycle{weeklyCycle(
		date(2025, time.June, 2), date(2025, time.June, 6), slot,
	)}
	f.reservations.reservations = []models.Reservation{reservationFor(slot, 15)}

	if _, err := f.svc.CommitPlan(date(2025, time.June, 2), date(2025, time.June, 6)); err != nil {
		t.Fatalf("first CommitPlan failed: %v", err)
	}
	first := append([]models.ProductionPlanEntry(nil), f.plans.entries...)

	if _, err := f.svc.CommitPlan(date(2025, time.June, 2), date(2025, time.June, 6)); err != nil {
		t.Fatalf("second CommitPlan failed: %v", err)
	}
	second := f.plans.entries

	if len(first) != len(second) {
		t.Fatalf("row count changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.ProductName != b.ProductName || a.PlannedQty != b.PlannedQty ||
			a.RealizedQty != b.RealizedQty || a.DeviationPct != b.DeviationPct || a.Alert != b.Alert {
			t.Errorf("row %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestCommitPlanAlertBoundary(t *testing.T) {
	// Exactly +10% must not alert, anything above must.
	f := newFixture()
	slot := lunchSlot(1, "Soup", line("carrot", 100), line("onion", 10))
	f.menus.cycles = []models.MenuCycle{weeklyCycle(
		date(2025, time.June, 2), date(2025, time.June, 6), slot,
	)}
	// One reservation of party 1: carrot +floor(1*10)=10 (exactly 10%),
	// onion +floor(1*1)=1 (exactly 10%). Party of 2 on a second reservation
	// would push past the threshold, so add one for carrot only via a
	// carrot-specific slot.
	carrotOnly := lunchSlot(1, "Soup", line("carrot", 100))
	f.reservations.reservations = []models.Reservation{
		reservationFor(slot, 1),
		reservationFor(carrotOnly, 1),
	}

	result, err := f.svc.CommitPlan(date(2025, time.June, 2), date(2025, time.June, 6))
	if err != nil {
		t.Fatalf("CommitPlan failed: %v", err)
	}

	byProduct := map[string]PlanLine{}
	for _, l := range result.Plan {
		byProduct[l.Product] = l
	}

	carrot := byProduct["carrot"]
	if carrot.DeviationPct != 20 || !carrot.Alert {
		t.Errorf("carrot line = %+v, want +20%% with alert", carrot)
	}
	onion := byProduct["onion"]
	if onion.DeviationPct != 10 || onion.Alert {
		t.Errorf("onion line = %+v, want +10%% without alert", onion)
	}

	if result.AlertCount != 1 || len(result.Alerts) != 1 {
		t.Fatalf("alert count = %d, want 1", result.AlertCount)
	}
	if result.Alerts[0].Message != `deviation of 20.0% for product "carrot"` {
		t.Errorf("alert message = %q", result.Alerts[0].Message)
	}

	alerts, err := f.svc.ListAlerts()
	if err != nil {
		t.Fatalf("ListAlerts failed: %v", err)
	}
	if len(alerts) != 1 || alerts[0].ProductName != "carrot" {
		t.Errorf("persisted alerts = %+v", alerts)
	}
}

func TestCommitPlanAlertsOnRawDeviationBeforeRounding(t *testing.T) {
	// Raw deviation 1000/9999 = 10.001%, which rounds to 10.00 for storage
	// but still crosses the strictly-greater-than-10 rule.
	f := newFixture()
	f.menus.cycles = []models.MenuCycle{weeklyCycle(
		date(2025, time.June, 2), date(2025, time.June, 6),
		lunchSlot(1, "Bread", line("flour", 9999)),
	)}
	extra := lunchSlot(1, "Bread", line("flour", 10000))
	f.reservations.reservations = []models.Reservation{reservationFor(extra, 1)}

	result, err := f.svc.CommitPlan(date(2025, time.June, 2), date(2025, time.June, 6))
	if err != nil {
		t.Fatalf("CommitPlan failed: %v", err)
	}

	if len(result.Plan) != 1 {
		t.Fatalf("plan has %d lines, want 1", len(result.Plan))
	}
	flour := result.Plan[0]
	if flour.RealizedQty != 10999 {
		t.Fatalf("realized = %d, want 10999", flour.RealizedQty)
	}
	if flour.DeviationPct != 10 {
		t.Errorf("stored deviation = %v, want the rounded 10", flour.DeviationPct)
	}
	if !flour.Alert {
		t.Errorf("deviation just above 10%% must alert even though it rounds to 10.00")
	}
	if len(f.plans.entries) != 1 || !f.plans.entries[0].Alert {
		t.Errorf("persisted entry = %+v, want alert set", f.plans.entries)
	}
}

func TestCommitPlanKeepsUnplannedAndUnrealizedProducts(t *testing.T) {
	f := newFixture()
	planned := lunchSlot(1, "Planned only", line("beans", 10))
	f.menus.cycles = []models.MenuCycle{weeklyCycle(
		date(2025, time.June, 2), date(2025, time.June, 6), planned,
	)}
	// Reservation against a slot outside the planned baseline.
	offPlan := lunchSlot(1, "Off plan", line("cheese", 30))
	f.reservations.reservations = []models.Reservation{reservationFor(offPlan, 10)}

	result, err := f.svc.CommitPlan(date(2025, time.June, 2), date(2025, time.June, 6))
	if err != nil {
		t.Fatalf("CommitPlan failed: %v", err)
	}

	if result.TotalProducts != 2 {
		t.Fatalf("total products = %d, want 2", result.TotalProducts)
	}
	// Union keys come back sorted.
	if result.Plan[0].Product != "beans" || result.Plan[1].Product != "cheese" {
		t.Errorf("plan order = %q, %q", result.Plan[0].Product, result.Plan[1].Product)
	}
	cheese := result.Plan[1]
	if cheese.PlannedQty != 0 || cheese.RealizedQty != 30 || cheese.DeviationPct != 100 || !cheese.Alert {
		t.Errorf("cheese line = %+v, want planned 0, realized 30, +100%% alert", cheese)
	}
}

func supplierWithOffers(id uint, name string, registered time.Time, products ...string) models.Supplier {
	s := models.Supplier{ID: id, Name: name, RegistrationDate: registered, Approved: true}
	for i, p := range products {
		s.Products = append(s.Products, models.SupplierProduct{
			ID:         id*100 + uint(i),
			SupplierID: id,
			Name:       p,
		})
	}
	return s
}

func TestGenerateOrdersPicksHighestPrioritySupplier(t *testing.T) {
	f := newFixture()
	f.menus.cycles = []models.MenuCycle{weeklyCycle(
		date(2025, time.June, 2), date(2025, time.June, 6),
		lunchSlot(1, "Soup", line("carrot", 10)),
	)}

	older := supplierWithOffers(2, "Quinta Velha", date(2020, time.January, 10), "carrot")
	newer := supplierWithOffers(1, "Quinta Nova", date(2023, time.March, 1), "carrot")
	f.suppliers.approved = []models.Supplier{newer, older}
	f.catalog.offers = append(older.Products, newer.Products...)

	delivery := date(2025, time.June, 9)
	result, err := f.svc.GenerateOrders(date(2025, time.June, 2), date(2025, time.June, 6), delivery)
	if err != nil {
		t.Fatalf("GenerateOrders failed: %v", err)
	}

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Total != 1 {
		t.Fatalf("total = %d, want 1", result.Total)
	}

	order := result.CreatedOrders[0]
	if order.SupplierName != "Quinta Velha" {
		t.Errorf("supplier = %q, want the earliest-registered one", order.SupplierName)
	}
	if order.PriorityRank != 1 {
		t.Errorf("priority rank = %d, want 1", order.PriorityRank)
	}
	if order.Status != models.OrderPending {
		t.Errorf("status = %q, want pending", order.Status)
	}

	if len(f.orders.orders) != 1 {
		t.Fatalf("persisted %d orders, want 1", len(f.orders.orders))
	}
	persisted := f.orders.orders[0]
	if persisted.SupplierID != older.ID || persisted.Quantity != 10 || !persisted.DeliveryDate.Equal(delivery) {
		t.Errorf("persisted order = %+v", persisted)
	}
}

func TestGenerateOrdersRanksLowerPrioritySupplier(t *testing.T) {
	f := newFixture()
	f.menus.cycles = []models.MenuCycle{weeklyCycle(
		date(2025, time.June, 2), date(2025, time.June, 6),
		lunchSlot(1, "Soup", line("onion", 4)),
	)}

	// The oldest supplier does not offer onions; the chosen one keeps its
	// rank in the overall ordering.
	older := supplierWithOffers(2, "Quinta Velha", date(2020, time.January, 10), "carrot")
	newer := supplierWithOffers(1, "Quinta Nova", date(2023, time.March, 1), "onion")
	f.suppliers.approved = []models.Supplier{newer, older}
	f.catalog.offers = append(older.Products, newer.Products...)

	result, err := f.svc.GenerateOrders(date(2025, time.June, 2), date(2025, time.June, 6), date(2025, time.June, 9))
	if err != nil {
		t.Fatalf("GenerateOrders failed: %v", err)
	}

	if result.Total != 1 {
		t.Fatalf("total = %d, want 1", result.Total)
	}
	order := result.CreatedOrders[0]
	if order.SupplierName != "Quinta Nova" || order.PriorityRank != 2 {
		t.Errorf("order = %+v, want Quinta Nova at rank 2", order)
	}
}

func TestGenerateOrdersSubstringFallback(t *testing.T) {
	f := newFixture()
	f.menus.cycles = []models.MenuCycle{weeklyCycle(
		date(2025, time.June, 2), date(2025, time.June, 6),
		lunchSlot(1, "Soup", line("tomato", 6)),
	)}

	s := supplierWithOffers(1, "Quinta Nova", date(2023, time.March, 1), "cherry tomato")
	f.suppliers.approved = []models.Supplier{s}
	f.catalog.offers = s.Products

	result, err := f.svc.GenerateOrders(date(2025, time.June, 2), date(2025, time.June, 6), date(2025, time.June, 9))
	if err != nil {
		t.Fatalf("GenerateOrders failed: %v", err)
	}

	if result.Total != 1 || len(result.Errors) != 0 {
		t.Fatalf("result = %+v, want one order via substring match", result)
	}
}

func TestGenerateOrdersReportsUnresolvableProducts(t *testing.T) {
	f := newFixture()
	f.menus.cycles = []models.MenuCycle{weeklyCycle(
		date(2025, time.June, 2), date(2025, time.June, 6),
		lunchSlot(1, "Soup", line("saffron", 1), line("carrot", 10)),
	)}

	// Carrot is in the catalog but only offered by a supplier missing from
	// the approved set; saffron is absent entirely.
	unapproved := supplierWithOffers(7, "Quinta Parada", date(2019, time.May, 1), "carrot")
	f.catalog.offers = unapproved.Products

	result, err := f.svc.GenerateOrders(date(2025, time.June, 2), date(2025, time.June, 6), date(2025, time.June, 9))
	if err != nil {
		t.Fatalf("GenerateOrders failed: %v", err)
	}

	if result.Total != 0 {
		t.Fatalf("total = %d, want 0", result.Total)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("errors = %v, want 2", result.Errors)
	}
	// Products are processed in sorted order.
	if result.Errors[0] != `no approved supplier for product "carrot"` {
		t.Errorf("error[0] = %q", result.Errors[0])
	}
	if result.Errors[1] != `product "saffron" not found in catalog` {
		t.Errorf("error[1] = %q", result.Errors[1])
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newFixture()
	f.orders.Insert(&models.PurchaseOrder{Status: models.OrderPending})

	updated, err := f.svc.UpdateOrderStatus(1, models.OrderConfirmed)
	if err != nil {
		t.Fatalf("UpdateOrderStatus failed: %v", err)
	}
	if updated.Status != models.OrderConfirmed {
		t.Errorf("status = %q, want confirmed", updated.Status)
	}

	pending, err := f.svc.ListOrders(models.OrderPending)
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending orders = %d, want 0", len(pending))
	}
}
