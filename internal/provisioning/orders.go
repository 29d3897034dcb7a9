package provisioning

import (
	"fmt"
	"sort"
	"time"

	"cantina-backend/internal/models"
	"cantina-backend/internal/supplier"
)

// CreatedOrder is the caller-facing shape of one generated purchase order.
type CreatedOrder struct {
	Product      string             `json:"product"`
	Quantity     int                `json:"quantity"`
	SupplierName string             `json:"supplier_name"`
	PriorityRank int                `json:"priority_rank"`
	Status       models.OrderStatus `json:"status"`
}

// generateOrders emits one pending purchase order per needed product,
// addressed to the highest-priority approved supplier offering it. Products
// that cannot be resolved are reported as per-product errors; the batch
// never aborts.
func (s *Service) generateOrders(needs map[string]int, deliveryDate time.Time) ([]CreatedOrder, []string, error) {
	approved, err := s.suppliers.ListApproved()
	if err != nil {
		return nil, nil, err
	}
	supplier.SortByPriority(approved)

	products := make([]string, 0, len(needs))
	for name := range needs {
		products = append(products, name)
	}
	sort.Strings(products)

	var created []CreatedOrder
	var errs []string

	for _, name := range products {
		quantity := needs[name]

		offers, err := s.catalog.FindByExactName(name)
		if err != nil {
			return nil, nil, err
		}
		if len(offers) == 0 {
			// Fallback substring match, see the catalog contract.
			offers, err = s.catalog.FindByNameLike(name)
			if err != nil {
				return nil, nil, err
			}
		}
		if len(offers) == 0 {
			errs = append(errs, fmt.Sprintf("product %q not found in catalog", name))
			continue
		}

		offerBySupplier := map[uint]models.SupplierProduct{}
		for _, offer := range offers {
			if _, seen := offerBySupplier[offer.SupplierID]; !seen {
				offerBySupplier[offer.SupplierID] = offer
			}
		}

		// First approved supplier in priority order that offers the product.
		// The rank recorded on the order is that supplier's position in the
		// full approved ordering.
		var chosen *models.Supplier
		rank := 0
		for i := range approved {
			if _, offersIt := offerBySupplier[approved[i].ID]; offersIt {
				chosen = &approved[i]
				rank = i + 1
				break
			}
		}
		if chosen == nil {
			errs = append(errs, fmt.Sprintf("no approved supplier for product %q", name))
			continue
		}

		offer := offerBySupplier[chosen.ID]
		order := models.PurchaseOrder{
			SupplierID:   chosen.ID,
			ProductID:    offer.ID,
			Quantity:     quantity,
			DeliveryDate: deliveryDate,
			Status:       models.OrderPending,
			PriorityRank: rank,
		}
		if err := s.orders.Insert(&order); err != nil {
			return nil, nil, err
		}

		created = append(created, CreatedOrder{
			Product:      name,
			Quantity:     quantity,
			SupplierName: chosen.Name,
			PriorityRank: rank,
			Status:       order.Status,
		})
	}

	return created, errs, nil
}
