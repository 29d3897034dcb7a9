package supplier

import (
	"sort"

	"cantina-backend/internal/models"
)

// SortByPriority orders suppliers in place by ascending registration date,
// oldest first. Equal registration dates fall back to ascending supplier id
// so the ordering stays a deterministic total order.
func SortByPriority(suppliers []models.Supplier) {
	sort.SliceStable(suppliers, func(i, j int) bool {
		if !suppliers[i].RegistrationDate.Equal(suppliers[j].RegistrationDate) {
			return suppliers[i].RegistrationDate.Before(suppliers[j].RegistrationDate)
		}
		return suppliers[i].ID < suppliers[j].ID
	})
}

// ProductOrdering buckets approved suppliers by offered product name and
// sorts every bucket by priority. A supplier's rank for a product is its
// 1-based position in the bucket. Recomputed on every call, never cached.
func ProductOrdering(approved []models.Supplier) map[string][]models.Supplier {
	buckets := map[string][]models.Supplier{}

	for _, s := range approved {
		for _, p := range s.Products {
			buckets[p.Name] = append(buckets[p.Name], s)
		}
	}

	for name := range buckets {
		SortByPriority(buckets[name])
	}

	return buckets
}
