package menu

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"cantina-backend/internal/models"
	"cantina-backend/internal/provisioning"
)

// MinLeadDays is the minimum number of days between today and the start of
// an auto-generated menu cycle.
const MinLeadDays = 7

var (
	ErrNotMonday        = errors.New("the menu cycle must start on a Monday")
	ErrInsufficientLead = errors.New("the menu cycle must be created at least 7 days in advance")
)

// Per-serving quantities of an auto-generated slot, in kg.
const (
	proteinQty   = 5
	vegetableQty = 3
	cerealQty    = 4
	fruitQty     = 2
	dairyQty     = 2
)

var weekdayLabels = [6]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// OffersByCategory groups the approved suppliers' product offers by
// normalized category name.
func OffersByCategory(suppliers []models.Supplier) map[string][]models.SupplierProduct {
	byCategory := map[string][]models.SupplierProduct{}
	for _, s := range suppliers {
		for _, p := range s.Products {
			category := strings.ToLower(p.Category)
			if category == "" {
				category = "uncategorized"
			}
			byCategory[category] = append(byCategory[category], p)
		}
	}
	return byCategory
}

// GenerateWeekly builds a balanced Monday-to-Friday cycle, two meals per
// day, out of the products currently offered by approved suppliers. The
// cycle must start on a Monday and be requested at least MinLeadDays ahead;
// both violations reject the call before anything is generated.
func GenerateWeekly(offers map[string][]models.SupplierProduct, startDate time.Time, name string, today time.Time, rng *rand.Rand) (*models.MenuCycle, error) {
	if provisioning.WeekdayIndex(startDate) != 1 {
		return nil, ErrNotMonday
	}
	if startDate.Sub(today).Hours() < MinLeadDays*24 {
		return nil, ErrInsufficientLead
	}

	endDate := startDate.AddDate(0, 0, 4)
	if name == "" {
		name = fmt.Sprintf("Menu %s - %s", startDate.Format("02/01/2006"), endDate.Format("02/01/2006"))
	}

	cycle := &models.MenuCycle{
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
	}

	for day := 1; day <= 5; day++ {
		cycle.MealSlots = append(cycle.MealSlots,
			generateSlot(day, models.MealLunch, offers, rng),
			generateSlot(day, models.MealDinner, offers, rng),
		)
	}

	return cycle, nil
}

func generateSlot(weekday int, mealType string, offers map[string][]models.SupplierProduct, rng *rand.Rand) models.MealSlot {
	var items []models.MenuItemLine
	var parts []string

	add := func(p models.SupplierProduct, qty int) {
		productID := p.ID
		items = append(items, models.MenuItemLine{
			Ingredient:         p.Name,
			ProductID:          &productID,
			QuantityPerServing: qty,
		})
		parts = append(parts, p.Name)
	}

	if proteins := offers["protein"]; len(proteins) > 0 {
		add(proteins[rng.Intn(len(proteins))], proteinQty)
	}

	if vegetables := offers["vegetable"]; len(vegetables) > 0 {
		for _, v := range sample(vegetables, 2, rng) {
			add(v, vegetableQty)
		}
	}

	if cereals := offers["cereal"]; len(cereals) > 0 {
		add(cereals[rng.Intn(len(cereals))], cerealQty)
	}

	// Fruit closes a lunch, dairy a dinner.
	if mealType == models.MealLunch {
		if fruits := offers["fruit"]; len(fruits) > 0 {
			add(fruits[rng.Intn(len(fruits))], fruitQty)
		}
	} else {
		if dairy := offers["dairy"]; len(dairy) > 0 {
			add(dairy[rng.Intn(len(dairy))], dairyQty)
		}
	}

	label := fmt.Sprintf("%s - %s", weekdayLabels[weekday], mealTitle(mealType))
	description := label
	if len(parts) > 0 {
		description = label + ": " + strings.Join(parts, " with ")
	}

	return models.MealSlot{
		Weekday:     weekday,
		MealType:    mealType,
		Description: description,
		Items:       items,
	}
}

func sample(offers []models.SupplierProduct, n int, rng *rand.Rand) []models.SupplierProduct {
	if n > len(offers) {
		n = len(offers)
	}
	picked := make([]models.SupplierProduct, len(offers))
	copy(picked, offers)
	rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:n]
}

func mealTitle(mealType string) string {
	if mealType == models.MealDinner {
		return "Dinner"
	}
	return "Lunch"
}
