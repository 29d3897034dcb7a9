package provisioning

import (
	"math"
	"time"

	"cantina-backend/internal/models"
)

// AssumedServingSize is how many people one planned slot quantity is assumed
// to feed. Business constant, not configurable.
const AssumedServingSize = 10

// AdjustWithReservations layers real student demand on top of the planned
// baseline: every reservation adds floor(partySize * lineQty/servingSize)
// per ingredient. Returns the adjusted map and a reservations-only map.
// The baseline map is not modified.
func AdjustWithReservations(needs map[string]int, reservations []models.Reservation) (map[string]int, map[string]int) {
	adjusted := make(map[string]int, len(needs))
	for k, v := range needs {
		adjusted[k] = v
	}
	byProduct := map[string]int{}

	for _, res := range reservations {
		for _, item := range res.MealSlot.Items {
			perPerson := float64(item.QuantityPerServing) / AssumedServingSize
			extra := int(math.Floor(float64(res.PartySize) * perPerson))

			byProduct[item.Ingredient] += extra
			adjusted[item.Ingredient] += extra
		}
	}

	return adjusted, byProduct
}

// AdjustWithHistory builds a forecast from historical dish popularity,
// replacing the baseline rather than adding to it. For every date of the
// period and every slot scheduled on that weekday, the ingredient quantity
// is multiplied by the historical reservation count of the slot's exact
// dish description; dishes without history fall back to the plain line
// quantity (one serving).
func AdjustWithHistory(menus []models.MenuCycle, start, end time.Time, history HistoricalRepository) (map[string]int, error) {
	adjusted := map[string]int{}

	for _, cycle := range menus {
		lo := cycle.StartDate
		if start.After(lo) {
			lo = start
		}
		hi := cycle.EndDate
		if end.Before(hi) {
			hi = end
		}

		for d := lo; !d.After(hi); d = d.AddDate(0, 0, 1) {
			wd := WeekdayIndex(d)
			for _, slot := range cycle.MealSlots {
				if slot.Weekday != wd {
					continue
				}

				count, ok, err := history.DishReservationCount(WeekdayName(wd), slot.MealType, slot.Description)
				if err != nil {
					return nil, err
				}

				for _, item := range slot.Items {
					if ok {
						adjusted[item.Ingredient] += item.QuantityPerServing * count
					} else {
						adjusted[item.Ingredient] += item.QuantityPerServing
					}
				}
			}
		}
	}

	return adjusted, nil
}
