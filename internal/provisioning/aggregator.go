package provisioning

import (
	"time"

	"cantina-backend/internal/models"
)

// WeekdayIndex maps a date to the 1..7 weekday convention used by meal
// slots (Monday=1). Slots only carry 1..5.
func WeekdayIndex(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// WeekdayName returns the lowercase weekday name used as the key of the
// historical tables.
var weekdayNames = [8]string{"", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func WeekdayName(index int) string {
	if index < 1 || index > 7 {
		return ""
	}
	return weekdayNames[index]
}

// ComputeNeeds walks every calendar date of the period for every overlapping
// menu cycle and sums the ingredient quantities of the slots scheduled on
// that date's weekday. Each weekday occurrence counts once per date, not
// once per cycle. Missing quantities count as zero. Pure function.
func ComputeNeeds(menus []models.MenuCycle, start, end time.Time) map[string]int {
	needs := map[string]int{}

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
				for _, item := range slot.Items {
					needs[item.Ingredient] += item.QuantityPerServing
				}
			}
		}
	}

	return needs
}
