package provisioning

import "math"

// DeviationAlertThreshold is the fixed percentage above which a deviation
// raises an alert. Strictly greater: exactly 10% does not alert.
const DeviationAlertThreshold = 10.0

// Deviation returns the signed percentage difference between planned and
// realized quantity. A zero plan with realized demand reads as 100% so that
// unplanned demand still surfaces; zero against zero is 0%.
func Deviation(planned, realized int) float64 {
	if planned == 0 {
		if realized > 0 {
			return 100.0
		}
		return 0.0
	}
	return (float64(realized-planned) / float64(planned)) * 100
}

// NeedsAlert applies the fixed alert rule to a deviation percentage.
func NeedsAlert(deviation float64) bool {
	return math.Abs(deviation) > DeviationAlertThreshold
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
