package services

import (
	"math"

	"github.com/sirupsen/logrus"
)

// CalculateAppliedPrice applies a percentage reduction to a nightly base price.
// The reduction is clamped to [0, 100] and the result rounded to cents.
// Non-finite input falls back to the base price unchanged.
func CalculateAppliedPrice(base, reduction float64) float64 {
	if math.IsNaN(base) || math.IsInf(base, 0) || math.IsNaN(reduction) || math.IsInf(reduction, 0) {
		logrus.WithFields(logrus.Fields{"base": base, "reduction": reduction}).
			Warn("non-numeric pricing input, keeping base price")
		return base
	}
	reduction = math.Max(0, math.Min(100, reduction))
	return roundCents(base * (1 - reduction/100))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
