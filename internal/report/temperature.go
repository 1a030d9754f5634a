package report

import (
	"math"
	"strconv"
	"time"

	"utreport/pkg/contracts/domain"
)

// TemperatureEstimator derives the ambient-temperature placeholder for a
// date from a cyclic 12-point monthly-mean profile. The value is
// descriptive filler, not a measurement, and must stay deterministic: the
// same date always yields the same figure.
type TemperatureEstimator struct {
	means []float64
}

// NewTemperatureEstimator builds an estimator over a 12-entry table of
// monthly means, January first.
func NewTemperatureEstimator(monthlyMeans []float64) *TemperatureEstimator {
	return &TemperatureEstimator{means: monthlyMeans}
}

// Estimate interpolates between the month's mean and the next month's
// mean by the day's fractional position within its month (December wraps
// to January), adds a deterministic day-keyed perturbation in -2..+2 and
// rounds. An absent date yields "".
func (e *TemperatureEstimator) Estimate(d domain.Date) string {
	if d.IsZero() {
		return ""
	}

	// Day 0 of the following month is the last day of this one, so this
	// carries the leap-year February length for free.
	daysInMonth := time.Date(d.Year, time.Month(d.Month+1), 0, 0, 0, 0, 0, time.UTC).Day()
	frac := float64(d.Day-1) / float64(max(daysInMonth-1, 1))

	current := e.means[d.Month-1]
	next := e.means[d.Month%12]
	base := current + frac*(next-current)

	wiggle := float64((d.Day*37)%5 - 2)
	return strconv.Itoa(int(math.Round(base + wiggle)))
}
