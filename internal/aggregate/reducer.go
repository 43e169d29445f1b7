// ABOUTME: Per-day weight reduction: one reading per civil date, latest wins.
// ABOUTME: Identical instants keep the first reading seen in input order.
package aggregate

import (
	"github.com/harperreed/lifeops/internal/models"
)

// Reducer collapses same-day weight readings.
type Reducer struct {
	norm *Normalizer
}

// NewReducer returns a Reducer keyed on norm's civil dates.
func NewReducer(norm *Normalizer) *Reducer {
	return &Reducer{norm: norm}
}

// Reduce keeps, for every civil date, the reading with the latest
// MeasuredAt. Dates appear in the order they were first seen. Reduce is
// idempotent.
func (r *Reducer) Reduce(readings []models.WeightReading) ([]models.WeightReading, error) {
	out := make([]models.WeightReading, 0, len(readings))
	slot := make(map[models.Date]int)

	for i, reading := range readings {
		date, err := r.norm.DateOf(reading.MeasuredAt)
		if err != nil {
			return nil, &models.InvalidTimestampError{Source: models.SourceWeight, Row: i}
		}

		idx, seen := slot[date]
		if !seen {
			slot[date] = len(out)
			out = append(out, reading)
			continue
		}
		// strictly later only, so ties keep the first-seen reading
		if reading.MeasuredAt.After(out[idx].MeasuredAt) {
			out[idx] = reading
		}
	}

	return out, nil
}

// Daily reduces readings and returns the (date, weight) pairs.
func (r *Reducer) Daily(readings []models.WeightReading) ([]models.DailyWeight, error) {
	reduced, err := r.Reduce(readings)
	if err != nil {
		return nil, err
	}

	daily := make([]models.DailyWeight, 0, len(reduced))
	for _, reading := range reduced {
		// already validated by Reduce
		date, _ := r.norm.DateOf(reading.MeasuredAt)
		daily = append(daily, models.DailyWeight{Date: date, WeightKg: reading.WeightKg})
	}
	return daily, nil
}
