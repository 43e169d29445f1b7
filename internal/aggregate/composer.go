// ABOUTME: Left-joins steps, sleep and heart series onto the daily weight series.
// ABOUTME: Auxiliary sources must be unique per date; duplicates fail the run.
package aggregate

import (
	"github.com/harperreed/lifeops/internal/models"
)

// Compose builds one DailyHealthRecord per weight date. Auxiliary fields
// stay nil when their source has no row for that date. Dates present only
// in auxiliary sources are dropped.
func Compose(
	weights []models.DailyWeight,
	steps []models.StepsDaily,
	sleep []models.SleepDaily,
	heart []models.HeartDaily,
) ([]models.DailyHealthRecord, error) {
	stepsByDate, err := indexByDate(models.SourceSteps, steps, func(s models.StepsDaily) models.Date { return s.Date })
	if err != nil {
		return nil, err
	}
	sleepByDate, err := indexByDate(models.SourceSleep, sleep, func(s models.SleepDaily) models.Date { return s.Date })
	if err != nil {
		return nil, err
	}
	heartByDate, err := indexByDate(models.SourceHeart, heart, func(h models.HeartDaily) models.Date { return h.Date })
	if err != nil {
		return nil, err
	}

	records := make([]models.DailyHealthRecord, 0, len(weights))
	for _, w := range weights {
		rec := models.DailyHealthRecord{
			Date:     w.Date,
			WeightKg: w.WeightKg,
		}
		if s, ok := stepsByDate[w.Date]; ok {
			rec.Steps = s.Steps
		}
		if s, ok := sleepByDate[w.Date]; ok {
			rec.MinutesAsleep = s.MinutesAsleep
			rec.MinutesDeep = s.MinutesDeep
			rec.MinutesRem = s.MinutesRem
			rec.MinutesLight = s.MinutesLight
			rec.Efficiency = s.Efficiency
		}
		if h, ok := heartByDate[w.Date]; ok {
			rec.RestingHR = h.RestingHR
		}
		records = append(records, rec)
	}

	return records, nil
}

func indexByDate[T any](source models.Source, rows []T, key func(T) models.Date) (map[models.Date]T, error) {
	index := make(map[models.Date]T, len(rows))
	for _, row := range rows {
		d := key(row)
		if _, dup := index[d]; dup {
			return nil, &models.DuplicateKeyError{Source: source, Date: d}
		}
		index[d] = row
	}
	return index, nil
}
