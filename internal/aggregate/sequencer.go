// ABOUTME: Orders composed daily records, most recent date first.
// ABOUTME: Pure; never filters or mutates its input.
package aggregate

import (
	"sort"

	"github.com/harperreed/lifeops/internal/models"
)

// Sequence returns a copy of records sorted by date descending.
func Sequence(records []models.DailyHealthRecord) []models.DailyHealthRecord {
	out := make([]models.DailyHealthRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
