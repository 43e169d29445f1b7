// ABOUTME: Converts absolute instants into civil dates of one IANA timezone.
// ABOUTME: Uses the embedded tz database so DST rules never depend on the host.
package aggregate

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/harperreed/lifeops/internal/models"
)

const localDateTimeLayout = "2006-01-02 15:04:05"

// Normalizer maps instants onto calendar dates in a fixed civil zone.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer loads the rules for zone. An empty zone selects
// models.DefaultTimezone.
func NewNormalizer(zone string) (*Normalizer, error) {
	if zone == "" {
		zone = models.DefaultTimezone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	return &Normalizer{loc: loc}, nil
}

// Zone returns the IANA name of the target zone.
func (n *Normalizer) Zone() string {
	return n.loc.String()
}

// DateOf returns the calendar date observed in the target zone at instant t.
func (n *Normalizer) DateOf(t time.Time) (models.Date, error) {
	if t.IsZero() {
		return models.Date{}, models.ErrInvalidTimestamp
	}
	return models.DateOf(t.In(n.loc)), nil
}

// LocalDateTime renders t as a local civil date-time string. A zero
// instant renders as the empty string.
func (n *Normalizer) LocalDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(n.loc).Format(localDateTimeLayout)
}
