// ABOUTME: Tests for civil-date normalization in Pacific/Auckland.
// ABOUTME: Covers both DST transitions and instants a fixed offset gets wrong.
package aggregate

import (
	"errors"
	"testing"
	"time"

	"github.com/harperreed/lifeops/internal/models"
)

func mustNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := NewNormalizer(models.DefaultTimezone)
	if err != nil {
		t.Fatalf("NewNormalizer failed: %v", err)
	}
	return n
}

func mustInstant(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts
}

func TestNewNormalizer(t *testing.T) {
	n, err := NewNormalizer("")
	if err != nil {
		t.Fatalf("NewNormalizer(\"\") failed: %v", err)
	}
	if n.Zone() != "Pacific/Auckland" {
		t.Errorf("Zone() = %q, want Pacific/Auckland", n.Zone())
	}

	if _, err := NewNormalizer("Mars/Olympus_Mons"); err == nil {
		t.Error("expected error for unknown zone")
	}
}

func TestDateOf(t *testing.T) {
	n := mustNormalizer(t)

	tests := []struct {
		name    string
		instant string
		want    models.Date
	}{
		{
			name:    "near September transition",
			instant: "2024-09-29T13:30:00+13:00",
			want:    models.Date{Year: 2024, Month: time.September, Day: 29},
		},
		{
			name:    "near April transition",
			instant: "2024-04-07T02:30:00+13:00",
			want:    models.Date{Year: 2024, Month: time.April, Day: 7},
		},
		{
			name:    "summer UTC evening is next local day",
			instant: "2024-01-01T11:30:00Z",
			want:    models.Date{Year: 2024, Month: time.January, Day: 2},
		},
		{
			name:    "winter UTC evening stays same local day",
			instant: "2024-07-01T11:30:00Z",
			want:    models.Date{Year: 2024, Month: time.July, Day: 1},
		},
		{
			name:    "one minute before DST starts",
			instant: "2024-09-28T13:59:00Z",
			want:    models.Date{Year: 2024, Month: time.September, Day: 29},
		},
		{
			name:    "repeated hour after DST ends",
			instant: "2024-04-06T14:30:00Z",
			want:    models.Date{Year: 2024, Month: time.April, Day: 7},
		},
		{
			name:    "local midnight in summer",
			instant: "2023-12-31T11:00:00Z",
			want:    models.Date{Year: 2024, Month: time.January, Day: 1},
		},
		{
			name:    "just before local midnight in summer",
			instant: "2023-12-31T10:59:59Z",
			want:    models.Date{Year: 2023, Month: time.December, Day: 31},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.DateOf(mustInstant(t, tt.instant))
			if err != nil {
				t.Fatalf("DateOf(%s) unexpected error: %v", tt.instant, err)
			}
			if got != tt.want {
				t.Errorf("DateOf(%s) = %v, want %v", tt.instant, got, tt.want)
			}
		})
	}
}

func TestDateOfDiffersFromFixedOffset(t *testing.T) {
	n := mustNormalizer(t)
	fixed := time.FixedZone("NZST", 12*3600)

	instant := mustInstant(t, "2024-01-01T11:30:00Z")
	got, _ := n.DateOf(instant)
	naive := models.DateOf(instant.In(fixed))

	if got == naive {
		t.Errorf("expected DST-aware date to differ from fixed +12 date, both %v", got)
	}
}

func TestDateOfZeroInstant(t *testing.T) {
	n := mustNormalizer(t)

	_, err := n.DateOf(time.Time{})
	if !errors.Is(err, models.ErrInvalidTimestamp) {
		t.Errorf("DateOf(zero) error = %v, want ErrInvalidTimestamp", err)
	}
}

func TestLocalDateTime(t *testing.T) {
	n := mustNormalizer(t)

	if got := n.LocalDateTime(mustInstant(t, "2024-01-01T08:00:00Z")); got != "2024-01-01 21:00:00" {
		t.Errorf("LocalDateTime summer = %q", got)
	}
	if got := n.LocalDateTime(mustInstant(t, "2024-07-01T08:00:00Z")); got != "2024-07-01 20:00:00" {
		t.Errorf("LocalDateTime winter = %q", got)
	}
	if got := n.LocalDateTime(time.Time{}); got != "" {
		t.Errorf("LocalDateTime(zero) = %q, want empty", got)
	}
}
