// ABOUTME: SQL reads for the weight, steps, sleep and heart snapshot tables.
// ABOUTME: Implements the Source interface for DB; timestamps are parsed strictly.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/lifeops/internal/models"
)

// Weights reads every row of raw_withings_weight.
func (d *DB) Weights(ctx context.Context) ([]models.WeightReading, error) {
	query := `
		SELECT measured_at, weight_kg, grpid, attrib, category, ingested_at
		FROM ` + WeightTable + `
		ORDER BY measured_at, ingested_at
	`
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", WeightTable, err)
	}
	defer rows.Close()

	var out []models.WeightReading
	for i := 0; rows.Next(); i++ {
		var (
			measuredAt, ingestedAt sql.NullString
			weightKg               sql.NullFloat64
			grpid                  sql.NullInt64
			attrib, category       sql.NullInt32
		)
		if err := rows.Scan(&measuredAt, &weightKg, &grpid, &attrib, &category, &ingestedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", WeightTable, err)
		}

		measured, err := parseInstant(measuredAt)
		if err != nil || measured.IsZero() {
			return nil, &models.InvalidTimestampError{Source: models.SourceWeight, Row: i, Value: measuredAt.String}
		}
		ingested, err := parseInstant(ingestedAt)
		if err != nil {
			return nil, &models.InvalidTimestampError{Source: models.SourceWeight, Row: i, Value: ingestedAt.String}
		}
		if !weightKg.Valid {
			return nil, fmt.Errorf("%s row %d: missing weight_kg", WeightTable, i)
		}

		r := models.WeightReading{
			MeasuredAt: measured,
			WeightKg:   weightKg.Float64,
			IngestedAt: ingested,
		}
		if grpid.Valid {
			r.GroupID = models.Int64(grpid.Int64)
		}
		if attrib.Valid {
			r.Attrib = models.Int32(attrib.Int32)
		}
		if category.Valid {
			r.Category = models.Int32(category.Int32)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", WeightTable, err)
	}
	return out, nil
}

// Steps reads every row of raw_fitbit_steps_daily.
func (d *DB) Steps(ctx context.Context) ([]models.StepsDaily, error) {
	query := `SELECT date, steps FROM ` + StepsTable + ` ORDER BY date`
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", StepsTable, err)
	}
	defer rows.Close()

	var out []models.StepsDaily
	for i := 0; rows.Next(); i++ {
		var (
			date  sql.NullString
			steps sql.NullInt64
		)
		if err := rows.Scan(&date, &steps); err != nil {
			return nil, fmt.Errorf("scan %s: %w", StepsTable, err)
		}
		day, err := parseDateColumn(StepsTable, i, date)
		if err != nil {
			return nil, err
		}
		out = append(out, models.StepsDaily{Date: day, Steps: nullInt(steps)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", StepsTable, err)
	}
	return out, nil
}

// Sleep reads every row of raw_fitbit_sleep_daily.
func (d *DB) Sleep(ctx context.Context) ([]models.SleepDaily, error) {
	query := `
		SELECT date, minutes_asleep, minutes_in_bed, efficiency,
		       minutes_deep, minutes_light, minutes_rem, minutes_wake
		FROM ` + SleepTable + `
		ORDER BY date
	`
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", SleepTable, err)
	}
	defer rows.Close()

	var out []models.SleepDaily
	for i := 0; rows.Next(); i++ {
		var (
			date                                  sql.NullString
			asleep, inBed, deep, light, rem, wake sql.NullInt64
			efficiency                            sql.NullFloat64
		)
		if err := rows.Scan(&date, &asleep, &inBed, &efficiency, &deep, &light, &rem, &wake); err != nil {
			return nil, fmt.Errorf("scan %s: %w", SleepTable, err)
		}
		day, err := parseDateColumn(SleepTable, i, date)
		if err != nil {
			return nil, err
		}

		s := models.SleepDaily{
			Date:          day,
			MinutesAsleep: nullInt(asleep),
			MinutesInBed:  nullInt(inBed),
			MinutesDeep:   nullInt(deep),
			MinutesLight:  nullInt(light),
			MinutesRem:    nullInt(rem),
			MinutesWake:   nullInt(wake),
		}
		if efficiency.Valid {
			s.Efficiency = models.Float64(efficiency.Float64)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", SleepTable, err)
	}
	return out, nil
}

// Heart reads every row of raw_fitbit_heart_daily.
func (d *DB) Heart(ctx context.Context) ([]models.HeartDaily, error) {
	query := `SELECT date, resting_hr FROM ` + HeartTable + ` ORDER BY date`
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", HeartTable, err)
	}
	defer rows.Close()

	var out []models.HeartDaily
	for i := 0; rows.Next(); i++ {
		var (
			date    sql.NullString
			resting sql.NullInt64
		)
		if err := rows.Scan(&date, &resting); err != nil {
			return nil, fmt.Errorf("scan %s: %w", HeartTable, err)
		}
		day, err := parseDateColumn(HeartTable, i, date)
		if err != nil {
			return nil, err
		}
		out = append(out, models.HeartDaily{Date: day, RestingHR: nullInt(resting)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", HeartTable, err)
	}
	return out, nil
}

// Layouts accepted for instant columns. Values without an offset are UTC,
// which is what the ingestion jobs and SQLite's CURRENT_TIMESTAMP write.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// parseInstant interprets a text timestamp. NULL yields the zero time.
func parseInstant(v sql.NullString) (time.Time, error) {
	if !v.Valid {
		return time.Time{}, nil
	}
	s := strings.TrimSpace(v.String)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// parseDateColumn reads a DATE column that may come back as plain text or
// as a midnight timestamp rendered by database/sql.
func parseDateColumn(table string, row int, v sql.NullString) (models.Date, error) {
	if !v.Valid {
		return models.Date{}, fmt.Errorf("%s row %d: missing date", table, row)
	}
	s := strings.TrimSpace(v.String)
	if len(s) > 10 {
		s = s[:10]
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, fmt.Errorf("%s row %d: %w", table, row, err)
	}
	return d, nil
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return models.Int64(v.Int64)
}
