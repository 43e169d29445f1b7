// ABOUTME: Parquet snapshot reader for the upstream ingestion output files.
// ABOUTME: One file per dataset in the data directory, read whole per run.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harperreed/lifeops/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
)

const parquetParallelism = 4

// Row layouts match what the ingestion jobs write (DuckDB COPY ... FORMAT PARQUET).
// Every column is nullable there.

type weightParquetRow struct {
	MeasuredAt *int64   `parquet:"name=measured_at, type=INT64, convertedtype=TIMESTAMP_MICROS, repetitiontype=OPTIONAL"`
	WeightKg   *float64 `parquet:"name=weight_kg, type=DOUBLE, repetitiontype=OPTIONAL"`
	GroupID    *int64   `parquet:"name=grpid, type=INT64, repetitiontype=OPTIONAL"`
	Attrib     *int32   `parquet:"name=attrib, type=INT32, repetitiontype=OPTIONAL"`
	Category   *int32   `parquet:"name=category, type=INT32, repetitiontype=OPTIONAL"`
	IngestedAt *int64   `parquet:"name=ingested_at, type=INT64, convertedtype=TIMESTAMP_MICROS, repetitiontype=OPTIONAL"`
}

type stepsParquetRow struct {
	Date       *int32 `parquet:"name=date, type=INT32, convertedtype=DATE, repetitiontype=OPTIONAL"`
	Steps      *int64 `parquet:"name=steps, type=INT64, repetitiontype=OPTIONAL"`
	IngestedAt *int64 `parquet:"name=ingested_at, type=INT64, convertedtype=TIMESTAMP_MICROS, repetitiontype=OPTIONAL"`
}

type sleepParquetRow struct {
	Date          *int32 `parquet:"name=date, type=INT32, convertedtype=DATE, repetitiontype=OPTIONAL"`
	MinutesAsleep *int32 `parquet:"name=minutes_asleep, type=INT32, repetitiontype=OPTIONAL"`
	MinutesInBed  *int32 `parquet:"name=minutes_in_bed, type=INT32, repetitiontype=OPTIONAL"`
	Efficiency    *int32 `parquet:"name=efficiency, type=INT32, repetitiontype=OPTIONAL"`
	MinutesDeep   *int32 `parquet:"name=minutes_deep, type=INT32, repetitiontype=OPTIONAL"`
	MinutesLight  *int32 `parquet:"name=minutes_light, type=INT32, repetitiontype=OPTIONAL"`
	MinutesRem    *int32 `parquet:"name=minutes_rem, type=INT32, repetitiontype=OPTIONAL"`
	MinutesWake   *int32 `parquet:"name=minutes_wake, type=INT32, repetitiontype=OPTIONAL"`
	IngestedAt    *int64 `parquet:"name=ingested_at, type=INT64, convertedtype=TIMESTAMP_MICROS, repetitiontype=OPTIONAL"`
}

type heartParquetRow struct {
	Date       *int32 `parquet:"name=date, type=INT32, convertedtype=DATE, repetitiontype=OPTIONAL"`
	RestingHR  *int32 `parquet:"name=resting_hr, type=INT32, repetitiontype=OPTIONAL"`
	IngestedAt *int64 `parquet:"name=ingested_at, type=INT64, convertedtype=TIMESTAMP_MICROS, repetitiontype=OPTIONAL"`
}

// ParquetStore reads <table>.parquet files from a directory.
type ParquetStore struct {
	dir string
}

// OpenParquet returns a store rooted at dir. The directory must exist;
// individual files are checked when each dataset is read.
func OpenParquet(dir string) (*ParquetStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open data directory: %s is not a directory", dir)
	}
	return &ParquetStore{dir: dir}, nil
}

// Path returns the snapshot file path for a table.
func (p *ParquetStore) Path(table string) string {
	return filepath.Join(p.dir, table+".parquet")
}

// Weights reads raw_withings_weight.parquet.
func (p *ParquetStore) Weights(ctx context.Context) ([]models.WeightReading, error) {
	rows, err := readParquet[weightParquetRow](ctx, p.Path(WeightTable))
	if err != nil {
		return nil, err
	}

	out := make([]models.WeightReading, 0, len(rows))
	for i, r := range rows {
		if r.MeasuredAt == nil {
			return nil, &models.InvalidTimestampError{Source: models.SourceWeight, Row: i}
		}
		if r.WeightKg == nil {
			return nil, fmt.Errorf("%s row %d: missing weight_kg", WeightTable, i)
		}
		out = append(out, models.WeightReading{
			MeasuredAt: fromMicros(r.MeasuredAt),
			WeightKg:   *r.WeightKg,
			IngestedAt: fromMicros(r.IngestedAt),
			GroupID:    r.GroupID,
			Attrib:     r.Attrib,
			Category:   r.Category,
		})
	}
	return out, nil
}

// Steps reads raw_fitbit_steps_daily.parquet.
func (p *ParquetStore) Steps(ctx context.Context) ([]models.StepsDaily, error) {
	rows, err := readParquet[stepsParquetRow](ctx, p.Path(StepsTable))
	if err != nil {
		return nil, err
	}

	out := make([]models.StepsDaily, 0, len(rows))
	for i, r := range rows {
		if r.Date == nil {
			return nil, fmt.Errorf("%s row %d: missing date", StepsTable, i)
		}
		out = append(out, models.StepsDaily{
			Date:  models.DateFromEpochDays(*r.Date),
			Steps: r.Steps,
		})
	}
	return out, nil
}

// Sleep reads raw_fitbit_sleep_daily.parquet.
func (p *ParquetStore) Sleep(ctx context.Context) ([]models.SleepDaily, error) {
	rows, err := readParquet[sleepParquetRow](ctx, p.Path(SleepTable))
	if err != nil {
		return nil, err
	}

	out := make([]models.SleepDaily, 0, len(rows))
	for i, r := range rows {
		if r.Date == nil {
			return nil, fmt.Errorf("%s row %d: missing date", SleepTable, i)
		}
		s := models.SleepDaily{
			Date:          models.DateFromEpochDays(*r.Date),
			MinutesAsleep: widen(r.MinutesAsleep),
			MinutesInBed:  widen(r.MinutesInBed),
			MinutesDeep:   widen(r.MinutesDeep),
			MinutesLight:  widen(r.MinutesLight),
			MinutesRem:    widen(r.MinutesRem),
			MinutesWake:   widen(r.MinutesWake),
		}
		if r.Efficiency != nil {
			s.Efficiency = models.Float64(float64(*r.Efficiency))
		}
		out = append(out, s)
	}
	return out, nil
}

// Heart reads raw_fitbit_heart_daily.parquet.
func (p *ParquetStore) Heart(ctx context.Context) ([]models.HeartDaily, error) {
	rows, err := readParquet[heartParquetRow](ctx, p.Path(HeartTable))
	if err != nil {
		return nil, err
	}

	out := make([]models.HeartDaily, 0, len(rows))
	for i, r := range rows {
		if r.Date == nil {
			return nil, fmt.Errorf("%s row %d: missing date", HeartTable, i)
		}
		out = append(out, models.HeartDaily{
			Date:      models.DateFromEpochDays(*r.Date),
			RestingHR: widen(r.RestingHR),
		})
	}
	return out, nil
}

// Close is a no-op; files are opened per read.
func (p *ParquetStore) Close() error {
	return nil
}

func readParquet[T any](ctx context.Context, path string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(T), parquetParallelism)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	defer pr.ReadStop()

	rows := make([]T, int(pr.GetNumRows()))
	if len(rows) > 0 {
		if err := pr.Read(&rows); err != nil {
			return nil, fmt.Errorf("read %s rows: %w", filepath.Base(path), err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

func fromMicros(v *int64) time.Time {
	if v == nil {
		return time.Time{}
	}
	return time.UnixMicro(*v).UTC()
}

func widen(v *int32) *int64 {
	if v == nil {
		return nil
	}
	return models.Int64(int64(*v))
}
