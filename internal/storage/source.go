// ABOUTME: Source interface for the four read-only health snapshots.
// ABOUTME: Implemented by the Parquet file store and the SQL store.
package storage

import (
	"context"

	"github.com/harperreed/lifeops/internal/models"
)

// Source reads fully materialised, immutable snapshots of each dataset.
// Implementations must not return partial results.
type Source interface {
	Weights(ctx context.Context) ([]models.WeightReading, error)
	Steps(ctx context.Context) ([]models.StepsDaily, error)
	Sleep(ctx context.Context) ([]models.SleepDaily, error)
	Heart(ctx context.Context) ([]models.HeartDaily, error)

	Close() error
}

// Upstream dataset names, shared by the Parquet files and SQL tables.
const (
	WeightTable = "raw_withings_weight"
	StepsTable  = "raw_fitbit_steps_daily"
	SleepTable  = "raw_fitbit_sleep_daily"
	HeartTable  = "raw_fitbit_heart_daily"
)
