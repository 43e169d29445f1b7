// ABOUTME: Daily health pipeline: Load -> Normalize -> Reduce -> Join -> Sort.
// ABOUTME: Loads the four sources concurrently and joins only after all complete.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/lifeops/internal/models"
	"github.com/harperreed/lifeops/internal/storage"
	"golang.org/x/sync/errgroup"
)

// Aggregator runs the reporting queries against a Source.
type Aggregator struct {
	src    storage.Source
	norm   *Normalizer
	reduce *Reducer
	logger *log.Logger
}

// New creates an Aggregator. A nil logger discards diagnostics.
func New(src storage.Source, norm *Normalizer, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Aggregator{
		src:    src,
		norm:   norm,
		reduce: NewReducer(norm),
		logger: logger,
	}
}

// Normalizer returns the normalizer the aggregator keys dates with.
func (a *Aggregator) Normalizer() *Normalizer {
	return a.norm
}

type snapshot struct {
	weights []models.WeightReading
	steps   []models.StepsDaily
	sleep   []models.SleepDaily
	heart   []models.HeartDaily
}

// Daily computes the full DailyHealthRecord table, newest date first.
// Either every record is returned or the run fails.
func (a *Aggregator) Daily(ctx context.Context) ([]models.DailyHealthRecord, error) {
	start := time.Now()

	snap, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	weights, err := a.reduce.Daily(snap.weights)
	if err != nil {
		return nil, fmt.Errorf("reduce weights: %w", err)
	}

	records, err := Compose(weights, snap.steps, snap.sleep, snap.heart)
	if err != nil {
		return nil, fmt.Errorf("compose daily records: %w", err)
	}

	out := Sequence(records)
	a.logger.Info("daily report computed",
		"days", len(out),
		"readings", len(snap.weights),
		"zone", a.norm.Zone(),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return out, nil
}

// Weights lists every weight reading with local civil timestamps,
// most recent measurement first.
func (a *Aggregator) Weights(ctx context.Context) ([]models.WeightReportRow, error) {
	readings, err := loadSource(ctx, a, models.SourceWeight, a.src.Weights)
	if err != nil {
		return nil, err
	}

	rows := make([]models.WeightReportRow, 0, len(readings))
	for i, r := range readings {
		if r.MeasuredAt.IsZero() {
			return nil, &models.InvalidTimestampError{Source: models.SourceWeight, Row: i}
		}
		rows = append(rows, models.WeightReportRow{
			MeasuredAt: a.norm.LocalDateTime(r.MeasuredAt),
			IngestedAt: a.norm.LocalDateTime(r.IngestedAt),
			WeightKg:   r.WeightKg,
			Instant:    r.MeasuredAt,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Instant.After(rows[j].Instant)
	})
	return rows, nil
}

// load reads all four sources in parallel. The first failure cancels the
// remaining reads.
func (a *Aggregator) load(ctx context.Context) (*snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.weights, err = loadSource(gctx, a, models.SourceWeight, a.src.Weights)
		return err
	})
	g.Go(func() (err error) {
		snap.steps, err = loadSource(gctx, a, models.SourceSteps, a.src.Steps)
		return err
	})
	g.Go(func() (err error) {
		snap.sleep, err = loadSource(gctx, a, models.SourceSleep, a.src.Sleep)
		return err
	})
	g.Go(func() (err error) {
		snap.heart, err = loadSource(gctx, a, models.SourceHeart, a.src.Heart)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func loadSource[T any](ctx context.Context, a *Aggregator, source models.Source, fn func(context.Context) ([]T, error)) ([]T, error) {
	start := time.Now()
	rows, err := fn(ctx)
	if err != nil {
		// row-level problems pass through untouched
		if errors.Is(err, models.ErrInvalidTimestamp) || errors.Is(err, models.ErrSourceUnavailable) {
			return nil, err
		}
		return nil, &models.SourceError{Source: source, Err: err}
	}
	a.logger.Debug("source loaded", "source", source, "rows", len(rows), "elapsed", time.Since(start))
	return rows, nil
}
