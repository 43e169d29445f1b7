// ABOUTME: Snapshot row types for the four health sources and the joined daily record.
// ABOUTME: Nullable columns are pointers; nil always means absent, never zero.
package models

import "time"

// Source names a snapshot dataset.
type Source string

const (
	SourceWeight Source = "weight"
	SourceSteps  Source = "steps"
	SourceSleep  Source = "sleep"
	SourceHeart  Source = "heart"
)

// DefaultTimezone is the civil zone daily keys are computed in.
const DefaultTimezone = "Pacific/Auckland"

// WeightReading is one Withings scale measurement.
type WeightReading struct {
	MeasuredAt time.Time `json:"measured_at" yaml:"measured_at"`
	WeightKg   float64   `json:"weight_kg" yaml:"weight_kg"`
	IngestedAt time.Time `json:"ingested_at" yaml:"ingested_at"`
	GroupID    *int64    `json:"grpid,omitempty" yaml:"grpid,omitempty"`
	Attrib     *int32    `json:"attrib,omitempty" yaml:"attrib,omitempty"`
	Category   *int32    `json:"category,omitempty" yaml:"category,omitempty"`
}

// StepsDaily is one day of Fitbit step counts.
type StepsDaily struct {
	Date  Date   `json:"date" yaml:"date"`
	Steps *int64 `json:"steps" yaml:"steps"`
}

// SleepDaily is one day of Fitbit sleep summary.
type SleepDaily struct {
	Date          Date     `json:"date" yaml:"date"`
	MinutesAsleep *int64   `json:"minutes_asleep" yaml:"minutes_asleep"`
	MinutesInBed  *int64   `json:"minutes_in_bed" yaml:"minutes_in_bed"`
	MinutesDeep   *int64   `json:"minutes_deep" yaml:"minutes_deep"`
	MinutesLight  *int64   `json:"minutes_light" yaml:"minutes_light"`
	MinutesRem    *int64   `json:"minutes_rem" yaml:"minutes_rem"`
	MinutesWake   *int64   `json:"minutes_wake" yaml:"minutes_wake"`
	Efficiency    *float64 `json:"efficiency" yaml:"efficiency"`
}

// HeartDaily is one day of Fitbit resting heart rate.
type HeartDaily struct {
	Date      Date   `json:"date" yaml:"date"`
	RestingHR *int64 `json:"resting_hr" yaml:"resting_hr"`
}

// DailyWeight is the single weight kept for a civil date.
type DailyWeight struct {
	Date     Date    `json:"date" yaml:"date"`
	WeightKg float64 `json:"weight_kg" yaml:"weight_kg"`
}

// DailyHealthRecord is one row of the daily joined table.
type DailyHealthRecord struct {
	Date          Date     `json:"date" yaml:"date"`
	WeightKg      float64  `json:"weight_kg" yaml:"weight_kg"`
	Steps         *int64   `json:"steps" yaml:"steps"`
	RestingHR     *int64   `json:"resting_hr" yaml:"resting_hr"`
	MinutesAsleep *int64   `json:"minutes_asleep" yaml:"minutes_asleep"`
	MinutesDeep   *int64   `json:"minutes_deep" yaml:"minutes_deep"`
	MinutesRem    *int64   `json:"minutes_rem" yaml:"minutes_rem"`
	MinutesLight  *int64   `json:"minutes_light" yaml:"minutes_light"`
	Efficiency    *float64 `json:"efficiency" yaml:"efficiency"`
}

// WeightReportRow is one weight reading rendered in local civil time.
type WeightReportRow struct {
	MeasuredAt string    `json:"measured_at" yaml:"measured_at"`
	IngestedAt string    `json:"ingested_at" yaml:"ingested_at"`
	WeightKg   float64   `json:"weight_kg" yaml:"weight_kg"`
	Instant    time.Time `json:"-" yaml:"-"`
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// Int32 returns a pointer to v.
func Int32(v int32) *int32 { return &v }

// Float64 returns a pointer to v.
func Float64(v float64) *float64 { return &v }
