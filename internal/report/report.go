// ABOUTME: Report envelopes wrapping aggregator output with run metadata.
// ABOUTME: Filter narrows a finished report by start date and row count.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/lifeops/internal/models"
)

const (
	Version = "1.0"
	Tool    = "lifeops"
)

// Header is the metadata shared by every report.
type Header struct {
	Version     string    `json:"version" yaml:"version"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Tool        string    `json:"tool" yaml:"tool"`
	RunID       uuid.UUID `json:"run_id" yaml:"run_id"`
	Timezone    string    `json:"timezone" yaml:"timezone"`
}

// DailyReport is the joined daily table, newest first.
type DailyReport struct {
	Header `yaml:",inline"`
	Days   []models.DailyHealthRecord `json:"days" yaml:"days"`
}

// WeightReport lists individual weight readings, newest first.
type WeightReport struct {
	Header   `yaml:",inline"`
	Readings []models.WeightReportRow `json:"readings" yaml:"readings"`
}

func newHeader(timezone string) Header {
	return Header{
		Version:     Version,
		GeneratedAt: time.Now().UTC(),
		Tool:        Tool,
		RunID:       uuid.New(),
		Timezone:    timezone,
	}
}

// NewDaily wraps records in a DailyReport. The slice is never nil so
// encoders emit an empty list rather than null.
func NewDaily(timezone string, records []models.DailyHealthRecord) *DailyReport {
	if records == nil {
		records = []models.DailyHealthRecord{}
	}
	return &DailyReport{Header: newHeader(timezone), Days: records}
}

// NewWeights wraps rows in a WeightReport.
func NewWeights(timezone string, rows []models.WeightReportRow) *WeightReport {
	if rows == nil {
		rows = []models.WeightReportRow{}
	}
	return &WeightReport{Header: newHeader(timezone), Readings: rows}
}

// Filter is a view over an already ordered report.
type Filter struct {
	// Since keeps rows on or after this local date.
	Since *models.Date
	// Limit caps the row count. Zero or negative means no cap.
	Limit int
}

// Days returns the records matching f, preserving order.
func (f Filter) Days(records []models.DailyHealthRecord) []models.DailyHealthRecord {
	out := make([]models.DailyHealthRecord, 0, len(records))
	for _, r := range records {
		if f.Since != nil && r.Date.Before(*f.Since) {
			continue
		}
		out = append(out, r)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

// Readings returns the weight rows matching f, preserving order.
// MeasuredAt is already local, so its date prefix is compared directly.
func (f Filter) Readings(rows []models.WeightReportRow) []models.WeightReportRow {
	var since string
	if f.Since != nil {
		since = f.Since.String()
	}

	out := make([]models.WeightReportRow, 0, len(rows))
	for _, r := range rows {
		if since != "" && len(r.MeasuredAt) >= 10 && r.MeasuredAt[:10] < since {
			continue
		}
		out = append(out, r)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}
