// ABOUTME: Tests for report envelopes, filters, and every renderer.
// ABOUTME: Checks that absent values never render as zero.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/lifeops/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func init() {
	color.NoColor = true
}

func day(y int, m time.Month, d int) models.Date {
	return models.Date{Year: y, Month: m, Day: d}
}

func sampleDays() []models.DailyHealthRecord {
	return []models.DailyHealthRecord{
		{Date: day(2024, time.June, 10), WeightKg: 69.8},
		{
			Date:          day(2024, time.January, 2),
			WeightKg:      70.2,
			Steps:         models.Int64(0),
			RestingHR:     models.Int64(54),
			MinutesAsleep: models.Int64(430),
			Efficiency:    models.Float64(94),
		},
		{Date: day(2024, time.January, 1), WeightKg: 70.3, Steps: models.Int64(9000)},
	}
}

func sampleReadings() []models.WeightReportRow {
	return []models.WeightReportRow{
		{MeasuredAt: "2024-06-10 07:15:00", WeightKg: 69.8},
		{MeasuredAt: "2024-01-02 06:45:00", IngestedAt: "2024-01-02 13:00:00", WeightKg: 70.2},
		{MeasuredAt: "2024-01-01 21:00:00", IngestedAt: "2024-01-02 13:00:00", WeightKg: 70.3},
	}
}

func TestNewDailyHeader(t *testing.T) {
	rep := NewDaily("Pacific/Auckland", nil)

	assert.Equal(t, Version, rep.Version)
	assert.Equal(t, "lifeops", rep.Tool)
	assert.Equal(t, "Pacific/Auckland", rep.Timezone)
	assert.NotEqual(t, uuid.Nil, rep.RunID)
	assert.False(t, rep.GeneratedAt.IsZero())
	assert.NotNil(t, rep.Days)

	other := NewDaily("Pacific/Auckland", nil)
	assert.NotEqual(t, rep.RunID, other.RunID, "each run gets its own id")
}

func TestFilterDays(t *testing.T) {
	days := sampleDays()
	since := day(2024, time.January, 2)

	tests := []struct {
		name   string
		filter Filter
		want   []models.Date
	}{
		{name: "no filter", filter: Filter{}, want: []models.Date{day(2024, time.June, 10), day(2024, time.January, 2), day(2024, time.January, 1)}},
		{name: "limit", filter: Filter{Limit: 2}, want: []models.Date{day(2024, time.June, 10), day(2024, time.January, 2)}},
		{name: "since inclusive", filter: Filter{Since: &since}, want: []models.Date{day(2024, time.June, 10), day(2024, time.January, 2)}},
		{name: "since and limit", filter: Filter{Since: &since, Limit: 1}, want: []models.Date{day(2024, time.June, 10)}},
		{name: "negative limit", filter: Filter{Limit: -1}, want: []models.Date{day(2024, time.June, 10), day(2024, time.January, 2), day(2024, time.January, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Days(days)
			dates := make([]models.Date, len(got))
			for i, r := range got {
				dates[i] = r.Date
			}
			assert.Equal(t, tt.want, dates)
		})
	}
}

func TestFilterReadings(t *testing.T) {
	since := day(2024, time.January, 2)

	got := Filter{Since: &since}.Readings(sampleReadings())
	require.Len(t, got, 2)
	assert.Equal(t, "2024-01-02 06:45:00", got[1].MeasuredAt)

	got = Filter{Limit: 1}.Readings(sampleReadings())
	require.Len(t, got, 1)
	assert.Equal(t, "2024-06-10 07:15:00", got[0].MeasuredAt)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"md", FormatMarkdown, false},
		{"csv", FormatCSV, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFormatNames(t *testing.T) {
	assert.Equal(t, "table, json, yaml, markdown, csv", FormatNames())

	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), FormatNames())
}

func TestWriteDailyJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDaily(&buf, NewDaily("Pacific/Auckland", sampleDays()), FormatJSON))

	var decoded struct {
		Tool     string                   `json:"tool"`
		RunID    string                   `json:"run_id"`
		Timezone string                   `json:"timezone"`
		Days     []map[string]interface{} `json:"days"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "lifeops", decoded.Tool)
	assert.Equal(t, "Pacific/Auckland", decoded.Timezone)
	_, err := uuid.Parse(decoded.RunID)
	assert.NoError(t, err)

	require.Len(t, decoded.Days, 3)
	first := decoded.Days[0]
	assert.Equal(t, "2024-06-10", first["date"])
	assert.Contains(t, first, "steps")
	assert.Nil(t, first["steps"], "absent renders as null")
	assert.Equal(t, float64(0), decoded.Days[1]["steps"], "zero stays zero")
}

func TestWriteDailyJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDaily(&buf, NewDaily("UTC", nil), FormatJSON))
	assert.Contains(t, buf.String(), `"days": []`)
}

func TestWriteDailyYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDaily(&buf, NewDaily("Pacific/Auckland", sampleDays()), FormatYAML))

	var decoded struct {
		Version  string                   `yaml:"version"`
		Timezone string                   `yaml:"timezone"`
		RunID    string                   `yaml:"run_id"`
		Days     []map[string]interface{} `yaml:"days"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "1.0", decoded.Version)
	assert.Equal(t, "Pacific/Auckland", decoded.Timezone)
	assert.NotEmpty(t, decoded.RunID)
	require.Len(t, decoded.Days, 3)
	assert.Equal(t, "2024-06-10", decoded.Days[0]["date"])
	assert.Nil(t, decoded.Days[0]["resting_hr"])
	assert.Equal(t, 54, decoded.Days[1]["resting_hr"])
}

func TestWriteDailyCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDaily(&buf, NewDaily("UTC", sampleDays()), FormatCSV))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, dailyColumns, records[0])
	assert.Equal(t, []string{"2024-06-10", "69.8", "", "", "", "", "", "", ""}, records[1])
	assert.Equal(t, []string{"2024-01-02", "70.2", "0", "54", "430", "", "", "", "94"}, records[2])
}

func TestWriteDailyMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDaily(&buf, NewDaily("Pacific/Auckland", sampleDays()), FormatMarkdown))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# LifeOps Daily Health - "))
	assert.Contains(t, out, "(Pacific/Auckland)")
	assert.Contains(t, out, "| DATE | WEIGHT | STEPS |")
	assert.Contains(t, out, "| 2024-06-10 | 69.8 | - | - |")
	assert.Contains(t, out, "| 2024-01-02 | 70.2 | 0 | 54 | 430 |")
}

func TestWriteDailyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDaily(&buf, NewDaily("UTC", sampleDays()), FormatTable))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "DATE"))
	assert.True(t, strings.HasPrefix(lines[1], "2024-06-10 69.8    -"))
	assert.Contains(t, lines[2], "0 ")
}

func TestWriteDailyTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDaily(&buf, NewDaily("UTC", nil), FormatTable))
	assert.Equal(t, "No daily records found.\n", buf.String())
}

func TestWriteWeights(t *testing.T) {
	rep := NewWeights("Pacific/Auckland", sampleReadings())

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteWeights(&buf, rep, FormatJSON))

		var decoded struct {
			Readings []models.WeightReportRow `json:"readings"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded.Readings, 3)
		assert.Equal(t, "2024-06-10 07:15:00", decoded.Readings[0].MeasuredAt)
		assert.NotContains(t, buf.String(), "Instant")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteWeights(&buf, rep, FormatCSV))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 4)
		assert.Equal(t, []string{"2024-06-10 07:15:00", "", "69.8"}, records[1])
		assert.Equal(t, []string{"2024-01-02 06:45:00", "2024-01-02 13:00:00", "70.2"}, records[2])
	})

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteWeights(&buf, rep, FormatMarkdown))
		assert.Contains(t, buf.String(), "| 2024-06-10 07:15:00 | - | 69.8 |")
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteWeights(&buf, rep, FormatTable))
		assert.Contains(t, buf.String(), "MEASURED")
		assert.Contains(t, buf.String(), "2024-01-01 21:00:00 2024-01-02 13:00:00 70.3")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteWeights(&buf, rep, FormatYAML))

		var decoded struct {
			Readings []map[string]interface{} `yaml:"readings"`
		}
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded.Readings, 3)
		assert.Equal(t, "2024-06-10 07:15:00", decoded.Readings[0]["measured_at"])
		assert.Equal(t, 70.3, decoded.Readings[2]["weight_kg"])
	})
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteDaily(&buf, NewDaily("UTC", nil), Format("xml")))
	assert.Error(t, WriteWeights(&buf, NewWeights("UTC", nil), Format("xml")))
}
