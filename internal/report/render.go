// ABOUTME: Renders daily and weight reports as table, JSON, YAML, Markdown, or CSV.
// ABOUTME: Absent values stay distinguishable from zero in every format.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/lifeops/internal/models"
	"gopkg.in/yaml.v3"
)

// Format selects a renderer.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
)

// Formats lists every supported format.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML, FormatMarkdown, FormatCSV}

// FormatNames joins Formats for flag help and error messages.
func FormatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// ParseFormat validates a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unknown format: %s (use %s)", s, FormatNames())
}

var (
	dailyColumns  = []string{"date", "weight_kg", "steps", "resting_hr", "minutes_asleep", "minutes_deep", "minutes_rem", "minutes_light", "efficiency"}
	dailyHeadings = []string{"DATE", "WEIGHT", "STEPS", "RHR", "ASLEEP", "DEEP", "REM", "LIGHT", "EFF"}
	dailyWidths   = []int{10, 7, 7, 4, 6, 5, 5, 5, 5}

	weightColumns  = []string{"measured_at", "ingested_at", "weight_kg"}
	weightHeadings = []string{"MEASURED", "INGESTED", "WEIGHT"}
	weightWidths   = []int{19, 19, 7}
)

// cell is one rendered value; absent cells are styled per format.
type cell struct {
	text   string
	absent bool
}

func present(s string) cell { return cell{text: s} }

func intCell(v *int64) cell {
	if v == nil {
		return cell{absent: true}
	}
	return present(strconv.FormatInt(*v, 10))
}

func floatCell(v *float64) cell {
	if v == nil {
		return cell{absent: true}
	}
	return present(formatFloat(*v))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func dailyCells(r models.DailyHealthRecord) []cell {
	return []cell{
		present(r.Date.String()),
		present(formatFloat(r.WeightKg)),
		intCell(r.Steps),
		intCell(r.RestingHR),
		intCell(r.MinutesAsleep),
		intCell(r.MinutesDeep),
		intCell(r.MinutesRem),
		intCell(r.MinutesLight),
		floatCell(r.Efficiency),
	}
}

func weightCells(r models.WeightReportRow) []cell {
	ingested := present(r.IngestedAt)
	if r.IngestedAt == "" {
		ingested = cell{absent: true}
	}
	return []cell{present(r.MeasuredAt), ingested, present(formatFloat(r.WeightKg))}
}

// WriteDaily renders a daily report.
func WriteDaily(w io.Writer, rep *DailyReport, f Format) error {
	rows := make([][]cell, 0, len(rep.Days))
	for _, r := range rep.Days {
		rows = append(rows, dailyCells(r))
	}

	switch f {
	case FormatJSON:
		return writeJSON(w, rep)
	case FormatYAML:
		return writeYAML(w, rep)
	case FormatCSV:
		return writeCSV(w, dailyColumns, rows)
	case FormatMarkdown:
		title := fmt.Sprintf("LifeOps Daily Health - %s", rep.GeneratedAt.Format("2006-01-02"))
		return writeMarkdown(w, title, &rep.Header, dailyHeadings, rows)
	case FormatTable:
		if len(rows) == 0 {
			_, err := fmt.Fprintln(w, "No daily records found.")
			return err
		}
		return writeTable(w, dailyHeadings, dailyWidths, rows)
	}
	return fmt.Errorf("unknown format: %s", f)
}

// WriteWeights renders a weight report.
func WriteWeights(w io.Writer, rep *WeightReport, f Format) error {
	rows := make([][]cell, 0, len(rep.Readings))
	for _, r := range rep.Readings {
		rows = append(rows, weightCells(r))
	}

	switch f {
	case FormatJSON:
		return writeJSON(w, rep)
	case FormatYAML:
		return writeYAML(w, rep)
	case FormatCSV:
		return writeCSV(w, weightColumns, rows)
	case FormatMarkdown:
		title := fmt.Sprintf("LifeOps Weight Readings - %s", rep.GeneratedAt.Format("2006-01-02"))
		return writeMarkdown(w, title, &rep.Header, weightHeadings, rows)
	case FormatTable:
		if len(rows) == 0 {
			_, err := fmt.Fprintln(w, "No weight readings found.")
			return err
		}
		return writeTable(w, weightHeadings, weightWidths, rows)
	}
	return fmt.Errorf("unknown format: %s", f)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func writeCSV(w io.Writer, header []string, rows [][]cell) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, c := range row {
			record[i] = c.text
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeMarkdown(w io.Writer, title string, h *Header, headings []string, rows [][]cell) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("Generated: %s (%s)\n\n", h.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"), h.Timezone))
	sb.WriteString("| " + strings.Join(headings, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat("------|", len(headings)) + "\n")
	for _, row := range rows {
		texts := make([]string, len(row))
		for i, c := range row {
			texts[i] = c.text
			if c.absent {
				texts[i] = "-"
			}
		}
		sb.WriteString("| " + strings.Join(texts, " | ") + " |\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTable(w io.Writer, headings []string, widths []int, rows [][]cell) error {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	head := make([]string, len(headings))
	for i, h := range headings {
		head[i] = bold.Sprint(padRight(h, widths[i]))
	}
	if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(head, " "), " ")); err != nil {
		return err
	}

	for _, row := range rows {
		line := make([]string, len(row))
		for i, c := range row {
			if c.absent {
				line[i] = faint.Sprint(padRight("-", widths[i]))
				continue
			}
			line[i] = padRight(c.text, widths[i])
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(line, " "), " ")); err != nil {
			return err
		}
	}
	return nil
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
