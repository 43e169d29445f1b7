// ABOUTME: CLI command for the daily joined health report.
// ABOUTME: Supports output format, start date, row limit, and file output.
package main

import (
	"fmt"
	"io"

	"github.com/harperreed/lifeops/internal/models"
	"github.com/harperreed/lifeops/internal/report"
	"github.com/spf13/cobra"
)

var (
	dailyFormat string
	dailySince  string
	dailyLimit  int
	dailyOutput string
)

var dailyCmd = &cobra.Command{
	Use:     "daily",
	Aliases: []string{"d"},
	Short:   "Show the daily health table",
	Long: `Show one row per local date that has a weight reading, newest first.

COLUMNS:

  DATE     local calendar date in the configured timezone
  WEIGHT   latest weight reading of that date (kg)
  STEPS    Fitbit step count
  RHR      resting heart rate (bpm)
  ASLEEP   minutes asleep
  DEEP     minutes of deep sleep
  REM      minutes of REM sleep
  LIGHT    minutes of light sleep
  EFF      sleep efficiency

  Values the wearables did not report show as "-".

FORMATS:

  table      Aligned columns (default)
  json       JSON with run metadata (absent values are null)
  yaml       YAML with run metadata
  markdown   Markdown table
  csv        CSV with a header row (absent values are empty)

EXAMPLES:

  lifeops daily                        # Every day, newest first
  lifeops daily -n 7                   # Last 7 weigh-in days
  lifeops daily --since 2024-06-01     # From June 2024 onward
  lifeops daily -f json -o daily.json  # Save as JSON`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(dailyFormat)
		if err != nil {
			return err
		}
		filter, err := parseFilter(dailySince, dailyLimit)
		if err != nil {
			return err
		}

		ctx, cancel, err := runContext(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		records, err := agg.Daily(ctx)
		if err != nil {
			return fmt.Errorf("daily report failed: %w", err)
		}

		rep := report.NewDaily(agg.Normalizer().Zone(), filter.Days(records))
		return writeOutput(cmd, dailyOutput, func(w io.Writer) error {
			return report.WriteDaily(w, rep, format)
		})
	},
}

// parseFilter builds a report filter from --since and --limit.
func parseFilter(since string, limit int) (report.Filter, error) {
	filter := report.Filter{Limit: limit}
	if since != "" {
		d, err := models.ParseDate(since)
		if err != nil {
			return report.Filter{}, err
		}
		filter.Since = &d
	}
	return filter, nil
}

func init() {
	dailyCmd.Flags().StringVarP(&dailyFormat, "format", "f", "table", "output format: "+report.FormatNames())
	dailyCmd.Flags().StringVar(&dailySince, "since", "", "only include dates on or after this date (YYYY-MM-DD)")
	dailyCmd.Flags().IntVarP(&dailyLimit, "limit", "n", 0, "max number of days (0 = all)")
	dailyCmd.Flags().StringVarP(&dailyOutput, "output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(dailyCmd)
}
