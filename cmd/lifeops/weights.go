// ABOUTME: CLI command for listing individual weight readings.
// ABOUTME: Shows measured and ingested instants in local civil time.
package main

import (
	"fmt"
	"io"

	"github.com/harperreed/lifeops/internal/report"
	"github.com/spf13/cobra"
)

var (
	weightsFormat string
	weightsSince  string
	weightsLimit  int
	weightsOutput string
)

var weightsCmd = &cobra.Command{
	Use:     "weights",
	Aliases: []string{"w"},
	Short:   "List weight readings",
	Long: `List every Withings weight reading, most recent measurement first.

Unlike 'lifeops daily', no readings are collapsed: a day with a morning and an
evening weigh-in shows both. Times are local to the configured timezone and
formatted as YYYY-MM-DD HH:MM:SS. A reading without an ingestion time shows
"-".

EXAMPLES:

  lifeops weights                  # Last 20 readings
  lifeops weights -n 0             # All readings
  lifeops weights -f csv -o w.csv  # Export as CSV`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(weightsFormat)
		if err != nil {
			return err
		}
		filter, err := parseFilter(weightsSince, weightsLimit)
		if err != nil {
			return err
		}

		ctx, cancel, err := runContext(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		rows, err := agg.Weights(ctx)
		if err != nil {
			return fmt.Errorf("weight report failed: %w", err)
		}

		rep := report.NewWeights(agg.Normalizer().Zone(), filter.Readings(rows))
		return writeOutput(cmd, weightsOutput, func(w io.Writer) error {
			return report.WriteWeights(w, rep, format)
		})
	},
}

func init() {
	weightsCmd.Flags().StringVarP(&weightsFormat, "format", "f", "table", "output format: "+report.FormatNames())
	weightsCmd.Flags().StringVar(&weightsSince, "since", "", "only include readings measured on or after this date (YYYY-MM-DD)")
	weightsCmd.Flags().IntVarP(&weightsLimit, "limit", "n", 20, "max number of readings (0 = all)")
	weightsCmd.Flags().StringVarP(&weightsOutput, "output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(weightsCmd)
}
