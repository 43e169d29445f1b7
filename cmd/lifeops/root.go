// ABOUTME: Root Cobra command for lifeops CLI.
// ABOUTME: Handles config, logger, and snapshot source lifecycle via PersistentPre/PostRunE.
package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harperreed/lifeops/internal/aggregate"
	"github.com/harperreed/lifeops/internal/config"
	"github.com/harperreed/lifeops/internal/storage"
	"github.com/spf13/cobra"
)

// skipSource marks commands that run without opening snapshots.
const skipSource = "lifeops/skip-source"

var (
	cfg    *config.Config
	source storage.Source
	agg    *aggregate.Aggregator
	logger *log.Logger

	flagDataDir  string
	flagBackend  string
	flagDSN      string
	flagTimezone string
	flagTimeout  string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "lifeops",
	Short: "Daily health reports from wearable snapshots",
	Long: `LifeOps joins Withings weight readings with Fitbit steps, sleep, and
resting heart rate into one row per local calendar day.

REPORTS:

  $ lifeops daily                      # Daily table, newest first
  $ lifeops daily --since 2024-01-01   # Only dates from 2024 onward
  $ lifeops daily -f csv -o daily.csv  # Export as CSV
  $ lifeops weights -n 50              # Last 50 individual weight readings

DATES:

  Every instant is converted to the configured timezone (default
  Pacific/Auckland) before its calendar date is taken. When several weight
  readings fall on the same local date the latest one wins. Days without a
  weight reading are not reported; missing steps, sleep, or heart values show
  as "-" (null in JSON/YAML, empty in CSV).

SNAPSHOTS:

  parquet   <data-dir>/raw_withings_weight.parquet and friends (default)
  sqlite    <data-dir>/lifeops.db, opened read-only
  postgres  LIFEOPS_DSN or 'lifeops config set dsn ...'

CONFIGURATION:

  Settings live in ~/.config/lifeops/config.json. A .env file in the working
  directory and LIFEOPS_* environment variables override the file; flags
  override both.

MCP INTEGRATION:

  Run 'lifeops mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "lifeops": { "command": "lifeops", "args": ["mcp"] }
    }
  }`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlags(cmd)

		logger = newLogger(cmd)

		if cmd.Name() == "help" || cmd.Annotations[skipSource] == "true" {
			return nil
		}

		norm, err := aggregate.NewNormalizer(cfg.GetTimezone())
		if err != nil {
			return err
		}

		src, err := cfg.OpenSource(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to open %s snapshots: %w", cfg.GetBackend(), err)
		}
		source = src
		logger.Debug("snapshots opened", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())

		agg = aggregate.New(source, norm, logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if source != nil {
			err := source.Close()
			source = nil
			return err
		}
		return nil
	},
}

// Execute runs the root command. The source is closed here as well because
// cobra skips PersistentPostRunE when RunE fails.
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if source != nil {
		_ = source.Close()
		source = nil
	}
	return err
}

// applyFlags overrides config values with explicitly set flags.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = flagDataDir
	}
	if flags.Changed("backend") {
		cfg.Backend = flagBackend
	}
	if flags.Changed("dsn") {
		cfg.DSN = flagDSN
	}
	if flags.Changed("timezone") {
		cfg.Timezone = flagTimezone
	}
	if flags.Changed("timeout") {
		cfg.Timeout = flagTimeout
	}
}

// newLogger writes diagnostics to stderr so report output stays clean.
func newLogger(cmd *cobra.Command) *log.Logger {
	l := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix:          "lifeops",
		ReportTimestamp: flagVerbose,
	})
	l.SetLevel(log.WarnLevel)
	if flagVerbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// runContext bounds a report run by the configured timeout.
func runContext(cmd *cobra.Command) (context.Context, context.CancelFunc, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	timeout, err := cfg.GetTimeout()
	if err != nil {
		return nil, nil, err
	}
	if timeout == 0 {
		ctx, cancel := context.WithCancel(ctx)
		return ctx, cancel, nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, cancel, nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDataDir, "data-dir", "", "snapshot directory (default: ~/.local/share/lifeops)")
	pf.StringVar(&flagBackend, "backend", "", "snapshot backend: parquet, sqlite, or postgres")
	pf.StringVar(&flagDSN, "dsn", "", "postgres connection string")
	pf.StringVar(&flagTimezone, "timezone", "", "IANA timezone for daily dates (default: Pacific/Auckland)")
	pf.StringVar(&flagTimeout, "timeout", "", "abort the run after this duration, e.g. 30s")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log debug diagnostics to stderr")
}
