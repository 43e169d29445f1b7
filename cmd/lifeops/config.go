// ABOUTME: CLI commands for viewing and editing lifeops configuration.
// ABOUTME: Provides 'config show' and 'config set <key> <value>'.
package main

import (
	"fmt"
	"net/url"

	"github.com/fatih/color"
	"github.com/harperreed/lifeops/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "View or change configuration",
	Annotations: map[string]string{skipSource: "true"},
	Long: `View or change lifeops configuration.

KEYS:

  backend    parquet, sqlite, or postgres
  data_dir   directory holding the snapshots (supports ~)
  dsn        postgres connection string
  timezone   IANA timezone for daily dates, e.g. Pacific/Auckland
  timeout    maximum run duration, e.g. 30s

EXAMPLES:

  lifeops config show
  lifeops config set backend sqlite
  lifeops config set data_dir ~/lifeops
  lifeops config set timezone Europe/London`,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show effective configuration",
	Annotations: map[string]string{skipSource: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)

		fmt.Fprintf(out, "%s %s\n", padRight("config", 10), faint.Sprint(config.GetConfigPath()))
		fmt.Fprintf(out, "%s %s\n", padRight("backend", 10), cfg.GetBackend())
		fmt.Fprintf(out, "%s %s\n", padRight("data_dir", 10), cfg.GetDataDir())
		fmt.Fprintf(out, "%s %s\n", padRight("dsn", 10), orDash(redactDSN(cfg.DSN)))
		fmt.Fprintf(out, "%s %s\n", padRight("timezone", 10), cfg.GetTimezone())
		fmt.Fprintf(out, "%s %s\n", padRight("timeout", 10), orDash(cfg.Timeout))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:         "set <key> <value>",
	Short:       "Set a configuration value",
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{skipSource: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		// edit the file only; env and flag overrides must not be persisted
		fileCfg, err := config.LoadFile()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := fileCfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := fileCfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Set %s", args[0]))
		return nil
	},
}

// redactDSN hides the password of a URL-style DSN.
func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	return u.Redacted()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
