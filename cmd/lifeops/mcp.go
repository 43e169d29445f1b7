// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server exposing the lifeops reports.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/lifeops/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server is read-only and communicates via stdin/stdout. Every call
recomputes its report from the current snapshots.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "lifeops": {
        "command": "lifeops",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  daily_health      Daily joined table (since, limit)
  weight_readings   Individual weight readings (since, limit)

AVAILABLE RESOURCES:

  lifeops://daily/recent     Last 14 weigh-in days
  lifeops://weights/recent   Last 10 weight readings`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(agg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		logger.Debug("mcp server starting", "zone", agg.Normalizer().Zone())
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
