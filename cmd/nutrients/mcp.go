// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server over the configured tracker.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/nutrients/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "nutrients": {
        "command": "nutrients",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_food      Log a food and recompute the day
  list_foods    List foods for a day or the most recent foods
  delete_food   Delete a food by ID
  record_burn   Record active calories, steps, or sleep
  get_status    Nutrient status for a day
  get_nudge     Recommendation for the most at-risk nutrient
  get_trend     Daily percent-of-target history
  classify      Classify a fraction of target into a tier

AVAILABLE RESOURCES:

  nutrients://today       Today's nutrient status
  nutrients://reference   Reference table with RDAs and upper limits`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(tr)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
