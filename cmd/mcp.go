package cmd

import (
	"github.com/huangsam/lightcurve/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Lightcurve MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents render, inspect and fold light curves.

Tools resolve filenames against --base-dir unless a call passes its own
base_dir. Rendered images are returned inline as PNG and never shown on screen.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, historyStore)
	},
}
