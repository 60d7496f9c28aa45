package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/s3-importer/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server.

Tools:
  import_object     import one object as if a notification had arrived
  preview_grouping  show the dataset query for a name, device or day

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  s3-importer mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  s3-importer mcp serve --port 8080

  # Preview imports without touching the catalog
  s3-importer mcp serve --dry-run`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().Bool("dry-run", false, "use an in-memory catalog instead of the API")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("getting dry-run flag: %w", err)
	}

	rt, err := loadRuntime(cmd.Context(), dryRun)
	if err != nil {
		return err
	}

	ports := &mcp.Ports{
		Dispatcher: rt.Dispatcher,
		Grouping:   rt.Grouping,
		Settings:   rt.Settings,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
