package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/archdocs/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the pages and their related-page graph as tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg, err := loadRegistry(cfg)
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version
		srv := mcpserver.NewServer(reg, resolveHome(cfg, reg))

		if watch, _ := cmd.Flags().GetBool("watch"); watch || cfg.Watch {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := watchContent(ctx, cfg, srv.Reload); err != nil {
				return err
			}
		}

		fmt.Fprintf(os.Stderr, "archdocs MCP server started on stdio (pages=%d)\n", reg.Len())
		return srv.Serve()
	},
}

func init() {
	mcpCmd.Flags().Bool("watch", false, "reload pages when the content directory changes")
	rootCmd.AddCommand(mcpCmd)
}
