package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"edusign/internal/mcptools"
)

func (c *cli) mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the wallet and advisor as MCP tools over stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			server := mcptools.NewMCPServer(a.badges, c.newAdvisor(a.badges), c.logger.Named("mcp"), version)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			c.logger.Info("MCP server starting on stdin/stdout")
			return server.Run(ctx, mcp.NewStdioTransport())
		},
	}
}
