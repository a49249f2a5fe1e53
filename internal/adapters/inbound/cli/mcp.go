package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/travislint/travislint/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the travislint MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var (
		projectPath string
		opts        lintOptions
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start travislint MCP server (stdio)",
		Long:  "Start the travislint MCP server using stdio transport. This allows AI coding assistants to lint Travis CI configuration files and snippets.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				projectPath = "."
			}
			cfg, err := loadClientConfig(projectPath, opts)
			if err != nil {
				return err
			}
			s := mcpadapter.NewTravisLintMCPServer(projectPath, cfg)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "Lint API URL")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Request timeout, e.g. 30s")

	return cmd
}
