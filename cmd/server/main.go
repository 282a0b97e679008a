package main

import (
	"log/slog"
	"os"
	"strings"

	"gitlab.com/your-org/jira-mcp/internal/config"
	"gitlab.com/your-org/jira-mcp/internal/jira"
	mcpserver "gitlab.com/your-org/jira-mcp/internal/mcp"
	"gitlab.com/your-org/jira-mcp/internal/state"
	"gitlab.com/your-org/jira-mcp/pkg/logging"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func main() {
	var cfgPath string

	root := &cobra.Command{
		Use:          "jira-mcp",
		Short:        "MCP server exposing Jira over stdio",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cfgPath)
		},
	}
	root.Flags().StringVar(&cfgPath, "config", "", "Path to configuration directory or file")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Default().Error("failed to load configuration", slog.Any("error", err))
		return err
	}

	logger := logging.New(cfg.Server.LogLevel)

	site := ensureHTTPS(cfg.Jira.URL)

	client, err := jira.NewClient(site, cfg.Jira, logger)
	if err != nil {
		logger.Error("failed to initialize Jira client", slog.Any("error", err))
		return err
	}

	srv := mcpserver.NewServer(mcpserver.Dependencies{
		Service: jira.NewService(client),
		Cache:   state.NewCache(),
		SiteURL: site,
		Logger:  logger,
	})

	logger.Info("starting MCP server", slog.String("site", site))

	if err := server.ServeStdio(srv); err != nil {
		logger.Error("stdio server terminated", slog.Any("error", err))
		return err
	}
	return nil
}

func ensureHTTPS(site string) string {
	trimmed := strings.TrimSpace(site)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}

	return "https://" + strings.TrimRight(trimmed, "/")
}
