package mcp

import (
	"log/slog"
	"strings"

	"gitlab.com/your-org/jira-mcp/internal/jira"
	"gitlab.com/your-org/jira-mcp/internal/state"

	"github.com/mark3labs/mcp-go/server"
)

// Dependencies bundles the services required for MCP server construction.
type Dependencies struct {
	Service *jira.Service
	Cache   *state.Cache
	SiteURL string
	Logger  *slog.Logger
}

// Tools wires the Jira service into the MCP tool surface.
type Tools struct {
	service *jira.Service
	cache   *state.Cache
	siteURL string
	logger  *slog.Logger
}

// NewServer builds an MCP server with the full Jira tool set registered.
func NewServer(deps Dependencies) *server.MCPServer {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Cache == nil {
		deps.Cache = state.NewCache()
	}

	srv := server.NewMCPServer(
		"JIRA MCP Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions("Tools for querying and managing issues, projects, sprints and workflows in Jira."),
		server.WithRecovery(),
	)

	t := &Tools{
		service: deps.Service,
		cache:   deps.Cache,
		siteURL: strings.TrimRight(deps.SiteURL, "/"),
		logger:  deps.Logger,
	}

	t.registerIssueTools(srv)
	t.registerWorkflowTools(srv)
	t.registerCollabTools(srv)
	t.registerProjectTools(srv)
	t.registerAgileTools(srv)
	t.registerLinkTools(srv)
	t.registerAttachmentTools(srv)
	t.registerWebhookTools(srv)
	t.registerReportTools(srv)

	return srv
}
