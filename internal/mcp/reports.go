package mcp

import (
	"context"
	"fmt"

	"gitlab.com/your-org/jira-mcp/internal/jira"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (t *Tools) registerReportTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool(
			"get_time_tracking_report",
			mcp.WithDescription("Get a time tracking report for a project"),
			mcp.WithInputSchema[ProjectKeyArgs](),
			mcp.WithOutputSchema[jira.TimeTrackingReport](),
		),
		mcp.NewTypedToolHandler(t.handleTimeTracking),
	)

	s.AddTool(
		mcp.NewTool(
			"get_jira_statistics",
			mcp.WithDescription("Get instance-wide JIRA statistics"),
			mcp.WithInputSchema[EmptyArgs](),
			mcp.WithOutputSchema[jira.Statistics](),
		),
		mcp.NewTypedToolHandler(t.handleStatistics),
	)
}

func (t *Tools) handleTimeTracking(ctx context.Context, _ mcp.CallToolRequest, args ProjectKeyArgs) (*mcp.CallToolResult, error) {
	if res := requireProjectKey(args.Project); res != nil {
		return res, nil
	}

	report, err := t.service.TimeTracking(ctx, args.Project)
	if err != nil {
		return errorResult(err, "Project "+args.Project), nil
	}

	fallback := fmt.Sprintf("%s: %.1f hours logged across %d issues", args.Project, report.TotalLoggedHours, report.IssuesWithTime)
	return mcp.NewToolResultStructured(*report, fallback), nil
}

func (t *Tools) handleStatistics(ctx context.Context, _ mcp.CallToolRequest, _ EmptyArgs) (*mcp.CallToolResult, error) {
	stats := t.service.Statistics(ctx, t.siteURL)
	return mcp.NewToolResultStructured(*stats, "Collected instance statistics"), nil
}
