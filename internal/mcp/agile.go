package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gitlab.com/your-org/jira-mcp/internal/jira"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (t *Tools) registerAgileTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool(
			"get_boards",
			mcp.WithDescription("Get available agile boards"),
			mcp.WithInputSchema[EmptyArgs](),
			mcp.WithOutputSchema[jira.BoardList](),
		),
		mcp.NewTypedToolHandler(t.handleBoards),
	)

	s.AddTool(
		mcp.NewTool(
			"get_sprints",
			mcp.WithDescription("Get the sprints of an agile board"),
			mcp.WithInputSchema[SprintsArgs](),
			mcp.WithOutputSchema[SprintsResult](),
		),
		mcp.NewTypedToolHandler(t.handleSprints),
	)

	s.AddTool(
		mcp.NewTool(
			"get_sprint_issues",
			mcp.WithDescription("Get the issues in a sprint"),
			mcp.WithInputSchema[SprintIDArgs](),
			mcp.WithOutputSchema[SprintIssuesResult](),
		),
		mcp.NewTypedToolHandler(t.handleSprintIssues),
	)

	s.AddTool(
		mcp.NewTool(
			"add_to_sprint",
			mcp.WithDescription("Add issues to a sprint"),
			mcp.WithInputSchema[AddToSprintArgs](),
			mcp.WithOutputSchema[AddToSprintResult](),
		),
		mcp.NewTypedToolHandler(t.handleAddToSprint),
	)

	s.AddTool(
		mcp.NewTool(
			"get_burndown_data",
			mcp.WithDescription("Get story-point burndown data for a sprint"),
			mcp.WithInputSchema[SprintIDArgs](),
			mcp.WithOutputSchema[jira.BurndownData](),
		),
		mcp.NewTypedToolHandler(t.handleBurndown),
	)
}

func (t *Tools) handleBoards(ctx context.Context, _ mcp.CallToolRequest, _ EmptyArgs) (*mcp.CallToolResult, error) {
	boards, err := t.service.Boards(ctx)
	if err != nil {
		return errorResult(err, "Boards"), nil
	}

	return mcp.NewToolResultStructured(*boards, fmt.Sprintf("Found %d boards", len(boards.Boards))), nil
}

// SprintsArgs name the board whose sprints are listed.
type SprintsArgs struct {
	BoardID string `json:"board_id" jsonschema:"required" jsonschema_description:"Agile board id"`
}

// SprintsResult lists the sprints of one board. A missing or inaccessible
// board yields an empty list plus a non-empty error field.
type SprintsResult struct {
	BoardID     string        `json:"board_id"`
	SprintCount int           `json:"sprint_count"`
	Sprints     []jira.Sprint `json:"sprints"`
	Error       string        `json:"error,omitempty"`
}

func (t *Tools) handleSprints(ctx context.Context, _ mcp.CallToolRequest, args SprintsArgs) (*mcp.CallToolResult, error) {
	if strings.TrimSpace(args.BoardID) == "" {
		return validationResult("Board id must not be empty"), nil
	}

	sprints, err := t.service.Sprints(ctx, args.BoardID)
	if err != nil {
		var apiErr *jira.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			result := SprintsResult{
				BoardID: args.BoardID,
				Sprints: []jira.Sprint{},
				Error:   fmt.Sprintf("Board %s not found or not accessible", args.BoardID),
			}
			return mcp.NewToolResultStructured(result, result.Error), nil
		}
		return errorResult(err, "Board "+args.BoardID), nil
	}

	result := SprintsResult{BoardID: args.BoardID, SprintCount: len(sprints), Sprints: sprints}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("%d sprints on board %s", len(sprints), args.BoardID)), nil
}

// SprintIDArgs carry the sprint id shared by sprint-scoped tools.
type SprintIDArgs struct {
	SprintID string `json:"sprint_id" jsonschema:"required" jsonschema_description:"Sprint id"`
}

// SprintIssuesResult lists the issues of one sprint. A missing or
// inaccessible sprint yields an empty list plus a non-empty error field.
type SprintIssuesResult struct {
	SprintID   string             `json:"sprint_id"`
	IssueCount int                `json:"issue_count"`
	Issues     []jira.SprintIssue `json:"issues"`
	Error      string             `json:"error,omitempty"`
}

func (t *Tools) handleSprintIssues(ctx context.Context, _ mcp.CallToolRequest, args SprintIDArgs) (*mcp.CallToolResult, error) {
	if strings.TrimSpace(args.SprintID) == "" {
		return validationResult("Sprint id must not be empty"), nil
	}

	issues, err := t.service.SprintIssues(ctx, args.SprintID)
	if err != nil {
		var apiErr *jira.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			result := SprintIssuesResult{
				SprintID: args.SprintID,
				Issues:   []jira.SprintIssue{},
				Error:    fmt.Sprintf("Sprint %s not found or not accessible", args.SprintID),
			}
			return mcp.NewToolResultStructured(result, result.Error), nil
		}
		return errorResult(err, "Sprint "+args.SprintID), nil
	}

	result := SprintIssuesResult{SprintID: args.SprintID, IssueCount: len(issues), Issues: issues}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("%d issues in sprint %s", len(issues), args.SprintID)), nil
}

// AddToSprintArgs name the sprint and the issues to move into it.
type AddToSprintArgs struct {
	SprintID string   `json:"sprint_id" jsonschema:"required" jsonschema_description:"Sprint id"`
	Keys     []string `json:"keys" jsonschema:"required" jsonschema_description:"Issue keys to add"`
}

// AddToSprintResult reports the move.
type AddToSprintResult struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	SprintID    string   `json:"sprint_id"`
	AddedIssues []string `json:"added_issues"`
}

func (t *Tools) handleAddToSprint(ctx context.Context, _ mcp.CallToolRequest, args AddToSprintArgs) (*mcp.CallToolResult, error) {
	if strings.TrimSpace(args.SprintID) == "" {
		return validationResult("Sprint id must not be empty"), nil
	}
	if len(args.Keys) == 0 {
		return validationResult("At least one issue key is required"), nil
	}
	for _, key := range args.Keys {
		if !jira.ValidateIssueKey(key) {
			return validationResult(fmt.Sprintf("Invalid issue key format: %s", key)), nil
		}
	}

	if err := t.service.AddIssuesToSprint(ctx, args.SprintID, args.Keys); err != nil {
		return errorResult(err, "Sprint "+args.SprintID), nil
	}

	result := AddToSprintResult{
		Success:     true,
		Message:     fmt.Sprintf("Added %d issues to sprint %s", len(args.Keys), args.SprintID),
		SprintID:    args.SprintID,
		AddedIssues: args.Keys,
	}
	return mcp.NewToolResultStructured(result, result.Message), nil
}

func (t *Tools) handleBurndown(ctx context.Context, _ mcp.CallToolRequest, args SprintIDArgs) (*mcp.CallToolResult, error) {
	if strings.TrimSpace(args.SprintID) == "" {
		return validationResult("Sprint id must not be empty"), nil
	}

	data, err := t.service.Burndown(ctx, args.SprintID)
	if err != nil {
		return errorResult(err, "Sprint "+args.SprintID), nil
	}

	fallback := fmt.Sprintf("Sprint %s: %.1f/%.1f story points complete", args.SprintID, data.CompletedPoints, data.TotalStoryPoints)
	return mcp.NewToolResultStructured(*data, fallback), nil
}
