package mcp

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/your-org/jira-mcp/internal/jira"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (t *Tools) registerLinkTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool(
			"link_issues",
			mcp.WithDescription("Create a link between two issues"),
			mcp.WithInputSchema[LinkIssuesArgs](),
			mcp.WithOutputSchema[OperationResult](),
		),
		mcp.NewTypedToolHandler(t.handleLinkIssues),
	)

	s.AddTool(
		mcp.NewTool(
			"get_issue_links",
			mcp.WithDescription("Get all issues linked to an issue"),
			mcp.WithInputSchema[IssueKeyArgs](),
			mcp.WithOutputSchema[IssueLinksResult](),
		),
		mcp.NewTypedToolHandler(t.handleIssueLinks),
	)

	s.AddTool(
		mcp.NewTool(
			"get_subtasks",
			mcp.WithDescription("Get the subtasks of an issue"),
			mcp.WithInputSchema[IssueKeyArgs](),
			mcp.WithOutputSchema[SubtasksResult](),
		),
		mcp.NewTypedToolHandler(t.handleSubtasks),
	)

	s.AddTool(
		mcp.NewTool(
			"create_subtask",
			mcp.WithDescription("Create a subtask under a parent issue"),
			mcp.WithInputSchema[CreateSubtaskArgs](),
			mcp.WithOutputSchema[CreateSubtaskResult](),
		),
		mcp.NewTypedToolHandler(t.handleCreateSubtask),
	)
}

// LinkIssuesArgs name the two issues and the link type between them.
type LinkIssuesArgs struct {
	InwardKey  string `json:"inward_key" jsonschema:"required" jsonschema_description:"Inward issue key"`
	OutwardKey string `json:"outward_key" jsonschema:"required" jsonschema_description:"Outward issue key"`
	LinkType   string `json:"link_type" jsonschema:"required" jsonschema_description:"Link type name, e.g. Blocks or Relates"`
}

func (t *Tools) handleLinkIssues(ctx context.Context, _ mcp.CallToolRequest, args LinkIssuesArgs) (*mcp.CallToolResult, error) {
	if !jira.ValidateIssueKey(args.InwardKey) || !jira.ValidateIssueKey(args.OutwardKey) {
		return validationResult("Invalid issue key format"), nil
	}
	if strings.TrimSpace(args.LinkType) == "" {
		return validationResult("Link type must not be empty"), nil
	}

	if err := t.service.LinkIssues(ctx, args.InwardKey, args.OutwardKey, args.LinkType); err != nil {
		return errorResult(err, "Issue "+args.InwardKey), nil
	}

	result := OperationResult{
		Success: true,
		Message: fmt.Sprintf("Linked %s to %s with type %s", args.InwardKey, args.OutwardKey, args.LinkType),
	}
	return mcp.NewToolResultStructured(result, result.Message), nil
}

// IssueLinksResult lists the links of one issue.
type IssueLinksResult struct {
	Issue     string           `json:"issue"`
	LinkCount int              `json:"link_count"`
	Links     []jira.IssueLink `json:"links"`
}

func (t *Tools) handleIssueLinks(ctx context.Context, _ mcp.CallToolRequest, args IssueKeyArgs) (*mcp.CallToolResult, error) {
	if res := requireIssueKey(args.Key); res != nil {
		return res, nil
	}

	links, err := t.service.IssueLinks(ctx, args.Key)
	if err != nil {
		return errorResult(err, "Issue "+args.Key), nil
	}

	result := IssueLinksResult{Issue: args.Key, LinkCount: len(links), Links: links}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("%d links on %s", len(links), args.Key)), nil
}

// SubtasksResult lists the subtasks of one parent issue.
type SubtasksResult struct {
	ParentIssue  string         `json:"parent_issue"`
	SubtaskCount int            `json:"subtask_count"`
	Subtasks     []jira.Subtask `json:"subtasks"`
}

func (t *Tools) handleSubtasks(ctx context.Context, _ mcp.CallToolRequest, args IssueKeyArgs) (*mcp.CallToolResult, error) {
	if res := requireIssueKey(args.Key); res != nil {
		return res, nil
	}

	subtasks, err := t.service.Subtasks(ctx, args.Key)
	if err != nil {
		return errorResult(err, "Issue "+args.Key), nil
	}

	result := SubtasksResult{ParentIssue: args.Key, SubtaskCount: len(subtasks), Subtasks: subtasks}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("%d subtasks under %s", len(subtasks), args.Key)), nil
}

// CreateSubtaskArgs define a new subtask under a parent issue.
type CreateSubtaskArgs struct {
	ParentKey   string `json:"parent_key" jsonschema:"required" jsonschema_description:"Parent issue key"`
	Summary     string `json:"summary" jsonschema:"required" jsonschema_description:"Subtask summary"`
	Description string `json:"description,omitempty" jsonschema_description:"Plain-text description"`
}

// CreateSubtaskResult reports the created subtask.
type CreateSubtaskResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	SubtaskKey string `json:"subtask_key"`
	ParentKey  string `json:"parent_key"`
}

func (t *Tools) handleCreateSubtask(ctx context.Context, _ mcp.CallToolRequest, args CreateSubtaskArgs) (*mcp.CallToolResult, error) {
	if !jira.ValidateIssueKey(args.ParentKey) {
		return validationResult("Invalid parent issue key format"), nil
	}
	if strings.TrimSpace(args.Summary) == "" {
		return validationResult("Summary must not be empty"), nil
	}

	created, err := t.service.CreateSubtask(ctx, args.ParentKey, args.Summary, args.Description)
	if err != nil {
		return errorResult(err, "Issue "+args.ParentKey), nil
	}

	result := CreateSubtaskResult{
		Success:    true,
		Message:    "Subtask created successfully",
		SubtaskKey: created.Key,
		ParentKey:  args.ParentKey,
	}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("Created subtask %s under %s", created.Key, args.ParentKey)), nil
}
