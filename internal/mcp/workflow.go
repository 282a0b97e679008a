package mcp

import (
	"context"
	"fmt"

	"gitlab.com/your-org/jira-mcp/internal/jira"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (t *Tools) registerWorkflowTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool(
			"get_transitions",
			mcp.WithDescription("Get available status transitions for an issue"),
			mcp.WithInputSchema[IssueKeyArgs](),
			mcp.WithOutputSchema[TransitionsResult](),
		),
		mcp.NewTypedToolHandler(t.handleTransitions),
	)

	s.AddTool(
		mcp.NewTool(
			"transition_issue",
			mcp.WithDescription("Move an issue to a new status by transition name or id"),
			mcp.WithInputSchema[TransitionIssueArgs](),
			mcp.WithOutputSchema[OperationResult](),
		),
		mcp.NewTypedToolHandler(t.handleTransitionIssue),
	)

	s.AddTool(
		mcp.NewTool(
			"bulk_transition_issues",
			mcp.WithDescription("Transition multiple issues at once"),
			mcp.WithInputSchema[BulkTransitionArgs](),
			mcp.WithOutputSchema[BulkResult](),
		),
		mcp.NewTypedToolHandler(t.handleBulkTransition),
	)

	s.AddTool(
		mcp.NewTool(
			"bulk_update_issues",
			mcp.WithDescription("Update multiple issues at once"),
			mcp.WithInputSchema[BulkUpdateArgs](),
			mcp.WithOutputSchema[BulkResult](),
		),
		mcp.NewTypedToolHandler(t.handleBulkUpdate),
	)

	s.AddTool(
		mcp.NewTool(
			"get_workflows",
			mcp.WithDescription("Get available workflows"),
			mcp.WithInputSchema[EmptyArgs](),
			mcp.WithOutputSchema[WorkflowsResult](),
		),
		mcp.NewTypedToolHandler(t.handleWorkflows),
	)
}

// EmptyArgs is used by tools that take no parameters.
type EmptyArgs struct{}

// TransitionsResult lists the transitions currently available on an issue.
type TransitionsResult struct {
	Key         string            `json:"key"`
	Transitions []jira.Transition `json:"transitions"`
}

func (t *Tools) handleTransitions(ctx context.Context, _ mcp.CallToolRequest, args IssueKeyArgs) (*mcp.CallToolResult, error) {
	if res := requireIssueKey(args.Key); res != nil {
		return res, nil
	}

	transitions, err := t.service.Transitions(ctx, args.Key)
	if err != nil {
		return errorResult(err, "Issue "+args.Key), nil
	}

	result := TransitionsResult{Key: args.Key, Transitions: transitions}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("%d transitions available for %s", len(transitions), args.Key)), nil
}

// TransitionIssueArgs name the issue and the desired transition.
type TransitionIssueArgs struct {
	Key        string `json:"key" jsonschema:"required" jsonschema_description:"Issue key"`
	Transition string `json:"transition" jsonschema:"required" jsonschema_description:"Transition name (case-insensitive) or id"`
}

func (t *Tools) handleTransitionIssue(ctx context.Context, _ mcp.CallToolRequest, args TransitionIssueArgs) (*mcp.CallToolResult, error) {
	if res := requireIssueKey(args.Key); res != nil {
		return res, nil
	}

	if err := t.service.TransitionIssue(ctx, args.Key, args.Transition); err != nil {
		return errorResult(err, "Issue "+args.Key), nil
	}

	result := OperationResult{Success: true, Message: fmt.Sprintf("Issue %s transitioned via %q", args.Key, args.Transition)}
	return mcp.NewToolResultStructured(result, result.Message), nil
}

// BulkItemResult is the outcome for one issue of a bulk operation.
type BulkItemResult struct {
	Key     string `json:"key"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// BulkResult aggregates per-issue outcomes of a bulk operation.
type BulkResult struct {
	TotalIssues int              `json:"total_issues"`
	Successful  int              `json:"successful"`
	Failed      int              `json:"failed"`
	Results     []BulkItemResult `json:"results"`
}

func newBulkResult(results []BulkItemResult) BulkResult {
	success := 0
	for _, r := range results {
		if r.Status == "success" {
			success++
		}
	}
	return BulkResult{
		TotalIssues: len(results),
		Successful:  success,
		Failed:      len(results) - success,
		Results:     results,
	}
}

// BulkTransitionArgs name the issues and the shared transition.
type BulkTransitionArgs struct {
	Keys       []string `json:"keys" jsonschema:"required" jsonschema_description:"Issue keys to transition"`
	Transition string   `json:"transition" jsonschema:"required" jsonschema_description:"Transition name or id applied to every issue"`
}

func (t *Tools) handleBulkTransition(ctx context.Context, _ mcp.CallToolRequest, args BulkTransitionArgs) (*mcp.CallToolResult, error) {
	if len(args.Keys) == 0 {
		return validationResult("At least one issue key is required"), nil
	}

	results := make([]BulkItemResult, 0, len(args.Keys))
	for _, key := range args.Keys {
		if !jira.ValidateIssueKey(key) {
			results = append(results, BulkItemResult{Key: key, Status: "error", Message: "Invalid key format"})
			continue
		}

		transitions, err := t.service.Transitions(ctx, key)
		if err != nil {
			results = append(results, BulkItemResult{Key: key, Status: "error", Message: "Cannot get transitions"})
			continue
		}

		id, ok := jira.ResolveTransition(transitions, args.Transition)
		if !ok {
			results = append(results, BulkItemResult{Key: key, Status: "error", Message: fmt.Sprintf("Transition %q not available", args.Transition)})
			continue
		}

		if err := t.service.ApplyTransition(ctx, key, id); err != nil {
			results = append(results, BulkItemResult{Key: key, Status: "error", Message: bulkItemMessage(err)})
			continue
		}

		results = append(results, BulkItemResult{Key: key, Status: "success", Message: "Transitioned to " + args.Transition})
	}

	result := newBulkResult(results)
	return mcp.NewToolResultStructured(result, fmt.Sprintf("Transitioned %d/%d issues", result.Successful, result.TotalIssues)), nil
}

// BulkUpdateFields are the fields a bulk update may touch; empty means untouched.
type BulkUpdateFields struct {
	Summary  string `json:"summary,omitempty" jsonschema_description:"New summary"`
	Priority string `json:"priority,omitempty" jsonschema_description:"New priority name"`
	Assignee string `json:"assignee,omitempty" jsonschema_description:"New assignee, or \"null\" to unassign"`
}

// BulkUpdateArgs name the issues and the shared field updates.
type BulkUpdateArgs struct {
	Keys    []string         `json:"keys" jsonschema:"required" jsonschema_description:"Issue keys to update"`
	Updates BulkUpdateFields `json:"updates" jsonschema:"required" jsonschema_description:"Fields applied to every issue"`
}

func (t *Tools) handleBulkUpdate(ctx context.Context, _ mcp.CallToolRequest, args BulkUpdateArgs) (*mcp.CallToolResult, error) {
	if len(args.Keys) == 0 {
		return validationResult("At least one issue key is required"), nil
	}
	if args.Updates.Summary == "" && args.Updates.Priority == "" && args.Updates.Assignee == "" {
		return validationResult("At least one field to update is required"), nil
	}

	input := jira.UpdateIssueInput{
		Summary:  args.Updates.Summary,
		Priority: args.Updates.Priority,
		Assignee: args.Updates.Assignee,
	}

	results := make([]BulkItemResult, 0, len(args.Keys))
	for _, key := range args.Keys {
		if !jira.ValidateIssueKey(key) {
			results = append(results, BulkItemResult{Key: key, Status: "error", Message: "Invalid key format"})
			continue
		}

		if _, err := t.service.UpdateIssue(ctx, key, input); err != nil {
			results = append(results, BulkItemResult{Key: key, Status: "error", Message: bulkItemMessage(err)})
			continue
		}

		results = append(results, BulkItemResult{Key: key, Status: "success", Message: "Updated successfully"})
	}

	result := newBulkResult(results)
	return mcp.NewToolResultStructured(result, fmt.Sprintf("Updated %d/%d issues", result.Successful, result.TotalIssues)), nil
}

// WorkflowsResult lists the instance's workflows.
type WorkflowsResult struct {
	WorkflowCount int             `json:"workflow_count"`
	Workflows     []jira.Workflow `json:"workflows"`
}

func (t *Tools) handleWorkflows(ctx context.Context, _ mcp.CallToolRequest, _ EmptyArgs) (*mcp.CallToolResult, error) {
	workflows, err := t.service.Workflows(ctx)
	if err != nil {
		return errorResult(err, "Workflows"), nil
	}

	result := WorkflowsResult{WorkflowCount: len(workflows), Workflows: workflows}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("Found %d workflows", len(workflows))), nil
}
