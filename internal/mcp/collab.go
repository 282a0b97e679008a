package mcp

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/your-org/jira-mcp/internal/jira"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (t *Tools) registerCollabTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool(
			"add_comment",
			mcp.WithDescription("Add a comment to a JIRA issue"),
			mcp.WithInputSchema[AddCommentArgs](),
			mcp.WithOutputSchema[AddCommentResult](),
		),
		mcp.NewTypedToolHandler(t.handleAddComment),
	)

	s.AddTool(
		mcp.NewTool(
			"add_worklog",
			mcp.WithDescription("Log time spent on an issue"),
			mcp.WithInputSchema[AddWorklogArgs](),
			mcp.WithOutputSchema[AddWorklogResult](),
		),
		mcp.NewTypedToolHandler(t.handleAddWorklog),
	)

	s.AddTool(
		mcp.NewTool(
			"add_watcher",
			mcp.WithDescription("Add a watcher to an issue"),
			mcp.WithInputSchema[AddWatcherArgs](),
			mcp.WithOutputSchema[OperationResult](),
		),
		mcp.NewTypedToolHandler(t.handleAddWatcher),
	)

	s.AddTool(
		mcp.NewTool(
			"get_watchers",
			mcp.WithDescription("Get the watchers of an issue"),
			mcp.WithInputSchema[IssueKeyArgs](),
			mcp.WithOutputSchema[WatchersResult](),
		),
		mcp.NewTypedToolHandler(t.handleWatchers),
	)
}

// AddCommentArgs name the issue and the comment text.
type AddCommentArgs struct {
	Key     string `json:"key" jsonschema:"required" jsonschema_description:"Issue key"`
	Comment string `json:"comment" jsonschema:"required" jsonschema_description:"Comment text"`
}

// AddCommentResult reports the created comment.
type AddCommentResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	CommentID string `json:"comment_id"`
	Created   string `json:"created"`
}

func (t *Tools) handleAddComment(ctx context.Context, _ mcp.CallToolRequest, args AddCommentArgs) (*mcp.CallToolResult, error) {
	if res := requireIssueKey(args.Key); res != nil {
		return res, nil
	}
	if strings.TrimSpace(args.Comment) == "" {
		return validationResult("Comment must not be empty"), nil
	}

	comment, err := t.service.AddComment(ctx, args.Key, args.Comment)
	if err != nil {
		return errorResult(err, "Issue "+args.Key), nil
	}

	result := AddCommentResult{
		Success:   true,
		Message:   fmt.Sprintf("Comment added to %s", args.Key),
		CommentID: comment.ID,
		Created:   comment.Created,
	}
	return mcp.NewToolResultStructured(result, result.Message), nil
}

// AddWorklogArgs name the issue, the time spent and an optional comment.
type AddWorklogArgs struct {
	Key       string `json:"key" jsonschema:"required" jsonschema_description:"Issue key"`
	TimeSpent string `json:"time_spent" jsonschema:"required" jsonschema_description:"Time spent in Jira duration format, e.g. 2h or 1d 30m"`
	Comment   string `json:"comment,omitempty" jsonschema_description:"Optional worklog comment"`
}

// AddWorklogResult reports the created worklog.
type AddWorklogResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	TimeSpent string `json:"time_spent"`
	WorklogID string `json:"worklog_id"`
}

func (t *Tools) handleAddWorklog(ctx context.Context, _ mcp.CallToolRequest, args AddWorklogArgs) (*mcp.CallToolResult, error) {
	if res := requireIssueKey(args.Key); res != nil {
		return res, nil
	}
	if strings.TrimSpace(args.TimeSpent) == "" {
		return validationResult("Time spent must not be empty"), nil
	}

	worklog, err := t.service.AddWorklog(ctx, args.Key, args.TimeSpent, args.Comment)
	if err != nil {
		return errorResult(err, "Issue "+args.Key), nil
	}

	result := AddWorklogResult{
		Success:   true,
		Message:   fmt.Sprintf("Worklog added to %s", args.Key),
		TimeSpent: args.TimeSpent,
		WorklogID: worklog.ID,
	}
	return mcp.NewToolResultStructured(result, result.Message), nil
}

// AddWatcherArgs name the issue and the user to watch it.
type AddWatcherArgs struct {
	Key      string `json:"key" jsonschema:"required" jsonschema_description:"Issue key"`
	Username string `json:"username" jsonschema:"required" jsonschema_description:"Display name, email or account id of the watcher"`
}

func (t *Tools) handleAddWatcher(ctx context.Context, _ mcp.CallToolRequest, args AddWatcherArgs) (*mcp.CallToolResult, error) {
	if res := requireIssueKey(args.Key); res != nil {
		return res, nil
	}
	if strings.TrimSpace(args.Username) == "" {
		return validationResult("Username must not be empty"), nil
	}

	if err := t.service.AddWatcher(ctx, args.Key, args.Username); err != nil {
		return errorResult(err, "Issue "+args.Key), nil
	}

	result := OperationResult{Success: true, Message: fmt.Sprintf("Added %s as watcher to %s", args.Username, args.Key)}
	return mcp.NewToolResultStructured(result, result.Message), nil
}

// WatchersResult lists the watchers of one issue.
type WatchersResult struct {
	Issue        string         `json:"issue"`
	WatcherCount int            `json:"watcher_count"`
	Watchers     []jira.Watcher `json:"watchers"`
}

func (t *Tools) handleWatchers(ctx context.Context, _ mcp.CallToolRequest, args IssueKeyArgs) (*mcp.CallToolResult, error) {
	if res := requireIssueKey(args.Key); res != nil {
		return res, nil
	}

	watchers, err := t.service.Watchers(ctx, args.Key)
	if err != nil {
		return errorResult(err, "Issue "+args.Key), nil
	}

	result := WatchersResult{Issue: args.Key, WatcherCount: len(watchers), Watchers: watchers}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("%d watchers on %s", len(watchers), args.Key)), nil
}
