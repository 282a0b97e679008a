package mcp

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"gitlab.com/your-org/jira-mcp/internal/jira"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (t *Tools) registerIssueTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool(
			"get_user_stories",
			mcp.WithDescription("Get user stories from JIRA, optionally scoped to one project"),
			mcp.WithInputSchema[UserStoriesArgs](),
			mcp.WithOutputSchema[UserStoriesResult](),
		),
		mcp.NewTypedToolHandler(t.handleUserStories),
	)

	s.AddTool(
		mcp.NewTool(
			"get_issue",
			mcp.WithDescription("Get a specific JIRA issue by key"),
			mcp.WithInputSchema[IssueKeyArgs](),
			mcp.WithOutputSchema[jira.IssueDetail](),
		),
		mcp.NewTypedToolHandler(t.handleGetIssue),
	)

	s.AddTool(
		mcp.NewTool(
			"search_issues",
			mcp.WithDescription("Search JIRA issues using JQL"),
			mcp.WithInputSchema[SearchIssuesArgs](),
			mcp.WithOutputSchema[SearchIssuesResult](),
		),
		mcp.NewTypedToolHandler(t.handleSearchIssues),
	)

	s.AddTool(
		mcp.NewTool(
			"get_recent_issues",
			mcp.WithDescription("Get recently updated issues"),
			mcp.WithInputSchema[RecentIssuesArgs](),
			mcp.WithOutputSchema[RecentIssuesResult](),
		),
		mcp.NewTypedToolHandler(t.handleRecentIssues),
	)

	s.AddTool(
		mcp.NewTool(
			"get_issues_by_assignee",
			mcp.WithDescription("Get issues assigned to a specific user"),
			mcp.WithInputSchema[IssuesByAssigneeArgs](),
			mcp.WithOutputSchema[IssuesByAssigneeResult](),
		),
		mcp.NewTypedToolHandler(t.handleIssuesByAssignee),
	)

	s.AddTool(
		mcp.NewTool(
			"create_issue",
			mcp.WithDescription("Create a new JIRA issue"),
			mcp.WithInputSchema[CreateIssueArgs](),
			mcp.WithOutputSchema[CreateIssueResult](),
		),
		mcp.NewTypedToolHandler(t.handleCreateIssue),
	)

	s.AddTool(
		mcp.NewTool(
			"update_issue",
			mcp.WithDescription("Update fields on an existing JIRA issue"),
			mcp.WithInputSchema[UpdateIssueArgs](),
			mcp.WithOutputSchema[UpdateIssueResult](),
		),
		mcp.NewTypedToolHandler(t.handleUpdateIssue),
	)

	s.AddTool(
		mcp.NewTool(
			"advanced_jql_search",
			mcp.WithDescription("Advanced JIRA search with custom fields and expand options"),
			mcp.WithInputSchema[AdvancedSearchArgs](),
			mcp.WithOutputSchema[AdvancedSearchResult](),
		),
		mcp.NewTypedToolHandler(t.handleAdvancedSearch),
	)

	s.AddTool(
		mcp.NewTool(
			"assign_issue",
			mcp.WithDescription("Assign an issue to a user, or unassign it"),
			mcp.WithInputSchema[AssignIssueArgs](),
			mcp.WithOutputSchema[OperationResult](),
		),
		mcp.NewTypedToolHandler(t.handleAssignIssue),
	)

	s.AddTool(
		mcp.NewTool(
			"clone_issue",
			mcp.WithDescription("Clone/duplicate an existing issue"),
			mcp.WithInputSchema[CloneIssueArgs](),
			mcp.WithOutputSchema[CloneIssueResult](),
		),
		mcp.NewTypedToolHandler(t.handleCloneIssue),
	)

	s.AddTool(
		mcp.NewTool(
			"export_issues",
			mcp.WithDescription("Export issues matching a JQL query to JSON or CSV"),
			mcp.WithInputSchema[ExportIssuesArgs](),
			mcp.WithOutputSchema[ExportIssuesResult](),
		),
		mcp.NewTypedToolHandler(t.handleExportIssues),
	)
}

// OperationResult acknowledges a state-changing operation.
type OperationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// IssueKeyArgs carries the single issue key most issue-scoped tools take.
type IssueKeyArgs struct {
	Key string `json:"key" jsonschema:"required" jsonschema_description:"Issue key, e.g. PROJ-123"`
}

// UserStoriesArgs parameters for listing user stories.
type UserStoriesArgs struct {
	Project string `json:"project,omitempty" jsonschema_description:"Optional project key to scope the search"`
	Limit   int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=100" jsonschema_description:"Maximum number of stories to return"`
}

// UserStoriesResult wraps the story list.
type UserStoriesResult struct {
	Stories []jira.StorySummary `json:"stories"`
}

func (t *Tools) handleUserStories(ctx context.Context, _ mcp.CallToolRequest, args UserStoriesArgs) (*mcp.CallToolResult, error) {
	if args.Project != "" {
		if res := requireProjectKey(args.Project); res != nil {
			return res, nil
		}
	}

	stories, err := t.service.UserStories(ctx, args.Project, args.Limit)
	if err != nil {
		return errorResult(err, "Project "+args.Project), nil
	}

	result := UserStoriesResult{Stories: stories}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("Found %d user stories", len(stories))), nil
}

func (t *Tools) handleGetIssue(ctx context.Context, _ mcp.CallToolRequest, args IssueKeyArgs) (*mcp.CallToolResult, error) {
	if res := requireIssueKey(args.Key); res != nil {
		return res, nil
	}

	issue, err := t.service.GetIssue(ctx, args.Key)
	if err != nil {
		return errorResult(err, "Issue "+args.Key), nil
	}

	return mcp.NewToolResultStructured(*issue, fmt.Sprintf("%s: %s (%s)", issue.Key, issue.Summary, issue.Status)), nil
}

// SearchIssuesArgs parameters for JQL searches.
type SearchIssuesArgs struct {
	JQL   string `json:"jql" jsonschema:"required" jsonschema_description:"JQL query string"`
	Limit int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=100" jsonschema_description:"Maximum number of issues to return"`
}

// SearchIssuesResult is the search response payload.
type SearchIssuesResult struct {
	Total    int                 `json:"total"`
	Returned int                 `json:"returned"`
	Issues   []jira.IssueSummary `json:"issues"`
}

func (t *Tools) handleSearchIssues(ctx context.Context, _ mcp.CallToolRequest, args SearchIssuesArgs) (*mcp.CallToolResult, error) {
	if strings.TrimSpace(args.JQL) == "" {
		return validationResult("JQL query must not be empty"), nil
	}

	t.logger.Debug("running JQL search", "jql", args.JQL, "limit", args.Limit)

	issues, total, err := t.service.SearchIssues(ctx, args.JQL, args.Limit)
	if err != nil {
		return errorResult(err, "Search results"), nil
	}

	t.cache.SetLastJQL(args.JQL)

	result := SearchIssuesResult{Total: total, Returned: len(issues), Issues: issues}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("Found %d/%d issues for JQL", len(issues), total)), nil
}

// RecentIssuesArgs parameters for the recently-updated listing.
type RecentIssuesArgs struct {
	Days  *int `json:"days,omitempty" jsonschema:"minimum=1,maximum=365" jsonschema_description:"How many days back to look (default 7)"`
	Limit int  `json:"limit,omitempty" jsonschema:"minimum=1,maximum=100" jsonschema_description:"Maximum number of issues to return"`
}

// RecentIssuesResult is the recently-updated response payload.
type RecentIssuesResult struct {
	DaysBack   int                `json:"days_back"`
	TotalFound int                `json:"total_found"`
	Returned   int                `json:"returned"`
	Issues     []jira.RecentIssue `json:"issues"`
}

func (t *Tools) handleRecentIssues(ctx context.Context, _ mcp.CallToolRequest, args RecentIssuesArgs) (*mcp.CallToolResult, error) {
	days := 7
	if args.Days != nil {
		days = *args.Days
	}
	if days < 1 || days > 365 {
		return validationResult("Days must be between 1 and 365"), nil
	}

	issues, total, err := t.service.RecentIssues(ctx, days, args.Limit)
	if err != nil {
		return errorResult(err, "Search results"), nil
	}

	result := RecentIssuesResult{DaysBack: days, TotalFound: total, Returned: len(issues), Issues: issues}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("Found %d issues updated in the last %d days", len(issues), days)), nil
}

// IssuesByAssigneeArgs parameters for the per-assignee listing.
type IssuesByAssigneeArgs struct {
	Assignee string `json:"assignee" jsonschema:"required" jsonschema_description:"Assignee display name, email or account id"`
	Limit    int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=100" jsonschema_description:"Maximum number of issues to return"`
}

// IssuesByAssigneeResult is the per-assignee response payload.
type IssuesByAssigneeResult struct {
	Assignee   string               `json:"assignee"`
	TotalFound int                  `json:"total_found"`
	Returned   int                  `json:"returned"`
	Issues     []jira.AssignedIssue `json:"issues"`
}

func (t *Tools) handleIssuesByAssignee(ctx context.Context, _ mcp.CallToolRequest, args IssuesByAssigneeArgs) (*mcp.CallToolResult, error) {
	if strings.TrimSpace(args.Assignee) == "" {
		return validationResult("Assignee must not be empty"), nil
	}

	issues, total, err := t.service.IssuesByAssignee(ctx, args.Assignee, args.Limit)
	if err != nil {
		return errorResult(err, "Search results"), nil
	}

	result := IssuesByAssigneeResult{Assignee: args.Assignee, TotalFound: total, Returned: len(issues), Issues: issues}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("Found %d issues assigned to %s", len(issues), args.Assignee)), nil
}

// CreateIssueArgs define creation parameters.
type CreateIssueArgs struct {
	Project     string `json:"project" jsonschema:"required" jsonschema_description:"Project key"`
	Summary     string `json:"summary" jsonschema:"required" jsonschema_description:"Issue summary"`
	Description string `json:"description,omitempty" jsonschema_description:"Plain-text description"`
	IssueType   string `json:"issue_type,omitempty" jsonschema_description:"Issue type name (default Task)"`
	Priority    string `json:"priority,omitempty" jsonschema_description:"Priority name (default Medium)"`
	Assignee    string `json:"assignee,omitempty" jsonschema_description:"Assignee display name, email or account id"`
}

// CreateIssueResult reports the created issue.
type CreateIssueResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Key     string `json:"key"`
	ID      string `json:"id"`
}

func (t *Tools) handleCreateIssue(ctx context.Context, _ mcp.CallToolRequest, args CreateIssueArgs) (*mcp.CallToolResult, error) {
	if res := requireProjectKey(args.Project); res != nil {
		return res, nil
	}
	if strings.TrimSpace(args.Summary) == "" {
		return validationResult("Summary must not be empty"), nil
	}

	if args.IssueType == "" {
		args.IssueType = "Task"
	}
	if args.Priority == "" {
		args.Priority = "Medium"
	}

	created, err := t.service.CreateIssue(ctx, jira.CreateIssueInput{
		Project:     args.Project,
		Summary:     args.Summary,
		Description: args.Description,
		IssueType:   args.IssueType,
		Priority:    args.Priority,
		Assignee:    args.Assignee,
	})
	if err != nil {
		return errorResult(err, "Project "+args.Project), nil
	}

	result := CreateIssueResult{
		Success: true,
		Message: "Issue created successfully",
		Key:     created.Key,
		ID:      created.ID,
	}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("Created issue %s", created.Key)), nil
}

// UpdateIssueArgs define fields to update; empty fields are left untouched.
type UpdateIssueArgs struct {
	Key         string `json:"key" jsonschema:"required" jsonschema_description:"Issue key"`
	Summary     string `json:"summary,omitempty" jsonschema_description:"New summary"`
	Description string `json:"description,omitempty" jsonschema_description:"New plain-text description"`
	Priority    string `json:"priority,omitempty" jsonschema_description:"New priority name"`
	Assignee    string `json:"assignee,omitempty" jsonschema_description:"New assignee, or \"null\" to unassign"`
}

// UpdateIssueResult reports which fields were sent.
type UpdateIssueResult struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	UpdatedFields []string `json:"updated_fields"`
}

func (t *Tools) handleUpdateIssue(ctx context.Context, _ mcp.CallToolRequest, args UpdateIssueArgs) (*mcp.CallToolResult, error) {
	if res := requireIssueKey(args.Key); res != nil {
		return res, nil
	}

	if args.Summary == "" && args.Description == "" && args.Priority == "" && args.Assignee == "" {
		return validationResult("At least one field to update is required"), nil
	}

	updated, err := t.service.UpdateIssue(ctx, args.Key, jira.UpdateIssueInput{
		Summary:     args.Summary,
		Description: args.Description,
		Priority:    args.Priority,
		Assignee:    args.Assignee,
	})
	if err != nil {
		return errorResult(err, "Issue "+args.Key), nil
	}

	result := UpdateIssueResult{
		Success:       true,
		Message:       fmt.Sprintf("Issue %s updated successfully", args.Key),
		UpdatedFields: updated,
	}
	return mcp.NewToolResultStructured(result, result.Message), nil
}

// AdvancedSearchArgs parameters for the advanced search.
type AdvancedSearchArgs struct {
	JQL    string   `json:"jql" jsonschema:"required" jsonschema_description:"JQL query string"`
	Fields []string `json:"fields,omitempty" jsonschema_description:"Fields to include in the response"`
	Expand []string `json:"expand,omitempty" jsonschema_description:"Expand options"`
	Limit  int      `json:"limit,omitempty" jsonschema:"minimum=1,maximum=100" jsonschema_description:"Maximum number of issues to return"`
}

// AdvancedSearchResult returns issues exactly as the API shaped them.
type AdvancedSearchResult struct {
	JQL             string `json:"jql"`
	Total           int    `json:"total"`
	Returned        int    `json:"returned"`
	FieldsRequested any    `json:"fields_requested"`
	ExpandRequested any    `json:"expand_requested"`
	Issues          any    `json:"issues"`
}

func (t *Tools) handleAdvancedSearch(ctx context.Context, _ mcp.CallToolRequest, args AdvancedSearchArgs) (*mcp.CallToolResult, error) {
	if strings.TrimSpace(args.JQL) == "" {
		return validationResult("JQL query must not be empty"), nil
	}

	search, err := t.service.AdvancedSearch(ctx, args.JQL, args.Fields, args.Expand, args.Limit)
	if err != nil {
		return errorResult(err, "Search results"), nil
	}

	t.cache.SetLastJQL(args.JQL)

	result := AdvancedSearchResult{
		JQL:             args.JQL,
		Total:           search.Total,
		Returned:        len(search.Issues),
		FieldsRequested: "all",
		ExpandRequested: "none",
		Issues:          search.Issues,
	}
	if len(args.Fields) > 0 {
		result.FieldsRequested = args.Fields
	}
	if len(args.Expand) > 0 {
		result.ExpandRequested = args.Expand
	}

	return mcp.NewToolResultStructured(result, fmt.Sprintf("Found %d/%d issues for JQL", result.Returned, result.Total)), nil
}

// AssignIssueArgs parameters for assignment.
type AssignIssueArgs struct {
	Key      string `json:"key" jsonschema:"required" jsonschema_description:"Issue key"`
	Assignee string `json:"assignee" jsonschema:"required" jsonschema_description:"User to assign, or \"null\"/empty to unassign"`
}

func (t *Tools) handleAssignIssue(ctx context.Context, _ mcp.CallToolRequest, args AssignIssueArgs) (*mcp.CallToolResult, error) {
	if res := requireIssueKey(args.Key); res != nil {
		return res, nil
	}

	action, err := t.service.AssignIssue(ctx, args.Key, args.Assignee)
	if err != nil {
		return errorResult(err, "Issue "+args.Key), nil
	}

	result := OperationResult{Success: true, Message: fmt.Sprintf("Issue %s %s", args.Key, action)}
	return mcp.NewToolResultStructured(result, result.Message), nil
}

// CloneIssueArgs parameters for cloning.
type CloneIssueArgs struct {
	Key     string `json:"key" jsonschema:"required" jsonschema_description:"Source issue key"`
	Summary string `json:"summary" jsonschema:"required" jsonschema_description:"Summary for the cloned issue"`
}

// CloneIssueResult reports the clone.
type CloneIssueResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	SourceKey string `json:"source_key"`
	ClonedKey string `json:"cloned_key"`
	ClonedID  string `json:"cloned_id"`
}

func (t *Tools) handleCloneIssue(ctx context.Context, _ mcp.CallToolRequest, args CloneIssueArgs) (*mcp.CallToolResult, error) {
	if res := requireIssueKey(args.Key); res != nil {
		return res, nil
	}
	if strings.TrimSpace(args.Summary) == "" {
		return validationResult("Summary must not be empty"), nil
	}

	created, err := t.service.CloneIssue(ctx, args.Key, args.Summary)
	if err != nil {
		return errorResult(err, "Issue "+args.Key), nil
	}

	result := CloneIssueResult{
		Success:   true,
		Message:   "Issue cloned successfully",
		SourceKey: args.Key,
		ClonedKey: created.Key,
		ClonedID:  created.ID,
	}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("Cloned %s to %s", args.Key, created.Key)), nil
}

// ExportIssuesArgs parameters for the export tool.
type ExportIssuesArgs struct {
	JQL    string `json:"jql" jsonschema:"required" jsonschema_description:"JQL query selecting the issues to export"`
	Format string `json:"format" jsonschema:"required" jsonschema_description:"Export format: json or csv"`
}

// ExportIssuesResult carries the exported issues in the requested format.
type ExportIssuesResult struct {
	Format      string             `json:"format"`
	TotalIssues int                `json:"total_issues"`
	Issues      []jira.ExportIssue `json:"issues,omitempty"`
	CSVData     string             `json:"csv_data,omitempty"`
}

func (t *Tools) handleExportIssues(ctx context.Context, _ mcp.CallToolRequest, args ExportIssuesArgs) (*mcp.CallToolResult, error) {
	format := strings.ToLower(args.Format)
	if format != "json" && format != "csv" {
		return validationResult("Format must be 'json' or 'csv'"), nil
	}
	if strings.TrimSpace(args.JQL) == "" {
		return validationResult("JQL query must not be empty"), nil
	}

	issues, err := t.service.ExportIssues(ctx, args.JQL)
	if err != nil {
		return errorResult(err, "Search results"), nil
	}

	result := ExportIssuesResult{Format: format, TotalIssues: len(issues)}
	if format == "json" {
		result.Issues = issues
	} else {
		result.CSVData = exportCSV(issues)
	}

	return mcp.NewToolResultStructured(result, fmt.Sprintf("Exported %d issues as %s", len(issues), format)), nil
}

func exportCSV(issues []jira.ExportIssue) string {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	_ = w.Write([]string{"key", "summary", "status", "assignee", "reporter", "priority", "issuetype", "created", "updated"})
	for _, issue := range issues {
		_ = w.Write([]string{
			issue.Key,
			issue.Summary,
			issue.Status,
			issue.Assignee,
			issue.Reporter,
			issue.Priority,
			issue.IssueType,
			issue.Created,
			issue.Updated,
		})
	}
	w.Flush()
	return buf.String()
}
