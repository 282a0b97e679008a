package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"gitlab.com/your-org/jira-mcp/internal/auth"
	"gitlab.com/your-org/jira-mcp/internal/config"
	"gitlab.com/your-org/jira-mcp/internal/jira"
	"gitlab.com/your-org/jira-mcp/internal/state"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestTools(t *testing.T, fn roundTripFunc) *Tools {
	t.Helper()
	creds := config.JiraConfig{Username: "user@example.com", APIToken: "token"}
	client, err := jira.NewClient("https://example.atlassian.net", creds, nil)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	client.SetTransport(auth.NewTransport(fn, creds))
	return &Tools{
		service: jira.NewService(client),
		cache:   state.NewCache(),
		siteURL: "https://example.atlassian.net",
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// noNetwork fails the test if any request reaches the transport.
func noNetwork(t *testing.T) roundTripFunc {
	t.Helper()
	return func(*http.Request) (*http.Response, error) {
		t.Fatalf("no request should be issued")
		return nil, nil
	}
}

func jsonResponse(t *testing.T, status int, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(data)),
		Header:     make(http.Header),
	}
}

func firstText(res *mcp.CallToolResult) string {
	if len(res.Content) == 0 {
		return ""
	}
	if text, ok := res.Content[0].(mcp.TextContent); ok {
		return text.Text
	}
	return ""
}

func TestNewServerRegistersAllTools(t *testing.T) {
	t.Parallel()

	srv := NewServer(Dependencies{
		Service: &jira.Service{},
		SiteURL: "https://example.atlassian.net/",
	})

	tools := srv.ListTools()
	expected := []string{
		"get_projects",
		"get_project_stats",
		"get_user_stories",
		"get_issue",
		"search_issues",
		"get_recent_issues",
		"get_issues_by_assignee",
		"create_issue",
		"update_issue",
		"add_comment",
		"get_transitions",
		"transition_issue",
		"add_worklog",
		"list_attachments",
		"get_issue_types",
		"get_project_components",
		"get_project_versions",
		"get_custom_fields",
		"get_users",
		"get_boards",
		"get_sprints",
		"get_issue_links",
		"get_subtasks",
		"create_subtask",
		"bulk_update_issues",
		"get_sprint_issues",
		"add_to_sprint",
		"get_burndown_data",
		"link_issues",
		"upload_attachment",
		"download_attachment",
		"list_webhooks",
		"create_webhook",
		"add_watcher",
		"get_watchers",
		"get_time_tracking_report",
		"get_project_roles",
		"export_issues",
		"advanced_jql_search",
		"bulk_transition_issues",
		"clone_issue",
		"create_version",
		"release_version",
		"get_user_permissions",
		"get_workflows",
		"get_jira_statistics",
		"assign_issue",
	}

	if len(tools) != len(expected) {
		t.Fatalf("unexpected tool count: got %d want %d", len(tools), len(expected))
	}
	for _, name := range expected {
		if _, ok := tools[name]; !ok {
			t.Fatalf("tool %q not registered", name)
		}
	}
}

func TestHandlersValidateBeforeNetwork(t *testing.T) {
	t.Parallel()

	tools := newTestTools(t, noNetwork(t))
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	cases := []struct {
		name string
		call func() (*mcp.CallToolResult, error)
		want string
	}{
		{
			name: "get_issue bad key",
			call: func() (*mcp.CallToolResult, error) {
				return tools.handleGetIssue(ctx, req, IssueKeyArgs{Key: "proj-1"})
			},
			want: "Error: Invalid issue key format",
		},
		{
			name: "get_issue injection",
			call: func() (*mcp.CallToolResult, error) {
				return tools.handleGetIssue(ctx, req, IssueKeyArgs{Key: "PROJ-1 OR reporter=admin"})
			},
			want: "Error: Invalid issue key format",
		},
		{
			name: "get_project_stats bad project",
			call: func() (*mcp.CallToolResult, error) {
				return tools.handleProjectStats(ctx, req, ProjectKeyArgs{Project: "proj"})
			},
			want: "Error: Invalid project key format",
		},
		{
			name: "search_issues empty jql",
			call: func() (*mcp.CallToolResult, error) {
				return tools.handleSearchIssues(ctx, req, SearchIssuesArgs{JQL: "   "})
			},
			want: "Error: JQL query must not be empty",
		},
		{
			name: "update_issue nothing to do",
			call: func() (*mcp.CallToolResult, error) {
				return tools.handleUpdateIssue(ctx, req, UpdateIssueArgs{Key: "PROJ-1"})
			},
			want: "Error: At least one field to update is required",
		},
		{
			name: "export_issues bad format",
			call: func() (*mcp.CallToolResult, error) {
				return tools.handleExportIssues(ctx, req, ExportIssuesArgs{JQL: "project = P", Format: "xml"})
			},
			want: "Error: Format must be 'json' or 'csv'",
		},
		{
			name: "add_to_sprint bad key",
			call: func() (*mcp.CallToolResult, error) {
				return tools.handleAddToSprint(ctx, req, AddToSprintArgs{SprintID: "42", Keys: []string{"bad key"}})
			},
			want: "Error: Invalid issue key format: bad key",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			res, err := tc.call()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.IsError {
				t.Fatalf("expected error result")
			}
			if got := firstText(res); got != tc.want {
				t.Fatalf("unexpected message: %q want %q", got, tc.want)
			}
		})
	}
}

func TestHandleRecentIssuesDaysRange(t *testing.T) {
	t.Parallel()

	tools := newTestTools(t, noNetwork(t))

	for _, days := range []int{0, -1, 366} {
		days := days
		res, err := tools.handleRecentIssues(context.Background(), mcp.CallToolRequest{}, RecentIssuesArgs{Days: &days})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsError {
			t.Fatalf("days=%d should be rejected", days)
		}
		if got := firstText(res); got != "Error: Days must be between 1 and 365" {
			t.Fatalf("unexpected message %q", got)
		}
	}
}

func TestHandleRecentIssuesDefaultsToSevenDays(t *testing.T) {
	t.Parallel()

	tools := newTestTools(t, func(r *http.Request) (*http.Response, error) {
		if got := r.URL.Query().Get("jql"); !strings.Contains(got, "-7d") {
			t.Fatalf("expected 7 day window, got %q", got)
		}
		return jsonResponse(t, http.StatusOK, map[string]any{"total": 0, "issues": []any{}}), nil
	})

	res, err := tools.handleRecentIssues(context.Background(), mcp.CallToolRequest{}, RecentIssuesArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", firstText(res))
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		err      error
		resource string
		want     string
	}{
		{
			name: "authentication",
			err:  &jira.APIError{StatusCode: 401},
			want: "Error: Authentication failed (401). Check JIRA_USERNAME and regenerate your API token.",
		},
		{
			name: "permission",
			err:  &jira.APIError{StatusCode: 403},
			want: "Error: Permission denied (403). The configured account does not have access to this resource.",
		},
		{
			name:     "not found",
			err:      &jira.APIError{StatusCode: 404},
			resource: "Issue PROJ-1",
			want:     "Error: Issue PROJ-1 not found.",
		},
		{
			name: "bad request detail",
			err:  &jira.APIError{StatusCode: 400, ErrorMessages: []string{"The value 'X' does not exist for the field 'project'."}},
			want: "Error: Invalid request (400): The value 'X' does not exist for the field 'project'.",
		},
		{
			name: "server error",
			err:  &jira.APIError{StatusCode: 502},
			want: "Error: HTTP 502",
		},
		{
			name: "decode",
			err:  &jira.DecodeError{Err: io.ErrUnexpectedEOF},
			want: "Error: Invalid response from Jira server.",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := errorMessage(tc.err, tc.resource); got != tc.want {
				t.Fatalf("errorMessage = %q, want %q", got, tc.want)
			}
			if !strings.HasPrefix(errorMessage(tc.err, tc.resource), "Error:") {
				t.Fatalf("all failure texts must start with Error:")
			}
		})
	}
}

func TestHandleGetIssueNotFound(t *testing.T) {
	t.Parallel()

	tools := newTestTools(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusNotFound, map[string]any{
			"errorMessages": []string{"Issue does not exist"},
		}), nil
	})

	res, err := tools.handleGetIssue(context.Background(), mcp.CallToolRequest{}, IssueKeyArgs{Key: "PROJ-404"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected error result")
	}
	if got := firstText(res); got != "Error: Issue PROJ-404 not found." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestBulkTransitionKeepsOrderAndCounts(t *testing.T) {
	t.Parallel()

	tools := newTestTools(t, func(r *http.Request) (*http.Response, error) {
		if strings.Contains(r.URL.Path, "PROJ-9") {
			return jsonResponse(t, http.StatusNotFound, map[string]any{}), nil
		}
		if r.Method == http.MethodGet {
			return jsonResponse(t, http.StatusOK, map[string]any{
				"transitions": []map[string]any{{"id": "31", "name": "Done"}},
			}), nil
		}
		return &http.Response{StatusCode: http.StatusNoContent, Body: io.NopCloser(strings.NewReader("")), Header: make(http.Header)}, nil
	})

	res, err := tools.handleBulkTransition(context.Background(), mcp.CallToolRequest{}, BulkTransitionArgs{
		Keys:       []string{"PROJ-1", "bad key", "PROJ-9", "PROJ-2"},
		Transition: "Done",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("bulk results are reported as success envelopes, got error: %s", firstText(res))
	}

	result, ok := res.StructuredContent.(BulkResult)
	if !ok {
		t.Fatalf("unexpected structured content %T", res.StructuredContent)
	}

	if result.TotalIssues != 4 || result.Successful != 2 || result.Failed != 2 {
		t.Fatalf("unexpected counts %+v", result)
	}
	if result.Successful+result.Failed != result.TotalIssues {
		t.Fatalf("counts must add up: %+v", result)
	}

	wantKeys := []string{"PROJ-1", "bad key", "PROJ-9", "PROJ-2"}
	for i, want := range wantKeys {
		if result.Results[i].Key != want {
			t.Fatalf("result %d should be %s, got %s", i, want, result.Results[i].Key)
		}
	}
	if result.Results[1].Message != "Invalid key format" {
		t.Fatalf("unexpected invalid-key message %q", result.Results[1].Message)
	}
	if result.Results[2].Status != "error" {
		t.Fatalf("missing issue should fail, got %+v", result.Results[2])
	}
}

func TestBulkUpdateInvalidKeysSkipNetwork(t *testing.T) {
	t.Parallel()

	tools := newTestTools(t, noNetwork(t))

	res, err := tools.handleBulkUpdate(context.Background(), mcp.CallToolRequest{}, BulkUpdateArgs{
		Keys:    []string{"nope", "also bad"},
		Updates: BulkUpdateFields{Priority: "High"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, ok := res.StructuredContent.(BulkResult)
	if !ok {
		t.Fatalf("unexpected structured content %T", res.StructuredContent)
	}
	if result.Successful != 0 || result.Failed != 2 {
		t.Fatalf("unexpected counts %+v", result)
	}
	for _, item := range result.Results {
		if item.Message != "Invalid key format" {
			t.Fatalf("unexpected message %q", item.Message)
		}
	}
}

func TestHandleSprintsMissingBoardIsSuccess(t *testing.T) {
	t.Parallel()

	tools := newTestTools(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusNotFound, map[string]any{}), nil
	})

	res, err := tools.handleSprints(context.Background(), mcp.CallToolRequest{}, SprintsArgs{BoardID: "99"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("missing board must not be a tool error")
	}

	result, ok := res.StructuredContent.(SprintsResult)
	if !ok {
		t.Fatalf("unexpected structured content %T", res.StructuredContent)
	}
	if result.SprintCount != 0 || len(result.Sprints) != 0 {
		t.Fatalf("expected empty sprint list, got %+v", result)
	}
	if result.Error != "Board 99 not found or not accessible" {
		t.Fatalf("unexpected error field %q", result.Error)
	}
}

func TestHandleExportIssuesCSV(t *testing.T) {
	t.Parallel()

	tools := newTestTools(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusOK, map[string]any{
			"total": 1,
			"issues": []map[string]any{
				{
					"key": "PROJ-1",
					"fields": map[string]any{
						"summary":   "Summary, with comma",
						"status":    map[string]string{"name": "Done"},
						"issuetype": map[string]string{"name": "Task"},
					},
				},
			},
		}), nil
	})

	res, err := tools.handleExportIssues(context.Background(), mcp.CallToolRequest{}, ExportIssuesArgs{JQL: "project = PROJ", Format: "CSV"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", firstText(res))
	}

	result, ok := res.StructuredContent.(ExportIssuesResult)
	if !ok {
		t.Fatalf("unexpected structured content %T", res.StructuredContent)
	}
	if result.Format != "csv" || result.TotalIssues != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("csv export must not carry the issue slice")
	}

	lines := strings.Split(strings.TrimSpace(result.CSVData), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if lines[0] != "key,summary,status,assignee,reporter,priority,issuetype,created,updated" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Summary, with comma"`) {
		t.Fatalf("comma field should be quoted: %q", lines[1])
	}
}

func TestHandleProjectsFillsCache(t *testing.T) {
	t.Parallel()

	tools := newTestTools(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusOK, []map[string]any{
			{"key": "ONE", "name": "One"},
			{"key": "TWO", "name": "Two"},
		}), nil
	})

	res, err := tools.handleProjects(context.Background(), mcp.CallToolRequest{}, EmptyArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", firstText(res))
	}

	cached := tools.cache.Projects()
	if len(cached) != 2 || cached[0].Key != "ONE" {
		t.Fatalf("projects should be cached, got %+v", cached)
	}
}

func TestHandleSearchIssuesRemembersJQL(t *testing.T) {
	t.Parallel()

	tools := newTestTools(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusOK, map[string]any{"total": 0, "issues": []any{}}), nil
	})

	_, err := tools.handleSearchIssues(context.Background(), mcp.CallToolRequest{}, SearchIssuesArgs{JQL: "project = PROJ"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tools.cache.LastJQL(); got != "project = PROJ" {
		t.Fatalf("expected JQL to be cached, got %q", got)
	}
}
