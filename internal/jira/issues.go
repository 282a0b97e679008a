package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// GetIssue fetches a single issue and flattens it.
func (s *Service) GetIssue(ctx context.Context, key string) (*IssueDetail, error) {
	var issue rawIssue
	if err := s.client.Get(ctx, apiPath("issue", url.PathEscape(key)), nil, &issue); err != nil {
		return nil, err
	}

	detail := IssueDetail{
		Key:         issue.Key,
		Summary:     issue.Fields.Summary,
		Status:      issue.Fields.statusName(),
		Assignee:    issue.Fields.assigneeName(),
		Reporter:    issue.Fields.reporterName(),
		Priority:    issue.Fields.priorityName(),
		IssueType:   issue.Fields.issueTypeName(),
		Created:     issue.Fields.Created,
		Updated:     issue.Fields.Updated,
		Description: adfText(issue.Fields.Description),
	}
	return &detail, nil
}

// CreateIssueInput holds the caller-supplied fields for a new issue.
type CreateIssueInput struct {
	Project     string
	Summary     string
	Description string
	IssueType   string
	Priority    string
	Assignee    string
}

// CreateIssue creates a new issue and returns its key and id.
func (s *Service) CreateIssue(ctx context.Context, input CreateIssueInput) (*CreatedIssue, error) {
	fields := map[string]any{
		"project":   map[string]string{"key": input.Project},
		"summary":   input.Summary,
		"issuetype": map[string]string{"name": input.IssueType},
	}

	if input.Description != "" {
		fields["description"] = adfDocument(input.Description)
	}
	if input.Priority != "" {
		fields["priority"] = map[string]string{"name": input.Priority}
	}
	if input.Assignee != "" {
		fields["assignee"] = s.assigneeField(ctx, input.Assignee)
	}

	var created CreatedIssue
	if err := s.client.Post(ctx, apiPath("issue"), map[string]any{"fields": fields}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateIssueInput holds optional field updates; empty fields are skipped.
type UpdateIssueInput struct {
	Summary     string
	Description string
	Priority    string
	Assignee    string
}

// UpdateIssue applies the non-empty fields of input to the issue and returns
// the list of field names that were sent.
func (s *Service) UpdateIssue(ctx context.Context, key string, input UpdateIssueInput) ([]string, error) {
	fields := map[string]any{}

	if input.Summary != "" {
		fields["summary"] = input.Summary
	}
	if input.Description != "" {
		fields["description"] = adfDocument(input.Description)
	}
	if input.Priority != "" {
		fields["priority"] = map[string]string{"name": input.Priority}
	}
	if input.Assignee != "" {
		if isUnassign(input.Assignee) {
			fields["assignee"] = nil
		} else {
			fields["assignee"] = s.assigneeField(ctx, input.Assignee)
		}
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("jira: at least one field to update is required")
	}

	path := apiPath("issue", url.PathEscape(key))
	if err := s.client.Put(ctx, path, map[string]any{"fields": fields}, nil); err != nil {
		return nil, err
	}

	updated := make([]string, 0, len(fields))
	for name := range fields {
		updated = append(updated, name)
	}
	return updated, nil
}

// AssignIssue sets or clears the issue assignee, resolving the user
// account-id-first. It returns a short description of the action taken.
func (s *Service) AssignIssue(ctx context.Context, key, assignee string) (string, error) {
	var body any
	action := ""

	if isUnassign(assignee) {
		body = map[string]any{"accountId": nil}
		action = "unassigned"
	} else {
		accountID, err := s.ResolveAccountID(ctx, assignee)
		switch {
		case err == nil && accountID != "":
			body = map[string]string{"accountId": accountID}
		case err != nil:
			return "", err
		default:
			// Lookup reachable but no match.
			return "", fmt.Errorf("jira: user %q not found", assignee)
		}
		action = fmt.Sprintf("assigned to %s", assignee)
	}

	path := apiPath("issue", url.PathEscape(key), "assignee")
	if err := s.client.Put(ctx, path, body, nil); err != nil {
		return "", err
	}
	return action, nil
}

// assigneeField resolves a user reference to the payload fragment used in
// issue fields: accountId when the lookup succeeds, name as a fallback for
// deployments where the user search endpoint is unavailable.
func (s *Service) assigneeField(ctx context.Context, assignee string) map[string]string {
	if accountID, err := s.ResolveAccountID(ctx, assignee); err == nil && accountID != "" {
		return map[string]string{"accountId": accountID}
	}
	return map[string]string{"name": assignee}
}

func isUnassign(assignee string) bool {
	return assignee == "" || assignee == "null" || assignee == "NULL" || assignee == "Null"
}

// CloneIssue copies project, type, description and priority from an existing
// issue into a new one carrying the given summary.
func (s *Service) CloneIssue(ctx context.Context, key, summary string) (*CreatedIssue, error) {
	var source struct {
		Fields map[string]json.RawMessage `json:"fields"`
	}
	if err := s.client.Get(ctx, apiPath("issue", url.PathEscape(key)), nil, &source); err != nil {
		return nil, err
	}

	fields := map[string]any{"summary": summary}
	for _, name := range []string{"project", "issuetype", "description", "priority"} {
		if raw, ok := source.Fields[name]; ok && string(raw) != "null" {
			fields[name] = raw
		}
	}

	var created CreatedIssue
	if err := s.client.Post(ctx, apiPath("issue"), map[string]any{"fields": fields}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateSubtask creates a Sub-task under the parent issue, inheriting the
// parent's project.
func (s *Service) CreateSubtask(ctx context.Context, parentKey, summary, description string) (*CreatedIssue, error) {
	var parent struct {
		Fields struct {
			Project struct {
				Key string `json:"key"`
			} `json:"project"`
		} `json:"fields"`
	}
	params := url.Values{}
	params.Set("fields", "project")
	if err := s.client.Get(ctx, apiPath("issue", url.PathEscape(parentKey)), params, &parent); err != nil {
		return nil, err
	}

	fields := map[string]any{
		"project":   map[string]string{"key": parent.Fields.Project.Key},
		"parent":    map[string]string{"key": parentKey},
		"summary":   summary,
		"issuetype": map[string]string{"name": "Sub-task"},
	}
	if description != "" {
		fields["description"] = adfDocument(description)
	}

	var created CreatedIssue
	if err := s.client.Post(ctx, apiPath("issue"), map[string]any{"fields": fields}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Subtasks lists the child issues of the given issue.
func (s *Service) Subtasks(ctx context.Context, key string) ([]Subtask, error) {
	var issue rawIssue
	params := url.Values{}
	params.Set("fields", "subtasks")
	if err := s.client.Get(ctx, apiPath("issue", url.PathEscape(key)), params, &issue); err != nil {
		return nil, err
	}

	subtasks := make([]Subtask, 0, len(issue.Fields.Subtasks))
	for _, sub := range issue.Fields.Subtasks {
		subtasks = append(subtasks, Subtask{
			Key:      sub.Key,
			Summary:  sub.Fields.Summary,
			Status:   sub.Fields.statusName(),
			Assignee: sub.Fields.assigneeName(),
		})
	}
	return subtasks, nil
}

// IssueLinks lists both directions of the links attached to an issue.
func (s *Service) IssueLinks(ctx context.Context, key string) ([]IssueLink, error) {
	var issue rawIssue
	params := url.Values{}
	params.Set("fields", "issuelinks")
	if err := s.client.Get(ctx, apiPath("issue", url.PathEscape(key)), params, &issue); err != nil {
		return nil, err
	}

	links := make([]IssueLink, 0, len(issue.Fields.IssueLinks))
	for _, link := range issue.Fields.IssueLinks {
		linked := link.OutwardIssue
		direction := "outward"
		if linked == nil {
			linked = link.InwardIssue
			direction = "inward"
		}
		if linked == nil {
			continue
		}

		name := link.Type.Name
		if name == "" {
			name = "Unknown"
		}
		summary := linked.Fields.Summary
		if summary == "" {
			summary = "No summary"
		}

		links = append(links, IssueLink{
			LinkType:          name,
			Direction:         direction,
			LinkedIssueKey:    linked.Key,
			LinkedIssueStatus: linked.Fields.statusName(),
			LinkedIssueSum:    summary,
		})
	}
	return links, nil
}

// LinkIssues creates a typed link from inwardKey to outwardKey.
func (s *Service) LinkIssues(ctx context.Context, inwardKey, outwardKey, linkType string) error {
	body := map[string]any{
		"type":         map[string]string{"name": linkType},
		"inwardIssue":  map[string]string{"key": inwardKey},
		"outwardIssue": map[string]string{"key": outwardKey},
	}
	return s.client.Post(ctx, apiPath("issueLink"), body, nil)
}
