package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

func (s *Service) searchPage(ctx context.Context, jql string, maxResults int, fields, expand []string) (*rawSearchResult, error) {
	params := url.Values{}
	params.Set("jql", jql)
	params.Set("maxResults", strconv.Itoa(maxResults))
	if len(fields) > 0 {
		params.Set("fields", strings.Join(fields, ","))
	}
	if len(expand) > 0 {
		params.Set("expand", strings.Join(expand, ","))
	}

	var result rawSearchResult
	if err := s.client.Get(ctx, apiPath("search"), params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CountIssues returns the number of issues matching jql without fetching any.
func (s *Service) CountIssues(ctx context.Context, jql string) (int, error) {
	result, err := s.searchPage(ctx, jql, 0, nil, nil)
	if err != nil {
		return 0, err
	}
	return result.Total, nil
}

// UserStories lists Story-type issues, optionally scoped to one project.
// The project key must be validated by the caller before use in JQL.
func (s *Service) UserStories(ctx context.Context, project string, limit int) ([]StorySummary, error) {
	jql := "issuetype = Story ORDER BY created DESC"
	if project != "" {
		jql = fmt.Sprintf("project = %s AND issuetype = Story ORDER BY created DESC", project)
	}

	result, err := s.searchPage(ctx, jql, clampLimit(limit, 10), nil, nil)
	if err != nil {
		return nil, err
	}

	stories := make([]StorySummary, 0, len(result.Issues))
	for _, issue := range result.Issues {
		stories = append(stories, StorySummary{
			Key:         issue.Key,
			Summary:     issue.Fields.Summary,
			Status:      issue.Fields.statusName(),
			Description: adfText(issue.Fields.Description),
		})
	}
	return stories, nil
}

// SearchIssues executes a JQL search and returns flattened summaries.
func (s *Service) SearchIssues(ctx context.Context, jql string, limit int) ([]IssueSummary, int, error) {
	result, err := s.searchPage(ctx, jql, clampLimit(limit, 10), nil, nil)
	if err != nil {
		return nil, 0, err
	}

	issues := make([]IssueSummary, 0, len(result.Issues))
	for _, issue := range result.Issues {
		issues = append(issues, IssueSummary{
			Key:         issue.Key,
			Summary:     issue.Fields.Summary,
			Status:      issue.Fields.statusName(),
			Assignee:    issue.Fields.assigneeName(),
			Priority:    issue.Fields.priorityName(),
			IssueType:   issue.Fields.issueTypeName(),
			Created:     issue.Fields.Created,
			Description: truncate(adfText(issue.Fields.Description), 200),
		})
	}
	return issues, result.Total, nil
}

// RecentIssues lists issues updated within the last days.
func (s *Service) RecentIssues(ctx context.Context, days, limit int) ([]RecentIssue, int, error) {
	jql := fmt.Sprintf("updated >= -%dd ORDER BY updated DESC", days)

	result, err := s.searchPage(ctx, jql, clampLimit(limit, 10), nil, nil)
	if err != nil {
		return nil, 0, err
	}

	issues := make([]RecentIssue, 0, len(result.Issues))
	for _, issue := range result.Issues {
		issues = append(issues, RecentIssue{
			Key:       issue.Key,
			Summary:   issue.Fields.Summary,
			Status:    issue.Fields.statusName(),
			Assignee:  issue.Fields.assigneeName(),
			Updated:   issue.Fields.Updated,
			IssueType: issue.Fields.issueTypeName(),
		})
	}
	return issues, result.Total, nil
}

// IssuesByAssignee lists issues assigned to the given user.
func (s *Service) IssuesByAssignee(ctx context.Context, assignee string, limit int) ([]AssignedIssue, int, error) {
	jql := fmt.Sprintf("assignee = %q ORDER BY updated DESC", assignee)

	result, err := s.searchPage(ctx, jql, clampLimit(limit, 10), nil, nil)
	if err != nil {
		return nil, 0, err
	}

	issues := make([]AssignedIssue, 0, len(result.Issues))
	for _, issue := range result.Issues {
		issues = append(issues, AssignedIssue{
			Key:       issue.Key,
			Summary:   issue.Fields.Summary,
			Status:    issue.Fields.statusName(),
			Priority:  issue.Fields.priorityName(),
			IssueType: issue.Fields.issueTypeName(),
			Updated:   issue.Fields.Updated,
		})
	}
	return issues, result.Total, nil
}

// AdvancedSearchResult carries unshaped issues for the advanced search tool.
type AdvancedSearchResult struct {
	Total  int               `json:"total"`
	Issues []json.RawMessage `json:"issues"`
}

// AdvancedSearch executes a JQL search with caller-chosen fields and expand
// options, returning issues exactly as the API shaped them.
func (s *Service) AdvancedSearch(ctx context.Context, jql string, fields, expand []string, limit int) (*AdvancedSearchResult, error) {
	params := url.Values{}
	params.Set("jql", jql)
	params.Set("maxResults", strconv.Itoa(clampLimit(limit, 10)))
	if len(fields) > 0 {
		params.Set("fields", strings.Join(fields, ","))
	}
	if len(expand) > 0 {
		params.Set("expand", strings.Join(expand, ","))
	}

	var result AdvancedSearchResult
	if err := s.client.Get(ctx, apiPath("search"), params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExportIssues fetches up to 1000 issues matching jql in the export projection.
func (s *Service) ExportIssues(ctx context.Context, jql string) ([]ExportIssue, error) {
	result, err := s.searchPage(ctx, jql, 1000, nil, nil)
	if err != nil {
		return nil, err
	}

	issues := make([]ExportIssue, 0, len(result.Issues))
	for _, issue := range result.Issues {
		issues = append(issues, ExportIssue{
			Key:       issue.Key,
			Summary:   issue.Fields.Summary,
			Status:    issue.Fields.statusName(),
			Assignee:  issue.Fields.assigneeName(),
			Reporter:  issue.Fields.reporterName(),
			Priority:  issue.Fields.priorityName(),
			IssueType: issue.Fields.issueTypeName(),
			Created:   issue.Fields.Created,
			Updated:   issue.Fields.Updated,
		})
	}
	return issues, nil
}
