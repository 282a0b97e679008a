package jira

import (
	"context"
	"math"
	"strings"
	"time"
)

const fetchFailed = "Error: Unable to fetch"

// Statistics is the instance-wide summary. Count fields hold either an int
// or the fetch-failure marker string, mirroring the per-section best-effort
// collection: one failing section never fails the whole report.
type Statistics struct {
	InstanceURL         string         `json:"instance_url"`
	CollectedAt         string         `json:"collected_at"`
	TotalProjects       any            `json:"total_projects"`
	TotalIssues         any            `json:"total_issues"`
	TotalUsers          any            `json:"total_users"`
	TotalBoards         any            `json:"total_boards"`
	TotalCustomFields   any            `json:"total_custom_fields"`
	TotalSystemFields   any            `json:"total_system_fields"`
	TotalWorkflows      any            `json:"total_workflows"`
	IssuesByType        map[string]any `json:"issues_by_type"`
	IssuesByStatus      map[string]any `json:"issues_by_status"`
	AvgIssuesPerProject float64        `json:"avg_issues_per_project"`
}

var (
	statInstanceTypes    = []string{"Story", "Task", "Bug", "Sub-task", "Epic"}
	statInstanceStatuses = []string{"To Do", "In Progress", "Done", "Open", "Closed"}
)

// Statistics collects instance-wide totals section by section.
func (s *Service) Statistics(ctx context.Context, instanceURL string) *Statistics {
	stats := &Statistics{
		InstanceURL:    instanceURL,
		CollectedAt:    time.Now().Format(time.RFC3339),
		IssuesByType:   make(map[string]any, len(statInstanceTypes)),
		IssuesByStatus: make(map[string]any, len(statInstanceStatuses)),
	}

	if projects, err := s.Projects(ctx); err == nil {
		stats.TotalProjects = len(projects)
	} else {
		stats.TotalProjects = fetchFailed
	}

	if total, err := s.CountIssues(ctx, "order by created DESC"); err == nil {
		stats.TotalIssues = total
	} else {
		stats.TotalIssues = fetchFailed
	}

	if users, err := s.AllUsers(ctx, 1000); err == nil {
		stats.TotalUsers = len(users)
	} else {
		stats.TotalUsers = fetchFailed
	}

	if boards, err := s.Boards(ctx); err == nil {
		stats.TotalBoards = boards.Total
	} else {
		stats.TotalBoards = fetchFailed
	}

	if custom, system, err := s.FieldCounts(ctx); err == nil {
		stats.TotalCustomFields = custom
		stats.TotalSystemFields = system
	} else {
		stats.TotalCustomFields = fetchFailed
		stats.TotalSystemFields = fetchFailed
	}

	if workflows, err := s.Workflows(ctx); err == nil {
		stats.TotalWorkflows = len(workflows)
	} else {
		stats.TotalWorkflows = fetchFailed
	}

	for _, issueType := range statInstanceTypes {
		key := strings.ToLower(issueType)
		if count, err := s.CountIssues(ctx, "issuetype = '"+issueType+"'"); err == nil {
			stats.IssuesByType[key] = count
		} else {
			stats.IssuesByType[key] = "Error"
		}
	}

	for _, status := range statInstanceStatuses {
		key := strings.ReplaceAll(strings.ToLower(status), " ", "_")
		if count, err := s.CountIssues(ctx, "status = '"+status+"'"); err == nil {
			stats.IssuesByStatus[key] = count
		} else {
			stats.IssuesByStatus[key] = "Error"
		}
	}

	issues, issuesOK := stats.TotalIssues.(int)
	projects, projectsOK := stats.TotalProjects.(int)
	if issuesOK && projectsOK && projects > 0 {
		stats.AvgIssuesPerProject = math.Round(float64(issues)/float64(projects)*100) / 100
	}

	return stats
}
