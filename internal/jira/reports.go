package jira

import (
	"context"
	"math"
)

// TimeTrackedIssue is the per-issue projection of the time tracking report.
type TimeTrackedIssue struct {
	Key                  string  `json:"key"`
	Summary              string  `json:"summary"`
	TimeSpentSeconds     int     `json:"time_spent_seconds"`
	TimeSpentHours       float64 `json:"time_spent_hours"`
	TimeEstimatedSeconds int     `json:"time_estimated_seconds"`
	TimeEstimatedHours   float64 `json:"time_estimated_hours"`
	Assignee             string  `json:"assignee"`
}

// TimeTrackingReport aggregates logged and estimated time across a project.
type TimeTrackingReport struct {
	Project             string             `json:"project"`
	TotalLoggedHours    float64            `json:"total_logged_hours"`
	TotalEstimatedHours float64            `json:"total_estimated_hours"`
	IssuesWithTime      int                `json:"issues_with_time_tracking"`
	Issues              []TimeTrackedIssue `json:"issues"`
}

func roundHours(seconds int) float64 {
	return math.Round(float64(seconds)/3600*100) / 100
}

// TimeTracking builds the time tracking report for issues in a project with
// logged time.
func (s *Service) TimeTracking(ctx context.Context, project string) (*TimeTrackingReport, error) {
	jql := "project = " + project + " AND timespent > 0"
	fields := []string{"summary", "timespent", "timeoriginalestimate", "assignee"}

	result, err := s.searchPage(ctx, jql, 100, fields, nil)
	if err != nil {
		return nil, err
	}

	report := &TimeTrackingReport{
		Project: project,
		Issues:  make([]TimeTrackedIssue, 0, len(result.Issues)),
	}

	totalLogged := 0
	totalEstimated := 0
	for _, issue := range result.Issues {
		spent := issue.Fields.TimeSpent
		estimated := issue.Fields.TimeOriginalEstimate
		totalLogged += spent
		totalEstimated += estimated

		report.Issues = append(report.Issues, TimeTrackedIssue{
			Key:                  issue.Key,
			Summary:              issue.Fields.Summary,
			TimeSpentSeconds:     spent,
			TimeSpentHours:       roundHours(spent),
			TimeEstimatedSeconds: estimated,
			TimeEstimatedHours:   roundHours(estimated),
			Assignee:             issue.Fields.assigneeName(),
		})
	}

	report.TotalLoggedHours = roundHours(totalLogged)
	report.TotalEstimatedHours = roundHours(totalEstimated)
	report.IssuesWithTime = len(report.Issues)
	return report, nil
}
