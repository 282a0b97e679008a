package jira

import (
	"context"
	"math"
	"net/url"
	"strings"
)

// BoardList carries the boards plus the server-reported total.
type BoardList struct {
	Total  int     `json:"total"`
	Boards []Board `json:"boards"`
}

// Boards lists the agile boards visible to the account.
func (s *Service) Boards(ctx context.Context) (*BoardList, error) {
	var out struct {
		Total  int `json:"total"`
		Values []struct {
			ID       int    `json:"id"`
			Name     string `json:"name"`
			Type     string `json:"type"`
			Location struct {
				Name string `json:"name"`
			} `json:"location"`
		} `json:"values"`
	}
	if err := s.client.Get(ctx, agilePath("board"), nil, &out); err != nil {
		return nil, err
	}

	boards := make([]Board, 0, len(out.Values))
	for _, b := range out.Values {
		location := b.Location.Name
		if location == "" {
			location = "Unknown"
		}
		boards = append(boards, Board{
			ID:       b.ID,
			Name:     b.Name,
			Type:     b.Type,
			Location: location,
		})
	}

	total := out.Total
	if total == 0 {
		total = len(boards)
	}
	return &BoardList{Total: total, Boards: boards}, nil
}

// Sprints lists the sprints of a board.
func (s *Service) Sprints(ctx context.Context, boardID string) ([]Sprint, error) {
	var out struct {
		Values []struct {
			ID        int    `json:"id"`
			Name      string `json:"name"`
			State     string `json:"state"`
			StartDate string `json:"startDate"`
			EndDate   string `json:"endDate"`
			Goal      string `json:"goal"`
		} `json:"values"`
	}
	path := agilePath("board", url.PathEscape(boardID), "sprint")
	if err := s.client.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}

	sprints := make([]Sprint, 0, len(out.Values))
	for _, sp := range out.Values {
		start, end := sp.StartDate, sp.EndDate
		if start == "" {
			start = "Not set"
		}
		if end == "" {
			end = "Not set"
		}
		sprints = append(sprints, Sprint{
			ID:        sp.ID,
			Name:      sp.Name,
			State:     sp.State,
			StartDate: start,
			EndDate:   end,
			Goal:      sp.Goal,
		})
	}
	return sprints, nil
}

// SprintIssues lists the issues assigned to a sprint, including story points.
func (s *Service) SprintIssues(ctx context.Context, sprintID string) ([]SprintIssue, error) {
	var out struct {
		Issues []rawIssue `json:"issues"`
	}
	path := agilePath("sprint", url.PathEscape(sprintID), "issue")
	if err := s.client.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}

	issues := make([]SprintIssue, 0, len(out.Issues))
	for _, issue := range out.Issues {
		issues = append(issues, SprintIssue{
			Key:         issue.Key,
			Summary:     issue.Fields.Summary,
			Status:      issue.Fields.statusName(),
			Assignee:    issue.Fields.assigneeName(),
			StoryPoints: issue.Fields.StoryPoints,
			IssueType:   issue.Fields.issueTypeName(),
		})
	}
	return issues, nil
}

// AddIssuesToSprint moves the given issues into a sprint in one call.
func (s *Service) AddIssuesToSprint(ctx context.Context, sprintID string, keys []string) error {
	body := map[string]any{"issues": keys}
	path := agilePath("sprint", url.PathEscape(sprintID), "issue")
	return s.client.Post(ctx, path, body, nil)
}

// BurndownData summarises story-point progress for a sprint.
type BurndownData struct {
	SprintID             string  `json:"sprint_id"`
	SprintName           string  `json:"sprint_name"`
	SprintState          string  `json:"sprint_state"`
	TotalStoryPoints     float64 `json:"total_story_points"`
	CompletedPoints      float64 `json:"completed_points"`
	InProgressPoints     float64 `json:"in_progress_points"`
	TodoPoints           float64 `json:"todo_points"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// Burndown combines sprint metadata with per-issue story points bucketed by
// status category.
func (s *Service) Burndown(ctx context.Context, sprintID string) (*BurndownData, error) {
	var sprint struct {
		Name  string `json:"name"`
		State string `json:"state"`
	}
	if err := s.client.Get(ctx, agilePath("sprint", url.PathEscape(sprintID)), nil, &sprint); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("fields", "summary,status,customfield_10016")

	var out struct {
		Issues []rawIssue `json:"issues"`
	}
	path := agilePath("sprint", url.PathEscape(sprintID), "issue")
	if err := s.client.Get(ctx, path, params, &out); err != nil {
		return nil, err
	}

	data := &BurndownData{
		SprintID:    sprintID,
		SprintName:  sprint.Name,
		SprintState: sprint.State,
	}

	for _, issue := range out.Issues {
		points := 0.0
		if issue.Fields.StoryPoints != nil {
			points = *issue.Fields.StoryPoints
		}
		data.TotalStoryPoints += points

		switch strings.ToLower(issue.Fields.statusName()) {
		case "done", "closed", "resolved":
			data.CompletedPoints += points
		case "in progress", "in review":
			data.InProgressPoints += points
		default:
			data.TodoPoints += points
		}
	}

	if data.TotalStoryPoints > 0 {
		data.CompletionPercentage = math.Round(data.CompletedPoints/data.TotalStoryPoints*100*100) / 100
	}

	return data, nil
}
