package jira

import (
	"context"
	"net/url"
)

// Comment identifies a newly added comment.
type Comment struct {
	ID      string `json:"id"`
	Created string `json:"created"`
}

// AddComment appends a plain-text comment to the issue.
func (s *Service) AddComment(ctx context.Context, key, text string) (*Comment, error) {
	body := map[string]any{"body": adfDocument(text)}
	path := apiPath("issue", url.PathEscape(key), "comment")

	var comment Comment
	if err := s.client.Post(ctx, path, body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Worklog identifies a newly added worklog entry.
type Worklog struct {
	ID string `json:"id"`
}

// AddWorklog logs time against the issue. timeSpent uses Jira duration
// notation ("2h", "1d 4h", "30m").
func (s *Service) AddWorklog(ctx context.Context, key, timeSpent, comment string) (*Worklog, error) {
	body := map[string]any{"timeSpent": timeSpent}
	if comment != "" {
		body["comment"] = adfDocument(comment)
	}

	path := apiPath("issue", url.PathEscape(key), "worklog")

	var worklog Worklog
	if err := s.client.Post(ctx, path, body, &worklog); err != nil {
		return nil, err
	}
	return &worklog, nil
}
