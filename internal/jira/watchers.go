package jira

import (
	"context"
	"net/url"
)

// AddWatcher adds a user to the issue's watcher list. The user reference is
// resolved to an account id first; when the lookup finds nothing the raw
// value is posted for server compatibility.
func (s *Service) AddWatcher(ctx context.Context, key, user string) error {
	watcher := user
	if accountID, err := s.ResolveAccountID(ctx, user); err == nil && accountID != "" {
		watcher = accountID
	}

	path := apiPath("issue", url.PathEscape(key), "watchers")
	return s.client.Post(ctx, path, watcher, nil)
}

// Watchers lists the users watching an issue.
func (s *Service) Watchers(ctx context.Context, key string) ([]Watcher, error) {
	var out struct {
		Watchers []rawUser `json:"watchers"`
	}

	path := apiPath("issue", url.PathEscape(key), "watchers")
	if err := s.client.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}

	watchers := make([]Watcher, 0, len(out.Watchers))
	for _, w := range out.Watchers {
		email := w.EmailAddress
		if email == "" {
			email = "Not available"
		}
		watchers = append(watchers, Watcher{
			AccountID:    w.AccountID,
			DisplayName:  w.DisplayName,
			EmailAddress: email,
		})
	}
	return watchers, nil
}
