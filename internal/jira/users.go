package jira

import (
	"context"
	"net/url"
	"strconv"
)

func shapeUsers(raw []rawUser) []User {
	users := make([]User, 0, len(raw))
	for _, u := range raw {
		email := u.EmailAddress
		if email == "" {
			email = "Not available"
		}
		active := true
		if u.Active != nil {
			active = *u.Active
		}
		users = append(users, User{
			AccountID:    u.AccountID,
			DisplayName:  u.DisplayName,
			EmailAddress: email,
			Active:       active,
		})
	}
	return users
}

// SearchUsers finds users matching the query string.
func (s *Service) SearchUsers(ctx context.Context, query string) ([]User, error) {
	params := url.Values{}
	params.Set("query", query)

	var raw []rawUser
	if err := s.client.Get(ctx, apiPath("user", "search"), params, &raw); err != nil {
		return nil, err
	}
	return shapeUsers(raw), nil
}

// ResolveAccountID looks up the account id for a display name or email.
// An empty id with nil error means the lookup worked but found nobody.
func (s *Service) ResolveAccountID(ctx context.Context, query string) (string, error) {
	users, err := s.SearchUsers(ctx, query)
	if err != nil {
		return "", err
	}
	if len(users) == 0 {
		return "", nil
	}
	return users[0].AccountID, nil
}

// AssignableUsers lists the users assignable to issues in a project.
func (s *Service) AssignableUsers(ctx context.Context, project string) ([]User, error) {
	params := url.Values{}
	params.Set("project", project)

	var raw []rawUser
	if err := s.client.Get(ctx, apiPath("user", "assignable", "search"), params, &raw); err != nil {
		return nil, err
	}
	return shapeUsers(raw), nil
}

// AllUsers lists up to maxResults users known to the instance.
func (s *Service) AllUsers(ctx context.Context, maxResults int) ([]User, error) {
	params := url.Values{}
	params.Set("maxResults", strconv.Itoa(maxResults))

	var raw []rawUser
	if err := s.client.Get(ctx, apiPath("users", "search"), params, &raw); err != nil {
		return nil, err
	}
	return shapeUsers(raw), nil
}
