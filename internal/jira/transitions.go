package jira

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Transitions retrieves the workflow transitions currently available to an issue.
func (s *Service) Transitions(ctx context.Context, key string) ([]Transition, error) {
	var out struct {
		Transitions []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			To   struct {
				Name string `json:"name"`
			} `json:"to"`
		} `json:"transitions"`
	}

	path := apiPath("issue", url.PathEscape(key), "transitions")
	if err := s.client.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}

	transitions := make([]Transition, 0, len(out.Transitions))
	for _, tr := range out.Transitions {
		transitions = append(transitions, Transition{
			ID:       tr.ID,
			Name:     tr.Name,
			ToStatus: tr.To.Name,
		})
	}
	return transitions, nil
}

// ResolveTransition matches the requested transition against the available
// list, by name case-insensitively or by exact id.
func ResolveTransition(transitions []Transition, requested string) (string, bool) {
	for _, tr := range transitions {
		if strings.EqualFold(tr.Name, requested) || tr.ID == requested {
			return tr.ID, true
		}
	}
	return "", false
}

// ApplyTransition posts the transition with the given id.
func (s *Service) ApplyTransition(ctx context.Context, key, transitionID string) error {
	body := map[string]any{
		"transition": map[string]string{"id": transitionID},
	}
	path := apiPath("issue", url.PathEscape(key), "transitions")
	return s.client.Post(ctx, path, body, nil)
}

// TransitionIssue resolves the requested transition name or id against the
// issue's available transitions and applies it.
func (s *Service) TransitionIssue(ctx context.Context, key, requested string) error {
	transitions, err := s.Transitions(ctx, key)
	if err != nil {
		return err
	}

	id, ok := ResolveTransition(transitions, requested)
	if !ok {
		names := make([]string, 0, len(transitions))
		for _, tr := range transitions {
			names = append(names, tr.Name)
		}
		return fmt.Errorf("jira: transition %q not available; available: %s", requested, strings.Join(names, ", "))
	}

	return s.ApplyTransition(ctx, key, id)
}
