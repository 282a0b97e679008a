package jira

import "context"

// Webhooks lists the webhooks registered on the instance.
func (s *Service) Webhooks(ctx context.Context) ([]Webhook, error) {
	var raw []struct {
		ID      any      `json:"id"`
		Name    string   `json:"name"`
		URL     string   `json:"url"`
		Events  []string `json:"events"`
		Enabled *bool    `json:"enabled"`
	}
	if err := s.client.Get(ctx, webhookPath("webhook"), nil, &raw); err != nil {
		return nil, err
	}

	webhooks := make([]Webhook, 0, len(raw))
	for _, w := range raw {
		enabled := true
		if w.Enabled != nil {
			enabled = *w.Enabled
		}
		webhooks = append(webhooks, Webhook{
			ID:      w.ID,
			Name:    w.Name,
			URL:     w.URL,
			Events:  w.Events,
			Enabled: enabled,
		})
	}
	return webhooks, nil
}

// CreateWebhook registers a webhook for the given events.
func (s *Service) CreateWebhook(ctx context.Context, name, hookURL string, events []string) (any, error) {
	body := map[string]any{
		"name":    name,
		"url":     hookURL,
		"events":  events,
		"enabled": true,
	}

	var created struct {
		ID any `json:"id"`
	}
	if err := s.client.Post(ctx, webhookPath("webhook"), body, &created); err != nil {
		return nil, err
	}
	return created.ID, nil
}
