package jira

import "context"

type rawField struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Custom      bool   `json:"custom"`
	Schema      struct {
		Type string `json:"type"`
	} `json:"schema"`
}

// CustomFields lists the custom field definitions on the instance.
func (s *Service) CustomFields(ctx context.Context) ([]CustomField, error) {
	var raw []rawField
	if err := s.client.Get(ctx, apiPath("field"), nil, &raw); err != nil {
		return nil, err
	}

	fields := make([]CustomField, 0)
	for _, f := range raw {
		if !f.Custom {
			continue
		}
		fieldType := f.Schema.Type
		if fieldType == "" {
			fieldType = "Unknown"
		}
		fields = append(fields, CustomField{
			ID:          f.ID,
			Name:        f.Name,
			Description: f.Description,
			Type:        fieldType,
		})
	}
	return fields, nil
}

// FieldCounts returns the number of custom and system field definitions.
func (s *Service) FieldCounts(ctx context.Context) (custom, system int, err error) {
	var raw []rawField
	if err := s.client.Get(ctx, apiPath("field"), nil, &raw); err != nil {
		return 0, 0, err
	}

	for _, f := range raw {
		if f.Custom {
			custom++
		} else {
			system++
		}
	}
	return custom, system, nil
}

// Workflows lists the workflow definitions on the instance.
func (s *Service) Workflows(ctx context.Context) ([]Workflow, error) {
	var raw []struct {
		ID          any    `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		IsActive    bool   `json:"isActive"`
		IsDraft     bool   `json:"isDraft"`
	}
	if err := s.client.Get(ctx, apiPath("workflow"), nil, &raw); err != nil {
		return nil, err
	}

	workflows := make([]Workflow, 0, len(raw))
	for _, w := range raw {
		workflows = append(workflows, Workflow{
			ID:          w.ID,
			Name:        w.Name,
			Description: w.Description,
			IsActive:    w.IsActive,
			IsDraft:     w.IsDraft,
		})
	}
	return workflows, nil
}
