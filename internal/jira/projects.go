package jira

import (
	"context"
	"net/url"
)

// Projects lists every project the configured account can see.
func (s *Service) Projects(ctx context.Context) ([]Project, error) {
	var raw []struct {
		Key            string `json:"key"`
		Name           string `json:"name"`
		ProjectTypeKey string `json:"projectTypeKey"`
		Lead           struct {
			DisplayName string `json:"displayName"`
		} `json:"lead"`
	}
	if err := s.client.Get(ctx, apiPath("project"), nil, &raw); err != nil {
		return nil, err
	}

	projects := make([]Project, 0, len(raw))
	for _, p := range raw {
		projects = append(projects, Project{
			Key:            p.Key,
			Name:           p.Name,
			ProjectTypeKey: p.ProjectTypeKey,
			Lead:           p.Lead.DisplayName,
		})
	}
	return projects, nil
}

// ProjectIssueTypes lists the issue types available in a project.
func (s *Service) ProjectIssueTypes(ctx context.Context, project string) ([]IssueType, error) {
	var out struct {
		IssueTypes []struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			Description string `json:"description"`
			Subtask     bool   `json:"subtask"`
		} `json:"issueTypes"`
	}
	if err := s.client.Get(ctx, apiPath("project", url.PathEscape(project)), nil, &out); err != nil {
		return nil, err
	}

	types := make([]IssueType, 0, len(out.IssueTypes))
	for _, it := range out.IssueTypes {
		types = append(types, IssueType{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Subtask:     it.Subtask,
		})
	}
	return types, nil
}

// ProjectComponents lists the components of a project.
func (s *Service) ProjectComponents(ctx context.Context, project string) ([]Component, error) {
	var raw []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Lead        *struct {
			DisplayName string `json:"displayName"`
		} `json:"lead"`
	}
	path := apiPath("project", url.PathEscape(project), "components")
	if err := s.client.Get(ctx, path, nil, &raw); err != nil {
		return nil, err
	}

	components := make([]Component, 0, len(raw))
	for _, c := range raw {
		lead := "No lead"
		if c.Lead != nil && c.Lead.DisplayName != "" {
			lead = c.Lead.DisplayName
		}
		components = append(components, Component{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Lead:        lead,
		})
	}
	return components, nil
}

// ProjectVersions lists the versions/releases of a project.
func (s *Service) ProjectVersions(ctx context.Context, project string) ([]Version, error) {
	var raw []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Released    bool   `json:"released"`
		ReleaseDate string `json:"releaseDate"`
		Archived    bool   `json:"archived"`
	}
	path := apiPath("project", url.PathEscape(project), "versions")
	if err := s.client.Get(ctx, path, nil, &raw); err != nil {
		return nil, err
	}

	versions := make([]Version, 0, len(raw))
	for _, v := range raw {
		releaseDate := v.ReleaseDate
		if releaseDate == "" {
			releaseDate = "Not set"
		}
		versions = append(versions, Version{
			ID:          v.ID,
			Name:        v.Name,
			Description: v.Description,
			Released:    v.Released,
			ReleaseDate: releaseDate,
			Archived:    v.Archived,
		})
	}
	return versions, nil
}

// ProjectStats aggregates issue counts for a project, per status and per
// type, via one count query each. A failing count query drops that bucket
// rather than failing the whole report.
type ProjectStats struct {
	Project     string         `json:"project"`
	TotalIssues int            `json:"total_issues"`
	ByStatus    map[string]int `json:"by_status"`
	ByType      map[string]int `json:"by_type"`
}

var (
	statProjectStatuses = []string{"To Do", "In Progress", "Done"}
	statProjectTypes    = []string{"Story", "Task", "Bug", "Sub-task"}
)

// ProjectStatistics fans out count queries for one project.
func (s *Service) ProjectStatistics(ctx context.Context, project string) (*ProjectStats, error) {
	total, err := s.CountIssues(ctx, "project = "+project)
	if err != nil {
		return nil, err
	}

	stats := &ProjectStats{
		Project:     project,
		TotalIssues: total,
		ByStatus:    make(map[string]int, len(statProjectStatuses)),
		ByType:      make(map[string]int, len(statProjectTypes)),
	}

	for _, status := range statProjectStatuses {
		count, err := s.CountIssues(ctx, "project = "+project+" AND status = '"+status+"'")
		if err != nil {
			continue
		}
		stats.ByStatus[status] = count
	}

	for _, issueType := range statProjectTypes {
		count, err := s.CountIssues(ctx, "project = "+project+" AND issuetype = '"+issueType+"'")
		if err != nil {
			continue
		}
		stats.ByType[issueType] = count
	}

	return stats, nil
}

// ProjectRoles lists the project roles and their members, following each
// role link returned by the role index. Roles whose detail fetch fails are
// skipped.
func (s *Service) ProjectRoles(ctx context.Context, project string) ([]Role, error) {
	var index map[string]string
	path := apiPath("project", url.PathEscape(project), "role")
	if err := s.client.Get(ctx, path, nil, &index); err != nil {
		return nil, err
	}

	roles := make([]Role, 0, len(index))
	for _, roleURL := range index {
		var detail struct {
			ID          int    `json:"id"`
			Name        string `json:"name"`
			Description string `json:"description"`
			Actors      []struct {
				Type        string `json:"type"`
				Name        string `json:"name"`
				DisplayName string `json:"displayName"`
			} `json:"actors"`
		}
		if err := s.client.GetAbsolute(ctx, roleURL, &detail); err != nil {
			continue
		}

		actors := make([]RoleActor, 0, len(detail.Actors))
		for _, actor := range detail.Actors {
			actors = append(actors, RoleActor{
				Type:        actor.Type,
				Name:        actor.Name,
				DisplayName: actor.DisplayName,
			})
		}
		roles = append(roles, Role{
			ID:          detail.ID,
			Name:        detail.Name,
			Description: detail.Description,
			Actors:      actors,
		})
	}
	return roles, nil
}

// CreateVersion creates an unreleased version in the project.
func (s *Service) CreateVersion(ctx context.Context, project, name, description string) (string, error) {
	body := map[string]any{
		"name":        name,
		"description": description,
		"project":     project,
		"released":    false,
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := s.client.Post(ctx, apiPath("version"), body, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// ReleaseVersion marks a version as released on the given date.
func (s *Service) ReleaseVersion(ctx context.Context, versionID, releaseDate string) error {
	body := map[string]any{
		"released":    true,
		"releaseDate": releaseDate,
	}
	return s.client.Put(ctx, apiPath("version", url.PathEscape(versionID)), body, nil)
}

// MyPermissions reports the configured account's permissions in a project.
func (s *Service) MyPermissions(ctx context.Context, project, username string) ([]Permission, error) {
	params := url.Values{}
	params.Set("projectKey", project)
	if username != "" {
		params.Set("username", username)
	}

	var out struct {
		Permissions map[string]struct {
			Name           string `json:"name"`
			Type           string `json:"type"`
			Description    string `json:"description"`
			HavePermission bool   `json:"havePermission"`
		} `json:"permissions"`
	}
	if err := s.client.Get(ctx, apiPath("mypermissions"), params, &out); err != nil {
		return nil, err
	}

	permissions := make([]Permission, 0, len(out.Permissions))
	for key, perm := range out.Permissions {
		permissions = append(permissions, Permission{
			Key:            key,
			Name:           perm.Name,
			Type:           perm.Type,
			Description:    perm.Description,
			HavePermission: perm.HavePermission,
		})
	}
	return permissions, nil
}
