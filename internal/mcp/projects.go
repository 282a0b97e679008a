package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gitlab.com/your-org/jira-mcp/internal/jira"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (t *Tools) registerProjectTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool(
			"get_projects",
			mcp.WithDescription("Get all accessible JIRA projects"),
			mcp.WithInputSchema[EmptyArgs](),
			mcp.WithOutputSchema[ProjectsResult](),
		),
		mcp.NewTypedToolHandler(t.handleProjects),
	)

	s.AddTool(
		mcp.NewTool(
			"get_project_stats",
			mcp.WithDescription("Get project issue counts by status and type"),
			mcp.WithInputSchema[ProjectKeyArgs](),
			mcp.WithOutputSchema[jira.ProjectStats](),
		),
		mcp.NewTypedToolHandler(t.handleProjectStats),
	)

	s.AddTool(
		mcp.NewTool(
			"get_issue_types",
			mcp.WithDescription("Get available issue types for a project"),
			mcp.WithInputSchema[ProjectKeyArgs](),
			mcp.WithOutputSchema[IssueTypesResult](),
		),
		mcp.NewTypedToolHandler(t.handleIssueTypes),
	)

	s.AddTool(
		mcp.NewTool(
			"get_project_components",
			mcp.WithDescription("Get the components of a project"),
			mcp.WithInputSchema[ProjectKeyArgs](),
			mcp.WithOutputSchema[ComponentsResult](),
		),
		mcp.NewTypedToolHandler(t.handleProjectComponents),
	)

	s.AddTool(
		mcp.NewTool(
			"get_project_versions",
			mcp.WithDescription("Get the versions/releases of a project"),
			mcp.WithInputSchema[ProjectKeyArgs](),
			mcp.WithOutputSchema[VersionsResult](),
		),
		mcp.NewTypedToolHandler(t.handleProjectVersions),
	)

	s.AddTool(
		mcp.NewTool(
			"get_custom_fields",
			mcp.WithDescription("Get the custom fields defined on the instance"),
			mcp.WithInputSchema[EmptyArgs](),
			mcp.WithOutputSchema[CustomFieldsResult](),
		),
		mcp.NewTypedToolHandler(t.handleCustomFields),
	)

	s.AddTool(
		mcp.NewTool(
			"get_users",
			mcp.WithDescription("Get assignable users for a project"),
			mcp.WithInputSchema[ProjectKeyArgs](),
			mcp.WithOutputSchema[UsersResult](),
		),
		mcp.NewTypedToolHandler(t.handleUsers),
	)

	s.AddTool(
		mcp.NewTool(
			"get_project_roles",
			mcp.WithDescription("Get the roles of a project and their members"),
			mcp.WithInputSchema[ProjectKeyArgs](),
			mcp.WithOutputSchema[RolesResult](),
		),
		mcp.NewTypedToolHandler(t.handleProjectRoles),
	)

	s.AddTool(
		mcp.NewTool(
			"get_user_permissions",
			mcp.WithDescription("Get a user's permissions in a project"),
			mcp.WithInputSchema[UserPermissionsArgs](),
			mcp.WithOutputSchema[PermissionsResult](),
		),
		mcp.NewTypedToolHandler(t.handleUserPermissions),
	)

	s.AddTool(
		mcp.NewTool(
			"create_version",
			mcp.WithDescription("Create a project version/release"),
			mcp.WithInputSchema[CreateVersionArgs](),
			mcp.WithOutputSchema[CreateVersionResult](),
		),
		mcp.NewTypedToolHandler(t.handleCreateVersion),
	)

	s.AddTool(
		mcp.NewTool(
			"release_version",
			mcp.WithDescription("Mark a version as released"),
			mcp.WithInputSchema[ReleaseVersionArgs](),
			mcp.WithOutputSchema[ReleaseVersionResult](),
		),
		mcp.NewTypedToolHandler(t.handleReleaseVersion),
	)
}

// ProjectKeyArgs carries the single project key shared by project-scoped tools.
type ProjectKeyArgs struct {
	Project string `json:"project" jsonschema:"required" jsonschema_description:"Project key, e.g. PROJ"`
}

// ProjectsResult wraps the project list.
type ProjectsResult struct {
	Projects []jira.Project `json:"projects"`
}

func (t *Tools) handleProjects(ctx context.Context, _ mcp.CallToolRequest, _ EmptyArgs) (*mcp.CallToolResult, error) {
	projects, err := t.service.Projects(ctx)
	if err != nil {
		return errorResult(err, "Projects"), nil
	}

	t.cache.SetProjects(projects)

	result := ProjectsResult{Projects: projects}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("Found %d projects", len(projects))), nil
}

func (t *Tools) handleProjectStats(ctx context.Context, _ mcp.CallToolRequest, args ProjectKeyArgs) (*mcp.CallToolResult, error) {
	if res := requireProjectKey(args.Project); res != nil {
		return res, nil
	}

	stats, err := t.service.ProjectStatistics(ctx, args.Project)
	if err != nil {
		return errorResult(err, "Project "+args.Project), nil
	}

	return mcp.NewToolResultStructured(*stats, fmt.Sprintf("Project %s has %d issues", args.Project, stats.TotalIssues)), nil
}

// IssueTypesResult lists the issue types of one project.
type IssueTypesResult struct {
	Project    string           `json:"project"`
	IssueTypes []jira.IssueType `json:"issue_types"`
}

func (t *Tools) handleIssueTypes(ctx context.Context, _ mcp.CallToolRequest, args ProjectKeyArgs) (*mcp.CallToolResult, error) {
	if res := requireProjectKey(args.Project); res != nil {
		return res, nil
	}

	types, err := t.service.ProjectIssueTypes(ctx, args.Project)
	if err != nil {
		return errorResult(err, "Project "+args.Project), nil
	}

	result := IssueTypesResult{Project: args.Project, IssueTypes: types}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("%d issue types in %s", len(types), args.Project)), nil
}

// ComponentsResult lists the components of one project.
type ComponentsResult struct {
	Project        string           `json:"project"`
	ComponentCount int              `json:"component_count"`
	Components     []jira.Component `json:"components"`
}

func (t *Tools) handleProjectComponents(ctx context.Context, _ mcp.CallToolRequest, args ProjectKeyArgs) (*mcp.CallToolResult, error) {
	if res := requireProjectKey(args.Project); res != nil {
		return res, nil
	}

	components, err := t.service.ProjectComponents(ctx, args.Project)
	if err != nil {
		return errorResult(err, "Project "+args.Project), nil
	}

	result := ComponentsResult{Project: args.Project, ComponentCount: len(components), Components: components}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("%d components in %s", len(components), args.Project)), nil
}

// VersionsResult lists the versions of one project.
type VersionsResult struct {
	Project      string         `json:"project"`
	VersionCount int            `json:"version_count"`
	Versions     []jira.Version `json:"versions"`
}

func (t *Tools) handleProjectVersions(ctx context.Context, _ mcp.CallToolRequest, args ProjectKeyArgs) (*mcp.CallToolResult, error) {
	if res := requireProjectKey(args.Project); res != nil {
		return res, nil
	}

	versions, err := t.service.ProjectVersions(ctx, args.Project)
	if err != nil {
		return errorResult(err, "Project "+args.Project), nil
	}

	result := VersionsResult{Project: args.Project, VersionCount: len(versions), Versions: versions}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("%d versions in %s", len(versions), args.Project)), nil
}

// CustomFieldsResult lists the instance's custom fields.
type CustomFieldsResult struct {
	CustomFieldCount int                `json:"custom_field_count"`
	CustomFields     []jira.CustomField `json:"custom_fields"`
}

func (t *Tools) handleCustomFields(ctx context.Context, _ mcp.CallToolRequest, _ EmptyArgs) (*mcp.CallToolResult, error) {
	fields, err := t.service.CustomFields(ctx)
	if err != nil {
		return errorResult(err, "Custom fields"), nil
	}

	result := CustomFieldsResult{CustomFieldCount: len(fields), CustomFields: fields}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("Found %d custom fields", len(fields))), nil
}

// UsersResult lists assignable users for one project.
type UsersResult struct {
	Project   string      `json:"project"`
	UserCount int         `json:"user_count"`
	Users     []jira.User `json:"users"`
}

func (t *Tools) handleUsers(ctx context.Context, _ mcp.CallToolRequest, args ProjectKeyArgs) (*mcp.CallToolResult, error) {
	if res := requireProjectKey(args.Project); res != nil {
		return res, nil
	}

	users, err := t.service.AssignableUsers(ctx, args.Project)
	if err != nil {
		return errorResult(err, "Project "+args.Project), nil
	}

	result := UsersResult{Project: args.Project, UserCount: len(users), Users: users}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("%d assignable users in %s", len(users), args.Project)), nil
}

// RolesResult lists the roles of one project.
type RolesResult struct {
	Project   string      `json:"project"`
	RoleCount int         `json:"role_count"`
	Roles     []jira.Role `json:"roles"`
}

func (t *Tools) handleProjectRoles(ctx context.Context, _ mcp.CallToolRequest, args ProjectKeyArgs) (*mcp.CallToolResult, error) {
	if res := requireProjectKey(args.Project); res != nil {
		return res, nil
	}

	roles, err := t.service.ProjectRoles(ctx, args.Project)
	if err != nil {
		return errorResult(err, "Project "+args.Project), nil
	}

	result := RolesResult{Project: args.Project, RoleCount: len(roles), Roles: roles}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("%d roles in %s", len(roles), args.Project)), nil
}

// UserPermissionsArgs name the project and, optionally, the user to check.
type UserPermissionsArgs struct {
	Project  string `json:"project" jsonschema:"required" jsonschema_description:"Project key"`
	Username string `json:"username,omitempty" jsonschema_description:"User to check; defaults to the configured account"`
}

// PermissionsResult lists permissions for a user in one project.
type PermissionsResult struct {
	Project         string            `json:"project"`
	Username        string            `json:"username"`
	PermissionCount int               `json:"permission_count"`
	Permissions     []jira.Permission `json:"permissions"`
}

func (t *Tools) handleUserPermissions(ctx context.Context, _ mcp.CallToolRequest, args UserPermissionsArgs) (*mcp.CallToolResult, error) {
	if res := requireProjectKey(args.Project); res != nil {
		return res, nil
	}

	permissions, err := t.service.MyPermissions(ctx, args.Project, args.Username)
	if err != nil {
		return errorResult(err, "Project "+args.Project), nil
	}

	result := PermissionsResult{
		Project:         args.Project,
		Username:        args.Username,
		PermissionCount: len(permissions),
		Permissions:     permissions,
	}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("%d permissions in %s", len(permissions), args.Project)), nil
}

// CreateVersionArgs define a new version.
type CreateVersionArgs struct {
	Project     string `json:"project" jsonschema:"required" jsonschema_description:"Project key"`
	Name        string `json:"name" jsonschema:"required" jsonschema_description:"Version name"`
	Description string `json:"description,omitempty" jsonschema_description:"Version description"`
}

// CreateVersionResult reports the created version.
type CreateVersionResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	VersionID string `json:"version_id"`
	Name      string `json:"name"`
}

func (t *Tools) handleCreateVersion(ctx context.Context, _ mcp.CallToolRequest, args CreateVersionArgs) (*mcp.CallToolResult, error) {
	if res := requireProjectKey(args.Project); res != nil {
		return res, nil
	}
	if strings.TrimSpace(args.Name) == "" {
		return validationResult("Version name must not be empty"), nil
	}

	id, err := t.service.CreateVersion(ctx, args.Project, args.Name, args.Description)
	if err != nil {
		return errorResult(err, "Project "+args.Project), nil
	}

	result := CreateVersionResult{
		Success:   true,
		Message:   fmt.Sprintf("Version %s created for project %s", args.Name, args.Project),
		VersionID: id,
		Name:      args.Name,
	}
	return mcp.NewToolResultStructured(result, result.Message), nil
}

// ReleaseVersionArgs name the version and an optional release date.
type ReleaseVersionArgs struct {
	VersionID   string `json:"version_id" jsonschema:"required" jsonschema_description:"Version id"`
	ReleaseDate string `json:"release_date,omitempty" jsonschema_description:"Release date as YYYY-MM-DD; defaults to today"`
}

// ReleaseVersionResult reports the release.
type ReleaseVersionResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	ReleaseDate string `json:"release_date"`
}

func (t *Tools) handleReleaseVersion(ctx context.Context, _ mcp.CallToolRequest, args ReleaseVersionArgs) (*mcp.CallToolResult, error) {
	if strings.TrimSpace(args.VersionID) == "" {
		return validationResult("Version id must not be empty"), nil
	}

	releaseDate := args.ReleaseDate
	if releaseDate == "" {
		releaseDate = time.Now().Format("2006-01-02")
	}

	if err := t.service.ReleaseVersion(ctx, args.VersionID, releaseDate); err != nil {
		return errorResult(err, "Version "+args.VersionID), nil
	}

	result := ReleaseVersionResult{
		Success:     true,
		Message:     fmt.Sprintf("Version %s marked as released", args.VersionID),
		ReleaseDate: releaseDate,
	}
	return mcp.NewToolResultStructured(result, result.Message), nil
}
