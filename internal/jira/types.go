package jira

import "encoding/json"

// Raw wire types. These mirror the nested REST payloads; the shaped types
// further down are the flattened projections returned to tool callers.

type rawNamed struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type rawUser struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
	Active       *bool  `json:"active"`
}

type rawIssue struct {
	ID     string    `json:"id"`
	Key    string    `json:"key"`
	Fields rawFields `json:"fields"`
}

type rawFields struct {
	Summary              string          `json:"summary"`
	Description          json.RawMessage `json:"description"`
	Status               *rawNamed       `json:"status"`
	Assignee             *rawUser        `json:"assignee"`
	Reporter             *rawUser        `json:"reporter"`
	Priority             *rawNamed       `json:"priority"`
	IssueType            *rawNamed       `json:"issuetype"`
	Created              string          `json:"created"`
	Updated              string          `json:"updated"`
	TimeSpent            int             `json:"timespent"`
	TimeOriginalEstimate int             `json:"timeoriginalestimate"`
	StoryPoints          *float64        `json:"customfield_10016"`
	Attachment           []rawAttachment `json:"attachment"`
	IssueLinks           []rawIssueLink  `json:"issuelinks"`
	Subtasks             []rawIssue      `json:"subtasks"`
}

type rawAttachment struct {
	ID       string   `json:"id"`
	Filename string   `json:"filename"`
	Size     int64    `json:"size"`
	MimeType string   `json:"mimeType"`
	Created  string   `json:"created"`
	Author   *rawUser `json:"author"`
	Content  string   `json:"content"`
}

type rawIssueLink struct {
	Type         rawNamed  `json:"type"`
	InwardIssue  *rawIssue `json:"inwardIssue"`
	OutwardIssue *rawIssue `json:"outwardIssue"`
}

type rawSearchResult struct {
	Total      int        `json:"total"`
	StartAt    int        `json:"startAt"`
	MaxResults int        `json:"maxResults"`
	Issues     []rawIssue `json:"issues"`
}

func (f rawFields) statusName() string {
	if f.Status == nil {
		return "Unknown"
	}
	return f.Status.Name
}

func (f rawFields) assigneeName() string {
	if f.Assignee == nil || f.Assignee.DisplayName == "" {
		return "Unassigned"
	}
	return f.Assignee.DisplayName
}

func (f rawFields) reporterName() string {
	if f.Reporter == nil {
		return ""
	}
	return f.Reporter.DisplayName
}

func (f rawFields) priorityName() string {
	if f.Priority == nil {
		return ""
	}
	return f.Priority.Name
}

func (f rawFields) issueTypeName() string {
	if f.IssueType == nil {
		return ""
	}
	return f.IssueType.Name
}

// Shaped types returned to tool callers.

// Project is the flattened projection of a Jira project.
type Project struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	ProjectTypeKey string `json:"projectTypeKey"`
	Lead           string `json:"lead"`
}

// StorySummary is the projection used by the user-story listing.
type StorySummary struct {
	Key         string `json:"key"`
	Summary     string `json:"summary"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// IssueDetail is the full single-issue projection.
type IssueDetail struct {
	Key         string `json:"key"`
	Summary     string `json:"summary"`
	Status      string `json:"status"`
	Assignee    string `json:"assignee"`
	Reporter    string `json:"reporter"`
	Priority    string `json:"priority"`
	IssueType   string `json:"issuetype"`
	Created     string `json:"created"`
	Updated     string `json:"updated"`
	Description string `json:"description"`
}

// IssueSummary is the search-result projection with a truncated description.
type IssueSummary struct {
	Key         string `json:"key"`
	Summary     string `json:"summary"`
	Status      string `json:"status"`
	Assignee    string `json:"assignee"`
	Priority    string `json:"priority"`
	IssueType   string `json:"issuetype"`
	Created     string `json:"created"`
	Description string `json:"description"`
}

// RecentIssue is the projection used by the recently-updated listing.
type RecentIssue struct {
	Key       string `json:"key"`
	Summary   string `json:"summary"`
	Status    string `json:"status"`
	Assignee  string `json:"assignee"`
	Updated   string `json:"updated"`
	IssueType string `json:"issuetype"`
}

// AssignedIssue is the projection used by the per-assignee listing.
type AssignedIssue struct {
	Key       string `json:"key"`
	Summary   string `json:"summary"`
	Status    string `json:"status"`
	Priority  string `json:"priority"`
	IssueType string `json:"issuetype"`
	Updated   string `json:"updated"`
}

// ExportIssue is the projection used by the export tool.
type ExportIssue struct {
	Key       string `json:"key"`
	Summary   string `json:"summary"`
	Status    string `json:"status"`
	Assignee  string `json:"assignee"`
	Reporter  string `json:"reporter"`
	Priority  string `json:"priority"`
	IssueType string `json:"issuetype"`
	Created   string `json:"created"`
	Updated   string `json:"updated"`
}

// CreatedIssue identifies a newly created issue.
type CreatedIssue struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// Transition is a workflow step available to an issue.
type Transition struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ToStatus string `json:"to_status"`
}

// IssueType describes an issue type available in a project.
type IssueType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Subtask     bool   `json:"subtask"`
}

// Component describes a project component.
type Component struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Lead        string `json:"lead"`
}

// Version describes a project version/release.
type Version struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Released    bool   `json:"released"`
	ReleaseDate string `json:"releaseDate"`
	Archived    bool   `json:"archived"`
}

// CustomField describes a custom field definition.
type CustomField struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// User is the flattened projection of a Jira user.
type User struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
	Active       bool   `json:"active"`
}

// Board describes an agile board.
type Board struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location string `json:"location"`
}

// Sprint describes a sprint on a board.
type Sprint struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Goal      string `json:"goal"`
}

// SprintIssue is the projection used for issues inside a sprint.
type SprintIssue struct {
	Key         string   `json:"key"`
	Summary     string   `json:"summary"`
	Status      string   `json:"status"`
	Assignee    string   `json:"assignee"`
	StoryPoints *float64 `json:"storyPoints"`
	IssueType   string   `json:"issuetype"`
}

// IssueLink describes one direction of a link between two issues.
type IssueLink struct {
	LinkType          string `json:"link_type"`
	Direction         string `json:"direction"`
	LinkedIssueKey    string `json:"linked_issue_key"`
	LinkedIssueStatus string `json:"linked_issue_status"`
	LinkedIssueSum    string `json:"linked_issue_summary"`
}

// Subtask is the projection of a child issue.
type Subtask struct {
	Key      string `json:"key"`
	Summary  string `json:"summary"`
	Status   string `json:"status"`
	Assignee string `json:"assignee"`
}

// Attachment is the flattened projection of an issue attachment.
type Attachment struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	Created  string `json:"created"`
	Author   string `json:"author"`
	Content  string `json:"content"`
}

// Webhook describes a registered webhook.
type Webhook struct {
	ID      any      `json:"id"`
	Name    string   `json:"name"`
	URL     string   `json:"url"`
	Events  []string `json:"events"`
	Enabled bool     `json:"enabled"`
}

// Watcher is the projection of an issue watcher.
type Watcher struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

// RoleActor is a member of a project role.
type RoleActor struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// Role describes a project role and its members.
type Role struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Actors      []RoleActor `json:"actors"`
}

// Permission describes one permission check result.
type Permission struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Description    string `json:"description"`
	HavePermission bool   `json:"havePermission"`
}

// Workflow describes a workflow definition.
type Workflow struct {
	ID          any    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	IsDraft     bool   `json:"isDraft"`
}
