package jira

import "regexp"

var (
	projectKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
	issueKeyPattern   = regexp.MustCompile(`^[A-Z][A-Z0-9_]*-\d+$`)
)

// ValidateProjectKey reports whether s is a well-formed project key.
// Keys are validated before they are interpolated into paths or JQL.
func ValidateProjectKey(s string) bool {
	return projectKeyPattern.MatchString(s)
}

// ValidateIssueKey reports whether s is a well-formed issue key.
func ValidateIssueKey(s string) bool {
	return issueKeyPattern.MatchString(s)
}

// clampLimit bounds a caller-supplied page size to at most 100, substituting
// fallback when the caller left it unset.
func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 100 {
		return 100
	}
	return limit
}
