package mcp

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gitlab.com/your-org/jira-mcp/internal/jira"

	"github.com/mark3labs/mcp-go/mcp"
)

// errorResult converts any operation error into the textual tool result the
// callers rely on: a successful result envelope whose text starts with
// "Error:". resource names the thing a 404 refers to ("Issue PROJ-1").
func errorResult(err error, resource string) *mcp.CallToolResult {
	return mcp.NewToolResultError(errorMessage(err, resource))
}

func errorMessage(err error, resource string) string {
	var apiErr *jira.APIError
	var connErr *jira.ConnError
	var decodeErr *jira.DecodeError

	switch {
	case errors.As(err, &apiErr):
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return "Error: Authentication failed (401). Check JIRA_USERNAME and regenerate your API token."
		case http.StatusForbidden:
			return "Error: Permission denied (403). The configured account does not have access to this resource."
		case http.StatusNotFound:
			if resource == "" {
				resource = "Resource"
			}
			return fmt.Sprintf("Error: %s not found.", resource)
		case http.StatusBadRequest:
			if detail := apiErr.Detail(); detail != "" {
				return fmt.Sprintf("Error: Invalid request (400): %s", detail)
			}
			return "Error: Invalid request (400). Check the JQL query or field values."
		default:
			if detail := apiErr.Detail(); detail != "" {
				return fmt.Sprintf("Error: HTTP %d: %s", apiErr.StatusCode, detail)
			}
			return fmt.Sprintf("Error: HTTP %d", apiErr.StatusCode)
		}
	case errors.As(err, &connErr):
		return fmt.Sprintf("Error: Connection to Jira failed: %v", connErr.Unwrap())
	case errors.As(err, &decodeErr):
		return "Error: Invalid response from Jira server."
	default:
		return "Error: " + strings.TrimPrefix(err.Error(), "jira: ")
	}
}

// validationResult reports a local argument failure; no request was sent.
func validationResult(msg string) *mcp.CallToolResult {
	return mcp.NewToolResultError("Error: " + msg)
}

// requireIssueKey returns a validation result when key is malformed, nil
// when it is safe to use in paths and JQL.
func requireIssueKey(key string) *mcp.CallToolResult {
	if !jira.ValidateIssueKey(key) {
		return validationResult("Invalid issue key format")
	}
	return nil
}

// requireProjectKey is the project-key counterpart of requireIssueKey.
func requireProjectKey(project string) *mcp.CallToolResult {
	if !jira.ValidateProjectKey(project) {
		return validationResult("Invalid project key format")
	}
	return nil
}

// bulkItemMessage formats the short per-item failure text used inside bulk
// results, without the "Error:" prefix reserved for whole-tool failures.
func bulkItemMessage(err error) string {
	var apiErr *jira.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("HTTP %d", apiErr.StatusCode)
	}
	return strings.TrimPrefix(err.Error(), "jira: ")
}
