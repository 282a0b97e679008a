package jira

import "strings"

const (
	apiPrefix     = "/rest/api/3"
	agilePrefix   = "/rest/agile/1.0"
	webhookPrefix = "/rest/webhooks/1.0"
)

// Service exposes the Jira REST operations backing the MCP tool surface.
// It is stateless: every method performs its calls and returns a shaped
// result, leaving the remote tracker as the only system of record.
type Service struct {
	client *Client
}

// NewService creates a Jira service using the provided HTTP client.
func NewService(client *Client) *Service {
	return &Service{client: client}
}

// BaseHost returns the host of the configured Jira site.
func (s *Service) BaseHost() string {
	return s.client.BaseHost()
}

func joinPath(prefix string, parts ...string) string {
	builder := strings.Builder{}
	builder.WriteString(strings.TrimRight(prefix, "/"))

	for _, part := range parts {
		if trimmed := strings.Trim(part, "/"); trimmed != "" {
			builder.WriteByte('/')
			builder.WriteString(trimmed)
		}
	}

	return builder.String()
}

// apiPath constructs core REST API paths.
func apiPath(parts ...string) string {
	return joinPath(apiPrefix, parts...)
}

// agilePath constructs agile (board/sprint) API paths.
func agilePath(parts ...string) string {
	return joinPath(agilePrefix, parts...)
}

// webhookPath constructs webhook API paths.
func webhookPath(parts ...string) string {
	return joinPath(webhookPrefix, parts...)
}
