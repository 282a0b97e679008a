package mcp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"gitlab.com/your-org/jira-mcp/internal/jira"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (t *Tools) registerWebhookTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool(
			"list_webhooks",
			mcp.WithDescription("List the configured webhooks"),
			mcp.WithInputSchema[EmptyArgs](),
			mcp.WithOutputSchema[WebhooksResult](),
		),
		mcp.NewTypedToolHandler(t.handleListWebhooks),
	)

	s.AddTool(
		mcp.NewTool(
			"create_webhook",
			mcp.WithDescription("Create a new webhook"),
			mcp.WithInputSchema[CreateWebhookArgs](),
			mcp.WithOutputSchema[CreateWebhookResult](),
		),
		mcp.NewTypedToolHandler(t.handleCreateWebhook),
	)
}

// WebhooksResult lists the instance's webhooks.
type WebhooksResult struct {
	WebhookCount int            `json:"webhook_count"`
	Webhooks     []jira.Webhook `json:"webhooks"`
}

func (t *Tools) handleListWebhooks(ctx context.Context, _ mcp.CallToolRequest, _ EmptyArgs) (*mcp.CallToolResult, error) {
	webhooks, err := t.service.Webhooks(ctx)
	if err != nil {
		return errorResult(err, "Webhooks"), nil
	}

	result := WebhooksResult{WebhookCount: len(webhooks), Webhooks: webhooks}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("Found %d webhooks", len(webhooks))), nil
}

// CreateWebhookArgs define a new webhook.
type CreateWebhookArgs struct {
	Name   string   `json:"name" jsonschema:"required" jsonschema_description:"Webhook name"`
	URL    string   `json:"url" jsonschema:"required" jsonschema_description:"Callback URL the webhook posts to"`
	Events []string `json:"events" jsonschema:"required" jsonschema_description:"Jira event ids that trigger the webhook"`
}

// CreateWebhookResult reports the created webhook.
type CreateWebhookResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	WebhookID any    `json:"webhook_id"`
	Name      string `json:"name"`
}

func (t *Tools) handleCreateWebhook(ctx context.Context, _ mcp.CallToolRequest, args CreateWebhookArgs) (*mcp.CallToolResult, error) {
	if strings.TrimSpace(args.Name) == "" {
		return validationResult("Webhook name must not be empty"), nil
	}
	if _, err := url.ParseRequestURI(args.URL); err != nil {
		return validationResult("Webhook URL is not a valid URL"), nil
	}
	if len(args.Events) == 0 {
		return validationResult("At least one event is required"), nil
	}

	id, err := t.service.CreateWebhook(ctx, args.Name, args.URL, args.Events)
	if err != nil {
		return errorResult(err, "Webhooks"), nil
	}

	result := CreateWebhookResult{
		Success:   true,
		Message:   "Webhook created successfully",
		WebhookID: id,
		Name:      args.Name,
	}
	return mcp.NewToolResultStructured(result, result.Message), nil
}
