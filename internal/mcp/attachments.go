package mcp

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/your-org/jira-mcp/internal/jira"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (t *Tools) registerAttachmentTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool(
			"list_attachments",
			mcp.WithDescription("List the attachments of a JIRA issue"),
			mcp.WithInputSchema[IssueKeyArgs](),
			mcp.WithOutputSchema[AttachmentsResult](),
		),
		mcp.NewTypedToolHandler(t.handleListAttachments),
	)

	s.AddTool(
		mcp.NewTool(
			"upload_attachment",
			mcp.WithDescription("Upload a local file as an attachment to an issue"),
			mcp.WithInputSchema[UploadAttachmentArgs](),
			mcp.WithOutputSchema[UploadAttachmentResult](),
		),
		mcp.NewTypedToolHandler(t.handleUploadAttachment),
	)

	s.AddTool(
		mcp.NewTool(
			"download_attachment",
			mcp.WithDescription("Download an attachment to a local file"),
			mcp.WithInputSchema[DownloadAttachmentArgs](),
			mcp.WithOutputSchema[DownloadAttachmentResult](),
		),
		mcp.NewTypedToolHandler(t.handleDownloadAttachment),
	)
}

// AttachmentsResult lists the attachments of one issue.
type AttachmentsResult struct {
	Issue           string            `json:"issue"`
	AttachmentCount int               `json:"attachment_count"`
	Attachments     []jira.Attachment `json:"attachments"`
}

func (t *Tools) handleListAttachments(ctx context.Context, _ mcp.CallToolRequest, args IssueKeyArgs) (*mcp.CallToolResult, error) {
	if res := requireIssueKey(args.Key); res != nil {
		return res, nil
	}

	attachments, err := t.service.Attachments(ctx, args.Key)
	if err != nil {
		return errorResult(err, "Issue "+args.Key), nil
	}

	result := AttachmentsResult{Issue: args.Key, AttachmentCount: len(attachments), Attachments: attachments}
	return mcp.NewToolResultStructured(result, fmt.Sprintf("%d attachments on %s", len(attachments), args.Key)), nil
}

// UploadAttachmentArgs name the issue and the local file to upload.
type UploadAttachmentArgs struct {
	Key      string `json:"key" jsonschema:"required" jsonschema_description:"Issue key"`
	FilePath string `json:"file_path" jsonschema:"required" jsonschema_description:"Path to the local file to upload"`
}

// UploadAttachmentResult reports the uploaded attachment.
type UploadAttachmentResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	AttachmentID string `json:"attachment_id"`
	Filename     string `json:"filename"`
}

func (t *Tools) handleUploadAttachment(ctx context.Context, _ mcp.CallToolRequest, args UploadAttachmentArgs) (*mcp.CallToolResult, error) {
	if res := requireIssueKey(args.Key); res != nil {
		return res, nil
	}
	if strings.TrimSpace(args.FilePath) == "" {
		return validationResult("File path must not be empty"), nil
	}

	attachment, err := t.service.UploadAttachment(ctx, args.Key, args.FilePath)
	if err != nil {
		return errorResult(err, "Issue "+args.Key), nil
	}

	result := UploadAttachmentResult{
		Success:      true,
		Message:      fmt.Sprintf("File uploaded to %s", args.Key),
		AttachmentID: attachment.ID,
		Filename:     attachment.Filename,
	}
	return mcp.NewToolResultStructured(result, result.Message), nil
}

// DownloadAttachmentArgs name the attachment content URL and the local target.
type DownloadAttachmentArgs struct {
	AttachmentURL string `json:"attachment_url" jsonschema:"required" jsonschema_description:"Attachment content URL on the configured Jira host"`
	SavePath      string `json:"save_path" jsonschema:"required" jsonschema_description:"Local path to write the file to"`
}

// DownloadAttachmentResult reports the downloaded file.
type DownloadAttachmentResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	FileSize int64  `json:"file_size"`
}

func (t *Tools) handleDownloadAttachment(ctx context.Context, _ mcp.CallToolRequest, args DownloadAttachmentArgs) (*mcp.CallToolResult, error) {
	if strings.TrimSpace(args.AttachmentURL) == "" {
		return validationResult("Attachment URL must not be empty"), nil
	}
	if strings.TrimSpace(args.SavePath) == "" {
		return validationResult("Save path must not be empty"), nil
	}

	size, err := t.service.DownloadAttachment(ctx, args.AttachmentURL, args.SavePath)
	if err != nil {
		return errorResult(err, "Attachment"), nil
	}

	result := DownloadAttachmentResult{
		Success:  true,
		Message:  fmt.Sprintf("Attachment downloaded to %s", args.SavePath),
		FileSize: size,
	}
	return mcp.NewToolResultStructured(result, result.Message), nil
}
