package jira

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
)

// Attachments lists the attachments on an issue.
func (s *Service) Attachments(ctx context.Context, key string) ([]Attachment, error) {
	var issue rawIssue
	params := url.Values{}
	params.Set("fields", "attachment")
	if err := s.client.Get(ctx, apiPath("issue", url.PathEscape(key)), params, &issue); err != nil {
		return nil, err
	}

	attachments := make([]Attachment, 0, len(issue.Fields.Attachment))
	for _, a := range issue.Fields.Attachment {
		author := ""
		if a.Author != nil {
			author = a.Author.DisplayName
		}
		attachments = append(attachments, Attachment{
			ID:       a.ID,
			Filename: a.Filename,
			Size:     a.Size,
			MimeType: a.MimeType,
			Created:  a.Created,
			Author:   author,
			Content:  a.Content,
		})
	}
	return attachments, nil
}

// UploadAttachment posts a local file as an attachment on the issue and
// returns the created attachment's id and filename.
func (s *Service) UploadAttachment(ctx context.Context, key, filePath string) (*Attachment, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("jira: open attachment: %w", err)
	}
	defer file.Close()

	var created []rawAttachment
	path := apiPath("issue", url.PathEscape(key), "attachments")
	if err := s.client.Upload(ctx, path, filepath.Base(filePath), file, &created); err != nil {
		return nil, err
	}

	if len(created) == 0 {
		return nil, &DecodeError{Err: fmt.Errorf("empty attachment response")}
	}
	return &Attachment{ID: created[0].ID, Filename: created[0].Filename}, nil
}

// DownloadAttachment streams an attachment URL to a local file and returns
// the number of bytes written.
func (s *Service) DownloadAttachment(ctx context.Context, attachmentURL, savePath string) (int64, error) {
	body, err := s.client.Download(ctx, attachmentURL)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	out, err := os.Create(savePath)
	if err != nil {
		return 0, fmt.Errorf("jira: create file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, body)
	if err != nil {
		return 0, fmt.Errorf("jira: write attachment: %w", err)
	}
	return written, nil
}
