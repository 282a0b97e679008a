package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"log/slog"

	"gitlab.com/your-org/jira-mcp/internal/auth"
	"gitlab.com/your-org/jira-mcp/internal/config"
)

const (
	requestTimeout  = 30 * time.Second
	transferTimeout = 60 * time.Second
)

// Client is a thin HTTP helper for the Jira REST namespaces. All requests
// share one authenticated transport; attachment transfers use a client with
// a longer timeout.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	transfer *http.Client
	logger   *slog.Logger
}

// RawBody allows callers to provide a pre-encoded body when constructing requests.
type RawBody struct {
	Reader      io.Reader
	ContentType string
}

// NewClient constructs a Client for the specified site URL and credentials.
func NewClient(base string, creds config.JiraConfig, logger *slog.Logger) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("jira: base URL required")
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("jira: parse base url: %w", err)
	}

	transport := auth.NewTransport(nil, creds)

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:  parsed,
		http:     &http.Client{Timeout: requestTimeout, Transport: transport},
		transfer: &http.Client{Timeout: transferTimeout, Transport: transport},
		logger:   logger,
	}, nil
}

// BaseHost returns the host of the configured Jira site.
func (c *Client) BaseHost() string {
	return c.baseURL.Host
}

// NewRequest builds an HTTP request with optional query parameters and JSON body.
func (c *Client) NewRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var bodyReader io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
		// no body
	case RawBody:
		bodyReader = b.Reader
		contentType = b.ContentType
	default:
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return nil, fmt.Errorf("jira: encode body: %w", err)
		}
		bodyReader = buf
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return req, nil
}

// Do executes the request and decodes the response JSON into out if provided.
func (c *Client) Do(req *http.Request, out any) error {
	return c.doWith(c.http, req, out)
}

func (c *Client) doWith(client *http.Client, req *http.Request, out any) error {
	res, err := client.Do(req)
	if err != nil {
		return &ConnError{Err: err}
	}
	defer res.Body.Close()

	c.logger.Debug("jira request",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", res.StatusCode),
	)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return parseAPIError(res)
	}

	if out == nil {
		io.Copy(io.Discard, res.Body)
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &DecodeError{Err: err}
	}

	return nil
}

// Get issues a GET request against path with the given query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := c.NewRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return c.Do(req, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	req, err := c.NewRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	return c.Do(req, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	req, err := c.NewRequest(ctx, http.MethodPut, path, nil, body)
	if err != nil {
		return err
	}
	return c.Do(req, out)
}

// Upload posts r as a multipart file upload, the form Jira's attachment
// endpoint requires, using the longer transfer timeout.
func (c *Client) Upload(ctx context.Context, path, fileName string, r io.Reader, out any) error {
	buf := new(bytes.Buffer)
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return fmt.Errorf("jira: build multipart: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("jira: read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("jira: finish multipart: %w", err)
	}

	req, err := c.NewRequest(ctx, http.MethodPost, path, nil, RawBody{
		Reader:      buf,
		ContentType: writer.FormDataContentType(),
	})
	if err != nil {
		return err
	}
	req.Header.Set("X-Atlassian-Token", "no-check")

	return c.doWith(c.transfer, req, out)
}

// GetAbsolute issues a GET against an absolute URL returned by a previous
// API response (role links, pagination links). The URL must stay on the
// configured Jira host.
func (c *Client) GetAbsolute(ctx context.Context, rawURL string, out any) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("jira: parse url: %w", err)
	}
	if parsed.Host != c.baseURL.Host {
		return fmt.Errorf("jira: url host %q does not match configured site", parsed.Host)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	return c.Do(req, out)
}

// Download fetches rawURL with the transfer client and returns the body for
// streaming. The URL must point at the configured Jira host.
func (c *Client) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("jira: parse attachment url: %w", err)
	}
	if parsed.Host != c.baseURL.Host {
		return nil, fmt.Errorf("jira: attachment url host %q does not match configured site", parsed.Host)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.transfer.Do(req)
	if err != nil {
		return nil, &ConnError{Err: err}
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		defer res.Body.Close()
		return nil, parseAPIError(res)
	}

	return res.Body, nil
}

// SetTransport overrides the underlying HTTP transport. Useful for testing.
func (c *Client) SetTransport(rt http.RoundTripper) {
	if rt == nil {
		return
	}
	c.http.Transport = rt
	c.transfer.Transport = rt
}
