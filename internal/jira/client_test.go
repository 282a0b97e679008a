package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"gitlab.com/your-org/jira-mcp/internal/auth"
	"gitlab.com/your-org/jira-mcp/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(t *testing.T, fn roundTripFunc) *Client {
	t.Helper()
	creds := config.JiraConfig{Username: "user@example.com", APIToken: "token"}
	client, err := NewClient("https://example.atlassian.net", creds, nil)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	client.SetTransport(auth.NewTransport(fn, creds))
	return client
}

func newTestService(t *testing.T, fn roundTripFunc) *Service {
	t.Helper()
	return NewService(newTestClient(t, fn))
}

func jsonResponse(t *testing.T, status int, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(data)),
		Header:     make(http.Header),
	}
}

func textResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestNewClientRequiresBase(t *testing.T) {
	t.Parallel()

	_, err := NewClient("", config.JiraConfig{Username: "user", APIToken: "token"}, nil)
	if err == nil || !strings.Contains(err.Error(), "base URL") {
		t.Fatalf("expected base URL error, got %v", err)
	}
}

func TestClientGetDecodesAndAuthenticates(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/rest/api/3/myself" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") == "" {
			t.Fatalf("expected auth header")
		}
		return jsonResponse(t, http.StatusOK, map[string]string{"displayName": "User"}), nil
	})

	var out struct {
		DisplayName string `json:"displayName"`
	}
	if err := client.Get(context.Background(), "/rest/api/3/myself", nil, &out); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if out.DisplayName != "User" {
		t.Fatalf("unexpected body %+v", out)
	}
}

func TestClientAPIError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusNotFound, map[string]any{
			"errorMessages": []string{"Issue does not exist or you do not have permission to see it."},
		}), nil
	})

	err := client.Get(context.Background(), "/rest/api/3/issue/PROJ-1", nil, &struct{}{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected status %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Detail(), "does not exist") {
		t.Fatalf("unexpected detail %q", apiErr.Detail())
	}
}

func TestClientAPIErrorNonJSONBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return textResponse(http.StatusBadGateway, "upstream unavailable"), nil
	})

	err := client.Get(context.Background(), "/rest/api/3/project", nil, &struct{}{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Detail() != "upstream unavailable" {
		t.Fatalf("unexpected detail %q", apiErr.Detail())
	}
}

func TestClientConnError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	})

	err := client.Get(context.Background(), "/rest/api/3/project", nil, &struct{}{})
	var connErr *ConnError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected ConnError, got %v", err)
	}
}

func TestClientDecodeError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return textResponse(http.StatusOK, "<html>login page</html>"), nil
	})

	err := client.Get(context.Background(), "/rest/api/3/project", nil, &struct{}{})
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestClientDiscardsBodyWithoutOut(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return textResponse(http.StatusNoContent, ""), nil
	})

	if err := client.Put(context.Background(), "/rest/api/3/issue/PROJ-1", map[string]any{}, nil); err != nil {
		t.Fatalf("Put error: %v", err)
	}
}

func TestClientUploadMultipart(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if r.Header.Get("X-Atlassian-Token") != "no-check" {
			t.Fatalf("expected XSRF bypass header")
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Fatalf("unexpected content type %s", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "report.txt" {
			t.Fatalf("unexpected filename %s", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "contents" {
			t.Fatalf("unexpected file data %q", data)
		}
		return jsonResponse(t, http.StatusOK, []map[string]string{{"id": "1", "filename": "report.txt"}}), nil
	})

	var out []struct {
		ID string `json:"id"`
	}
	err := client.Upload(context.Background(), "/rest/api/3/issue/PROJ-1/attachments", "report.txt", strings.NewReader("contents"), &out)
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if len(out) != 1 || out[0].ID != "1" {
		t.Fatalf("unexpected result %+v", out)
	}
}

func TestGetAbsoluteRejectsForeignHost(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		t.Fatalf("no request should be issued")
		return nil, nil
	})

	err := client.GetAbsolute(context.Background(), "https://evil.example.com/role/1", &struct{}{})
	if err == nil || !strings.Contains(err.Error(), "does not match") {
		t.Fatalf("expected host mismatch error, got %v", err)
	}
}

func TestDownloadRejectsForeignHost(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		t.Fatalf("no request should be issued")
		return nil, nil
	})

	_, err := client.Download(context.Background(), "https://evil.example.com/attachment/1")
	if err == nil || !strings.Contains(err.Error(), "does not match") {
		t.Fatalf("expected host mismatch error, got %v", err)
	}
}
