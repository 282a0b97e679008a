package jira

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError represents a non-2xx response from the Jira REST API.
type APIError struct {
	StatusCode    int               `json:"-"`
	Message       string            `json:"message"`
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
	Body          string            `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if detail := e.Detail(); detail != "" {
		return fmt.Sprintf("jira: HTTP %d: %s", e.StatusCode, detail)
	}
	return fmt.Sprintf("jira: HTTP %d", e.StatusCode)
}

// Detail returns the most specific message carried by the response.
func (e *APIError) Detail() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.ErrorMessages) > 0 {
		return e.ErrorMessages[0]
	}
	for field, msg := range e.Errors {
		return fmt.Sprintf("%s: %s", field, msg)
	}
	return strings.TrimSpace(e.Body)
}

// ConnError wraps a transport-level failure (timeout, DNS, refused connection).
type ConnError struct {
	Err error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("jira: connection failed: %v", e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// DecodeError wraps an unparseable response body.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("jira: decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func parseAPIError(res *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	apiErr := &APIError{StatusCode: res.StatusCode, Body: string(data)}
	if len(data) > 0 {
		_ = json.Unmarshal(data, apiErr)
	}
	return apiErr
}
