package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/at-ishikawa/memocard/internal/memorycard"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: response error %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Is lets errors.Is(err, memorycard.ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == memorycard.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// UserMessage is the message shown to users for this error.
func (e *APIError) UserMessage() string {
	return e.Message
}

// newAPIError builds an APIError, preferring a structured {"message": ...} body.
func newAPIError(method, path string, statusCode int, body string) *APIError {
	return &APIError{
		Method:     method,
		Path:       path,
		StatusCode: statusCode,
		Message:    errorMessage(statusCode, body),
	}
}

func errorMessage(statusCode int, body string) string {
	var structured struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &structured); err == nil {
		if structured.Message != "" {
			return structured.Message
		}
		if structured.Error != "" {
			return structured.Error
		}
	}
	if text := http.StatusText(statusCode); text != "" {
		return strings.ToLower(text)
	}
	return fmt.Sprintf("http %d", statusCode)
}

// isRetryableError reports whether a request may succeed when sent again.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError || apiErr.StatusCode == http.StatusTooManyRequests
	}

	// transport failures such as refused connections and i/o timeouts
	return true
}
