package roboto

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// APIError is a non-2xx response from the catalog.
type APIError struct {
	// StatusCode is the HTTP status.
	StatusCode int

	// Code is the API error code, when the body carried one.
	Code string

	// Message is the API message, or the raw body.
	Message string

	// RetryAfter is parsed from the Retry-After header on 429/503.
	RetryAfter time.Duration

	kind error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (HTTP %d", e.kind, e.StatusCode)
	if e.Code != "" {
		fmt.Fprintf(&b, ", %s", e.Code)
	}
	b.WriteString(")")
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Unwrap returns the domain error the status maps to.
func (e *APIError) Unwrap() error {
	return e.kind
}

// newAPIError builds an APIError from a response and its (bounded) body.
func newAPIError(resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		kind:       classifyStatus(resp.StatusCode),
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		apiErr.Code = parsed.Error.ErrorCode
		apiErr.Message = parsed.Error.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}

	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			apiErr.RetryAfter = time.Duration(seconds) * time.Second
		}
	}

	return apiErr
}

// classifyStatus maps an HTTP status onto a domain error.
func classifyStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return domain.ErrCatalogUnauthorized
	case status == http.StatusTooManyRequests:
		return domain.ErrRateLimited
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status >= 400 && status < 500:
		return domain.ErrCatalogRejected
	default:
		return domain.ErrCatalogUnavailable
	}
}
