package igdb

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from IGDB or the Twitch token endpoint. It
// keeps the status and raw body so callers can classify the failure.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("igdb: HTTP %d: %s", e.StatusCode, e.Body)
}

func newAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
}

// IsRateLimit reports whether err is a rate-limiting failure: HTTP 429, or a
// message indicating the upstream throttled us. Rate-limit errors are the
// only retryable kind; everything else is fatal for the enclosing call.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") || strings.Contains(msg, "too many requests")
}
