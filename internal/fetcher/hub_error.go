package fetcher

import (
	"errors"
	"fmt"
	"net/http"
)

// HubError is returned when the Hugging Face Hub responds with a non-2xx HTTP
// status. Using a typed error allows callers to distinguish "not found" (404)
// from auth or rate-limit failures without string matching.
type HubError struct {
	StatusCode int
}

func (e *HubError) Error() string {
	return fmt.Sprintf("huggingface api status %d", e.StatusCode)
}

// IsNotFound reports whether err is a HubError with HTTP 404.
func IsNotFound(err error) bool {
	var e *HubError
	return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is a HubError with HTTP 401 or 403.
// This typically means the repo is gated or private and no (or an invalid)
// token was provided.
func IsUnauthorized(err error) bool {
	var e *HubError
	return errors.As(err, &e) && (e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// IsRateLimited reports whether err is a HubError with HTTP 429.
func IsRateLimited(err error) bool {
	var e *HubError
	return errors.As(err, &e) && e.StatusCode == http.StatusTooManyRequests
}
