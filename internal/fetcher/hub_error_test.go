package fetcher

import (
	"errors"
	"fmt"
	"testing"
)

func TestHubError_Classification(t *testing.T) {
	cases := []struct {
		status       int
		notFound     bool
		unauthorized bool
		rateLimited  bool
	}{
		{404, true, false, false},
		{401, false, true, false},
		{403, false, true, false},
		{429, false, false, true},
		{500, false, false, false},
	}

	for _, c := range cases {
		err := fmt.Errorf("list models: %w", &HubError{StatusCode: c.status})
		if got := IsNotFound(err); got != c.notFound {
			t.Fatalf("IsNotFound(%d) = %v", c.status, got)
		}
		if got := IsUnauthorized(err); got != c.unauthorized {
			t.Fatalf("IsUnauthorized(%d) = %v", c.status, got)
		}
		if got := IsRateLimited(err); got != c.rateLimited {
			t.Fatalf("IsRateLimited(%d) = %v", c.status, got)
		}
	}
}

func TestHubError_NonHubError(t *testing.T) {
	err := errors.New("plain")
	if IsNotFound(err) || IsUnauthorized(err) || IsRateLimited(err) {
		t.Fatalf("plain errors must not classify")
	}
	if IsNotFound(nil) {
		t.Fatalf("nil must not classify")
	}
}

func TestHubError_Message(t *testing.T) {
	err := &HubError{StatusCode: 404}
	if got := err.Error(); got != "huggingface api status 404" {
		t.Fatalf("Error() = %q", got)
	}
}
