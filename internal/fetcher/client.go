package fetcher

import (
	"net/http"
	"strings"
	"time"
)

// defaultBaseURL is the Hugging Face Hub endpoint all fetchers talk to
// unless their BaseURL field says otherwise (tests do).
const defaultBaseURL = "https://huggingface.co"

const userAgent = "hubscout"

// hubTransport stamps every outgoing request with a User-Agent and, when a
// token is configured, a Bearer Authorization header.
type hubTransport struct {
	base  http.RoundTripper
	token string
}

func (t *hubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", userAgent)
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		httpLogf("%s %s error: %v", req.Method, req.URL, err)
		return nil, err
	}
	httpLogf("%s %s %d", req.Method, req.URL, resp.StatusCode)
	return resp, nil
}

// NewHubClient creates an *http.Client configured for Hugging Face API calls.
// timeout is the per-request deadline (0 = no timeout).
// token is injected as a Bearer token on every request when non-empty.
func NewHubClient(timeout time.Duration, token string) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &hubTransport{base: http.DefaultTransport, token: strings.TrimSpace(token)},
	}
}
