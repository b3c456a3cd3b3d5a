// Package hubscout is the stable library surface over the internal Hugging
// Face search code. It is what external programs should import; the CLI in
// cmd/hubscout uses the internal packages directly.
package hubscout

import (
	"context"
	"time"

	"github.com/hubscout/hubscout/internal/fetcher"
)

// Record is one normalized search result.
type Record = fetcher.Record

// Filters describes one search. Zero values mean "no constraint".
type Filters = fetcher.Filters

// ModelInfo is the detail response for a single model.
type ModelInfo = fetcher.ModelInfo

// ModelCard is the parsed README of a model repo.
type ModelCard = fetcher.ModelCard

// Sort names accepted by Filters.Sort.
const (
	SortDownloads = fetcher.SortDownloads
	SortLikes     = fetcher.SortLikes
	SortCreated   = fetcher.SortCreated
	SortModified  = fetcher.SortModified
)

// IndependentOrg is the organization recorded for models without an "org/"
// prefix in their id.
const IndependentOrg = fetcher.IndependentOrg

// IsNotFound reports whether err is a hub 404.
func IsNotFound(err error) bool { return fetcher.IsNotFound(err) }

// IsUnauthorized reports whether err is a hub 401/403, which usually means a
// gated or private repo.
func IsUnauthorized(err error) bool { return fetcher.IsUnauthorized(err) }

// IsRateLimited reports whether err is a hub 429.
func IsRateLimited(err error) bool { return fetcher.IsRateLimited(err) }

// Options configures a Client.
type Options struct {
	// Token is a Hugging Face access token, sent as a Bearer header when
	// non-empty. Needed for gated and private repos.
	Token string

	// Timeout is the per-request deadline. Zero means 10 seconds; pass a
	// negative value for no timeout.
	Timeout time.Duration

	// BaseURL overrides the hub endpoint, mainly for tests.
	BaseURL string
}

func (o Options) timeout() time.Duration {
	switch {
	case o.Timeout == 0:
		return 10 * time.Second
	case o.Timeout < 0:
		return 0
	}
	return o.Timeout
}

// Client searches the Hugging Face Hub. The zero value is not usable; create
// one with New.
type Client struct {
	searcher *fetcher.ModelSearcher
	info     *fetcher.ModelInfoFetcher
	card     *fetcher.ModelCardFetcher
}

// New creates a Client.
func New(opts Options) *Client {
	httpClient := fetcher.NewHubClient(opts.timeout(), opts.Token)
	return &Client{
		searcher: &fetcher.ModelSearcher{Client: httpClient, BaseURL: opts.BaseURL},
		info:     &fetcher.ModelInfoFetcher{Client: httpClient, BaseURL: opts.BaseURL},
		card:     &fetcher.ModelCardFetcher{Client: httpClient, BaseURL: opts.BaseURL},
	}
}

// Search runs one search. It never fails: upstream errors produce an empty
// slice, matching the CLI behavior.
func (c *Client) Search(ctx context.Context, f Filters) []Record {
	return c.searcher.Search(ctx, f)
}

// SearchByName finds models whose name contains the given substring.
func (c *Client) SearchByName(ctx context.Context, name string) []Record {
	return c.searcher.SearchByName(ctx, name)
}

// SearchByTask lists models for one pipeline task. Unless includeAll is set,
// models with fewer than 1000 downloads are dropped.
func (c *Client) SearchByTask(ctx context.Context, task string, includeAll bool) []Record {
	return c.searcher.SearchByTask(ctx, task, includeAll)
}

// SearchByOrg lists models published under one hub namespace.
func (c *Client) SearchByOrg(ctx context.Context, org string) []Record {
	return c.searcher.SearchByOrg(ctx, org)
}

// Popular lists widely downloaded models, optionally restricted to a task.
func (c *Client) Popular(ctx context.Context, task string) []Record {
	return c.searcher.Popular(ctx, task)
}

// Recent lists recently created models, newest first, optionally restricted
// to a task.
func (c *Client) Recent(ctx context.Context, task string) []Record {
	return c.searcher.Recent(ctx, task)
}

// ModelInfo fetches the detail metadata for one model id.
func (c *Client) ModelInfo(ctx context.Context, modelID string) (*ModelInfo, error) {
	return c.info.Fetch(ctx, modelID)
}

// ModelCard fetches and parses the README of one model repo.
func (c *Client) ModelCard(ctx context.Context, modelID string) (*ModelCard, error) {
	return c.card.Fetch(ctx, modelID)
}
