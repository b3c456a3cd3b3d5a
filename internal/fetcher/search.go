package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Sort names accepted by Filters.Sort. They are translated to the field
// names the hub API sorts by in sortParam.
const (
	SortDownloads = "downloads"
	SortLikes     = "likes"
	SortCreated   = "created"
	SortModified  = "modified"
)

const defaultSearchLimit = 50

// Filters captures one model search before it is translated into query
// parameters for GET /api/models. Zero values mean "no constraint".
type Filters struct {
	Query        string // substring match on the model name, also sent upstream
	Task         string // pipeline tag, e.g. "text-generation"
	Organization string // hub namespace, e.g. "openai"
	Library      string // library tag, e.g. "pytorch"
	Sort         string // one of the Sort* names; defaults to downloads
	Ascending    bool   // flip sort order; the hub default is descending
	Limit        int    // max results to request; <=0 means 50
	MinDownloads int    // drop results below this download count
	CreatedAfter string // YYYY-MM-DD creation cutoff
}

func (f Filters) limit() int {
	if f.Limit > 0 {
		return f.Limit
	}
	return defaultSearchLimit
}

func (f Filters) direction() string {
	if f.Ascending {
		return "1"
	}
	return "-1"
}

// sortParam maps a CLI sort name onto the hub API field name. Unknown names
// sort by downloads.
func sortParam(name string) string {
	switch name {
	case SortLikes:
		return "likes"
	case SortCreated:
		return "createdAt"
	case SortModified:
		return "lastModified"
	default:
		return "downloads"
	}
}

// params builds the query string for the listing request. full=true asks the
// hub to include download counts and pipeline tags in list responses.
func (f Filters) params() url.Values {
	params := url.Values{}
	params.Set("sort", sortParam(f.Sort))
	params.Set("direction", f.direction())
	params.Set("limit", strconv.Itoa(f.limit()))
	params.Set("full", "true")

	if f.Task != "" {
		params.Set("pipeline_tag", f.Task)
	}
	if f.Organization != "" {
		params.Set("author", f.Organization)
	}
	if f.Library != "" {
		params.Set("filter", f.Library)
	}
	if f.Query != "" {
		params.Set("search", f.Query)
	}
	if f.CreatedAfter != "" {
		params.Set("created_at", f.CreatedAfter)
	}
	return params
}

// keep applies the constraints the listing API does not enforce reliably:
// the download floor, and a case-insensitive substring match of the query
// against the model name and the full id.
func (f Filters) keep(rec Record) bool {
	if rec.Downloads < f.MinDownloads {
		return false
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(rec.ModelName), q) ||
		strings.Contains(strings.ToLower(rec.FullModelID), q)
}

// ModelSearcher searches for models on Hugging Face and normalizes the
// results into Records.
type ModelSearcher struct {
	Client  *http.Client
	Token   string
	BaseURL string // optional; defaults to "https://huggingface.co"
}

// Search queries the hub and returns the normalized, locally filtered
// results. It never fails: upstream errors are logged and an empty slice is
// returned, so callers can render "no results" and move on.
func (s *ModelSearcher) Search(ctx context.Context, f Filters) []Record {
	records, err := s.search(ctx, f)
	if err != nil {
		logf("", "search failed: %v", err)
		return []Record{}
	}
	return records
}

func (s *ModelSearcher) search(ctx context.Context, f Filters) ([]Record, error) {
	items, err := s.listModels(ctx, f.params())
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		m, err := decodeHubModel(item)
		if err != nil {
			logf("", "skipping malformed result: %v", err)
			continue
		}
		rec, ok := normalizeRecord(m)
		if !ok {
			continue
		}
		if !f.keep(rec) {
			continue
		}
		records = append(records, rec)
	}

	logf("", "found %d models", len(records))
	return records, nil
}

// listModels performs the GET /api/models request and returns the raw list
// elements, so one malformed entry cannot poison the whole response.
func (s *ModelSearcher) listModels(ctx context.Context, params url.Values) ([]json.RawMessage, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	baseURL := strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	searchURL := fmt.Sprintf("%s/api/models?%s", baseURL, params.Encode())
	logf("", "searching models: %s", params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if strings.TrimSpace(s.Token) != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(s.Token))
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HubError{StatusCode: resp.StatusCode}
	}

	var items []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}
