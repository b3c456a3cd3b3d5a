package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// listServer returns a ModelSearcher backed by an httptest server that
// records the query values of each request and replies with the given models.
func listServer(t *testing.T, models []map[string]any) (*ModelSearcher, *[]url.Values) {
	t.Helper()
	var seen []url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/models" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		seen = append(seen, r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models)
	}))
	t.Cleanup(srv.Close)
	return &ModelSearcher{BaseURL: srv.URL}, &seen
}

func TestSortParam(t *testing.T) {
	cases := map[string]string{
		"downloads": "downloads",
		"likes":     "likes",
		"created":   "createdAt",
		"modified":  "lastModified",
		"":          "downloads",
		"bogus":     "downloads",
	}
	for in, want := range cases {
		if got := sortParam(in); got != want {
			t.Fatalf("sortParam(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFilters_Params_Defaults(t *testing.T) {
	params := Filters{}.params()

	if got := params.Get("sort"); got != "downloads" {
		t.Fatalf("sort = %q", got)
	}
	if got := params.Get("direction"); got != "-1" {
		t.Fatalf("direction = %q", got)
	}
	if got := params.Get("limit"); got != "50" {
		t.Fatalf("limit = %q", got)
	}
	if got := params.Get("full"); got != "true" {
		t.Fatalf("full = %q", got)
	}
	for _, key := range []string{"pipeline_tag", "author", "filter", "search", "created_at"} {
		if params.Has(key) {
			t.Fatalf("unexpected %q param", key)
		}
	}
}

func TestFilters_Params_FullMapping(t *testing.T) {
	f := Filters{
		Query:        "bert",
		Task:         "text-generation",
		Organization: "openai",
		Library:      "pytorch",
		Sort:         SortModified,
		Ascending:    true,
		Limit:        5,
		CreatedAfter: "2024-01-01",
	}
	params := f.params()

	want := map[string]string{
		"search":       "bert",
		"pipeline_tag": "text-generation",
		"author":       "openai",
		"filter":       "pytorch",
		"sort":         "lastModified",
		"direction":    "1",
		"limit":        "5",
		"full":         "true",
		"created_at":   "2024-01-01",
	}
	for key, val := range want {
		if got := params.Get(key); got != val {
			t.Fatalf("%s = %q, want %q", key, got, val)
		}
	}
}

func TestSearch_NormalizesAndFiltersLocally(t *testing.T) {
	searcher, _ := listServer(t, []map[string]any{
		{"id": "google/bert-base", "pipeline_tag": "fill-mask", "downloads": 500, "likes": 3},
		{"id": "org/gpt2-small", "pipeline_tag": "text-generation", "downloads": 900},
		{"id": "tiny/bert-mini", "downloads": 10},
		{"id": "bert-standalone", "downloads": 250},
	})

	got := searcher.Search(context.Background(), Filters{Query: "BERT", MinDownloads: 100})

	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d: %#v", len(got), got)
	}
	first := got[0]
	if first.FullModelID != "google/bert-base" || first.Organization != "google" {
		t.Fatalf("first = %#v", first)
	}
	if first.Task != "fill-mask" || first.Downloads != 500 || first.Likes != 3 {
		t.Fatalf("first = %#v", first)
	}
	second := got[1]
	if second.FullModelID != "bert-standalone" || second.Organization != IndependentOrg {
		t.Fatalf("second = %#v", second)
	}
	if second.OrganizationURL != "huggingface.co" {
		t.Fatalf("second url = %q", second.OrganizationURL)
	}
}

func TestSearch_QueryMatchesFullID(t *testing.T) {
	searcher, _ := listServer(t, []map[string]any{
		{"id": "openai/whisper-large", "downloads": 100},
		{"id": "coqui/tts-v1", "downloads": 100},
	})

	got := searcher.Search(context.Background(), Filters{Query: "openai"})

	if len(got) != 1 || got[0].FullModelID != "openai/whisper-large" {
		t.Fatalf("got %#v", got)
	}
}

func TestSearch_SkipsMalformedEntries(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(&buf)
	defer SetLogger(nil)

	searcher, _ := listServer(t, []map[string]any{
		{"id": 123},
		{"id": "ok/model", "downloads": 1},
	})

	got := searcher.Search(context.Background(), Filters{})

	if len(got) != 1 || got[0].FullModelID != "ok/model" {
		t.Fatalf("got %#v", got)
	}
	if !strings.Contains(buf.String(), "skipping malformed result") {
		t.Fatalf("expected skip log, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "found 1 models") {
		t.Fatalf("expected found log, got %q", buf.String())
	}
}

func TestSearch_UpstreamStatusError_ReturnsEmptyAndLogs(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(&buf)
	defer SetLogger(nil)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	searcher := &ModelSearcher{BaseURL: srv.URL}
	got := searcher.Search(context.Background(), Filters{Query: "x"})

	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	if !strings.Contains(buf.String(), "search failed") || !strings.Contains(buf.String(), "500") {
		t.Fatalf("expected failure log, got %q", buf.String())
	}
}

func TestSearch_TransportError_ReturnsEmpty(t *testing.T) {
	searcher := &ModelSearcher{
		BaseURL: "http://hub.invalid",
		Client: &http.Client{
			Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
				return nil, errors.New("boom")
			}),
		},
	}

	got := searcher.Search(context.Background(), Filters{})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSearch_BadJSON_ReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "{")
	}))
	defer srv.Close()

	searcher := &ModelSearcher{BaseURL: srv.URL}
	if got := searcher.Search(context.Background(), Filters{}); len(got) != 0 {
		t.Fatalf("expected no records, got %#v", got)
	}
}

func TestListModels_SendsAcceptAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Fatalf("Accept = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("Authorization = %q", got)
		}
		_, _ = io.WriteString(w, "[]")
	}))
	defer srv.Close()

	searcher := &ModelSearcher{BaseURL: srv.URL, Token: " tok "}
	if _, err := searcher.listModels(context.Background(), Filters{}.params()); err != nil {
		t.Fatalf("listModels: %v", err)
	}
}

func TestListModels_Non200_ReturnsHubError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	searcher := &ModelSearcher{BaseURL: srv.URL}
	_, err := searcher.listModels(context.Background(), Filters{}.params())
	if err == nil || !IsRateLimited(err) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}

func TestPresets_QueryParametersAndFloors(t *testing.T) {
	models := []map[string]any{
		{"id": "org/big", "downloads": 20000},
		{"id": "org/mid", "downloads": 1500},
		{"id": "org/small", "downloads": 10},
	}

	t.Run("SearchByName", func(t *testing.T) {
		searcher, seen := listServer(t, models)
		searcher.SearchByName(context.Background(), "big")
		params := (*seen)[0]
		if params.Get("search") != "big" || params.Get("limit") != "20" {
			t.Fatalf("params = %v", params)
		}
	})

	t.Run("SearchByTask_FloorsDownloads", func(t *testing.T) {
		searcher, seen := listServer(t, models)
		got := searcher.SearchByTask(context.Background(), "text-generation", false)
		params := (*seen)[0]
		if params.Get("pipeline_tag") != "text-generation" {
			t.Fatalf("params = %v", params)
		}
		if len(got) != 2 {
			t.Fatalf("expected floor at 1000, got %#v", got)
		}
	})

	t.Run("SearchByTask_IncludeAll", func(t *testing.T) {
		searcher, _ := listServer(t, models)
		got := searcher.SearchByTask(context.Background(), "text-generation", true)
		if len(got) != 3 {
			t.Fatalf("expected all models, got %#v", got)
		}
	})

	t.Run("SearchByOrg", func(t *testing.T) {
		searcher, seen := listServer(t, models)
		searcher.SearchByOrg(context.Background(), "org")
		if params := (*seen)[0]; params.Get("author") != "org" {
			t.Fatalf("params = %v", params)
		}
	})

	t.Run("Popular", func(t *testing.T) {
		searcher, seen := listServer(t, models)
		got := searcher.Popular(context.Background(), "")
		params := (*seen)[0]
		if params.Get("sort") != "downloads" {
			t.Fatalf("params = %v", params)
		}
		if len(got) != 1 || got[0].FullModelID != "org/big" {
			t.Fatalf("expected floor at 10000, got %#v", got)
		}
	})

	t.Run("Recent", func(t *testing.T) {
		searcher, seen := listServer(t, models)
		searcher.Recent(context.Background(), "text-to-image")
		params := (*seen)[0]
		if params.Get("sort") != "createdAt" {
			t.Fatalf("sort = %q", params.Get("sort"))
		}
		if params.Get("created_at") != "2024-01-01" {
			t.Fatalf("created_at = %q", params.Get("created_at"))
		}
		if params.Get("pipeline_tag") != "text-to-image" {
			t.Fatalf("pipeline_tag = %q", params.Get("pipeline_tag"))
		}
	})
}
