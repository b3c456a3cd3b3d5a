package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ModelCard holds the parsed README.md of a model repo. Hub model cards
// usually start with a YAML front matter block (--- ... ---) followed by
// Markdown; the structured fields below come from the front matter.
type ModelCard struct {
	Raw         string
	FrontMatter map[string]any
	Body        string

	License   string
	Tags      []string
	Datasets  []string
	Languages []string
	BaseModel string
}

// ModelCardFetcher fetches the README.md (model card) for a model repo.
//
// It uses URLs like:
//
//	GET https://huggingface.co/{modelID}/resolve/main/README.md
//
// and falls back to /resolve/master/README.md.
type ModelCardFetcher struct {
	Client  *http.Client
	Token   string
	BaseURL string // optional; defaults to "https://huggingface.co"
}

func (f *ModelCardFetcher) Fetch(ctx context.Context, modelID string) (*ModelCard, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	trimmedModelID := strings.TrimPrefix(strings.TrimSpace(modelID), "/")
	if trimmedModelID == "" {
		return nil, fmt.Errorf("empty model id")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(f.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	// Try main then master.
	candidates := []string{
		fmt.Sprintf("%s/%s/resolve/main/README.md", baseURL, trimmedModelID),
		fmt.Sprintf("%s/%s/resolve/master/README.md", baseURL, trimmedModelID),
	}

	var lastErr error
	for _, url := range candidates {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/markdown, text/plain, */*")
		if strings.TrimSpace(f.Token) != "" {
			req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(f.Token))
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		bodyBytes, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = &HubError{StatusCode: resp.StatusCode}
			continue
		}

		return parseModelCard(string(bodyBytes)), nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("unable to fetch README")
	}

	return nil, lastErr
}

func parseModelCard(raw string) *ModelCard {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	card := &ModelCard{Raw: raw}

	fm, body := splitFrontMatter(raw)
	card.FrontMatter = fm
	card.Body = body

	// Front matter fields (best effort)
	card.License = strings.TrimSpace(stringFromAny(fm["license"]))
	card.Tags = stringSliceFromAny(fm["tags"])
	card.Datasets = stringSliceFromAny(fm["datasets"])
	card.Languages = stringSliceFromAny(fm["language"])
	card.BaseModel = strings.TrimSpace(stringFromAny(fm["base_model"]))

	return card
}
