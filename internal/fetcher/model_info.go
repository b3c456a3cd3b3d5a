package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// BoolOrString unmarshals JSON that may be either a boolean (true/false)
// or a string (e.g. "auto"). The hub uses this shape for the gated field.
type BoolOrString struct {
	Bool   *bool
	String *string
}

func (v *BoolOrString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		v.Bool = nil
		v.String = nil
		return nil
	}

	// string case: "auto"
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		v.String = &s
		v.Bool = nil
		return nil
	}

	// bool case: true/false
	var bo bool
	if err := json.Unmarshal(b, &bo); err != nil {
		return err
	}
	v.Bool = &bo
	v.String = nil
	return nil
}

// Describe renders the gated state for display.
func (v BoolOrString) Describe() string {
	switch {
	case v.String != nil:
		return *v.String
	case v.Bool != nil && *v.Bool:
		return "yes"
	default:
		return "no"
	}
}

// ModelInfo is the decoded response from GET https://huggingface.co/api/models/:id
type ModelInfo struct {
	ID           string       `json:"id"`
	ModelID      string       `json:"modelId"`
	Author       string       `json:"author"`
	PipelineTag  string       `json:"pipeline_tag"`
	LibraryName  string       `json:"library_name"`
	Tags         []string     `json:"tags"`
	SHA          string       `json:"sha"`
	Downloads    int          `json:"downloads"`
	Likes        int          `json:"likes"`
	LastModified time.Time    `json:"lastModified"`
	CreatedAt    time.Time    `json:"createdAt"`
	Gated        BoolOrString `json:"gated"`
	Private      bool         `json:"private"`
	UsedStorage  int64        `json:"usedStorage"`
	Config       struct {
		ModelType     string   `json:"model_type"`
		Architectures []string `json:"architectures"`
	} `json:"config"`
}

// Record reduces the detail response to the normalized search shape.
func (m *ModelInfo) Record() Record {
	rec, _ := normalizeRecord(hubModel{
		ID:          m.ID,
		ModelID:     m.ModelID,
		PipelineTag: m.PipelineTag,
		Downloads:   m.Downloads,
		Likes:       m.Likes,
	})
	return rec
}

// ModelInfoFetcher fetches metadata for a single model from the hub API.
type ModelInfoFetcher struct {
	Client  *http.Client
	Token   string
	BaseURL string // optional; defaults to "https://huggingface.co"
}

func (f *ModelInfoFetcher) Fetch(ctx context.Context, modelID string) (*ModelInfo, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	trimmedModelID := strings.TrimPrefix(strings.TrimSpace(modelID), "/")

	baseURL := strings.TrimRight(strings.TrimSpace(f.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	url := fmt.Sprintf("%s/api/models/%s", baseURL, trimmedModelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if strings.TrimSpace(f.Token) != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(f.Token))
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HubError{StatusCode: resp.StatusCode}
	}

	var parsed ModelInfo
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}
