package ui

import (
	"strings"
	"testing"

	"github.com/hubscout/hubscout/internal/fetcher"
)

func sampleResults() []fetcher.Record {
	return []fetcher.Record{
		{
			ModelName:       "gpt-2",
			Task:            "text-generation",
			OrganizationURL: "huggingface.co/openai",
			FullModelID:     "openai/gpt-2",
			Organization:    "openai",
			Downloads:       1250000,
			Likes:           3400,
		},
		{
			ModelName:       "bert-base-uncased",
			Task:            "fill-mask",
			OrganizationURL: "huggingface.co",
			FullModelID:     "bert-base-uncased",
			Organization:    "independent",
			Downloads:       980,
			Likes:           12,
		},
	}
}

func TestRenderResults(t *testing.T) {
	output := RenderResults(sampleResults(), TableOptions{})

	want := []string{
		"Found 2 models:",
		"NAME", "TASK", "ORGANIZATION", "DOWNLOADS", "LIKES",
		"gpt-2", "text-generation", "openai", "1,250,000", "3,400",
		"bert-base-uncased", "fill-mask", "independent", "980",
	}
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("output missing %q.\nGot:\n%s", w, output)
		}
	}
}

func TestRenderResults_HideDownloads(t *testing.T) {
	output := RenderResults(sampleResults(), TableOptions{HideDownloads: true})

	if strings.Contains(output, "DOWNLOADS") {
		t.Errorf("expected no DOWNLOADS column.\nGot:\n%s", output)
	}
	if strings.Contains(output, "1,250,000") {
		t.Errorf("expected no download counts.\nGot:\n%s", output)
	}
	for _, w := range []string{"LIKES", "3,400", "gpt-2"} {
		if !strings.Contains(output, w) {
			t.Errorf("output missing %q.\nGot:\n%s", w, output)
		}
	}
}

func TestRenderResults_Empty(t *testing.T) {
	output := RenderResults(nil, TableOptions{})
	if !strings.Contains(output, "No models found matching your criteria.") {
		t.Errorf("expected empty notice, got:\n%s", output)
	}
	if strings.Contains(output, "Found") {
		t.Errorf("expected no header for empty results, got:\n%s", output)
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		if got := FormatCount(tt.in); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
