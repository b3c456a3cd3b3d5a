package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/hubscout/hubscout/internal/fetcher"
)

func sampleInfo() *fetcher.ModelInfo {
	info := &fetcher.ModelInfo{
		ID:           "openai/gpt-2",
		Author:       "openai",
		PipelineTag:  "text-generation",
		LibraryName:  "transformers",
		SHA:          "3f69b3629a17ad2d4bcdd8a3a0d5c1cdbdbb6e3f",
		Downloads:    1250000,
		Likes:        3400,
		CreatedAt:    time.Now().Add(-48 * time.Hour),
		LastModified: time.Now().Add(-2 * time.Hour),
		UsedStorage:  5_000_000_000,
	}
	info.Config.ModelType = "gpt2"
	info.Config.Architectures = []string{"GPT2LMHeadModel"}
	return info
}

func sampleCard() *fetcher.ModelCard {
	return &fetcher.ModelCard{
		License:   "mit",
		BaseModel: "openai/gpt-1",
		Datasets:  []string{"webtext"},
		Languages: []string{"en"},
		Tags:      []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8", "t9", "t10"},
	}
}

func TestDetailUI_PrintModel(t *testing.T) {
	var buf bytes.Buffer
	NewDetailUI(&buf, false).PrintModel(sampleInfo(), sampleCard())

	output := buf.String()
	want := []string{
		"Model Details",
		"openai/gpt-2",
		"huggingface.co/openai",
		"text-generation",
		"transformers",
		"gpt2",
		"GPT2LMHeadModel",
		"3f69b3629a17",       // revision shortened to 12 chars
		"1,250,000", "3,400", // counts grouped with commas
		"GB",
		"ago",
		"mit",
		"openai/gpt-1",
		"webtext",
		"Languages",
		"(+2 more)", // 10 tags, 8 shown
	}
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("output missing %q.\nGot:\n%s", w, output)
		}
	}

	if strings.Contains(output, "Private") {
		t.Errorf("expected no Private row for a public model.\nGot:\n%s", output)
	}
	if strings.Contains(output, sampleInfo().SHA) {
		t.Errorf("expected revision to be shortened.\nGot:\n%s", output)
	}
}

func TestDetailUI_PrintModel_NoCard(t *testing.T) {
	var buf bytes.Buffer
	NewDetailUI(&buf, false).PrintModel(sampleInfo(), nil)

	output := buf.String()
	if !strings.Contains(output, "Model card unavailable.") {
		t.Errorf("expected card notice.\nGot:\n%s", output)
	}
}

func TestDetailUI_PrintModel_EmptyCard(t *testing.T) {
	var buf bytes.Buffer
	NewDetailUI(&buf, false).PrintModel(sampleInfo(), &fetcher.ModelCard{Raw: "# readme"})

	output := buf.String()
	if !strings.Contains(output, "No structured metadata in the model card.") {
		t.Errorf("expected empty card notice.\nGot:\n%s", output)
	}
}

func TestDetailUI_Quiet(t *testing.T) {
	var buf bytes.Buffer
	NewDetailUI(&buf, true).PrintModel(sampleInfo(), sampleCard())

	output := buf.String()
	want := []string{
		"openai/gpt-2 task=text-generation downloads=1250000 likes=3400",
		"license=mit",
	}
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("output missing %q.\nGot:\n%s", w, output)
		}
	}
	if strings.Contains(output, "Model Details") {
		t.Errorf("expected plain output in quiet mode.\nGot:\n%s", output)
	}
}

func TestJoinLimited(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		max   int
		want  string
	}{
		{"empty", nil, 3, ""},
		{"under limit", []string{"a", "b"}, 3, "a, b"},
		{"at limit", []string{"a", "b", "c"}, 3, "a, b, c"},
		{"over limit", []string{"a", "b", "c", "d", "e"}, 3, "a, b, c (+2 more)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinLimited(tt.items, tt.max); got != tt.want {
				t.Errorf("joinLimited() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHumanWhen_ZeroTime(t *testing.T) {
	if got := humanWhen(time.Time{}); got != "" {
		t.Errorf("humanWhen(zero) = %q, want empty", got)
	}
}
