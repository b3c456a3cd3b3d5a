package fetcher

import (
	"reflect"
	"testing"
)

func TestSplitFrontMatter_SeparatesYAMLAndBody(t *testing.T) {
	fm, body := splitFrontMatter("---\nlicense: mit\n---\n# Title\n\nText.\n")
	if fm["license"] != "mit" {
		t.Fatalf("fm = %v", fm)
	}
	if body != "# Title\n\nText." {
		t.Fatalf("body = %q", body)
	}
}

func TestSplitFrontMatter_ClosingMarkerAtEOF(t *testing.T) {
	fm, body := splitFrontMatter("---\nlicense: mit\n---")
	if fm["license"] != "mit" {
		t.Fatalf("fm = %v", fm)
	}
	if body != "" {
		t.Fatalf("body = %q", body)
	}
}

func TestSplitFrontMatter_InvalidYAML_KeepsRaw(t *testing.T) {
	raw := "---\n: bad: [unclosed\n---\nbody"
	fm, body := splitFrontMatter(raw)
	if fm != nil {
		t.Fatalf("expected nil front matter, got %v", fm)
	}
	if body != raw {
		t.Fatalf("expected raw body back, got %q", body)
	}
}

func TestSplitFrontMatter_MissingClosingMarker(t *testing.T) {
	raw := "---\nlicense: mit\nno closing marker"
	fm, body := splitFrontMatter(raw)
	if fm != nil || body != raw {
		t.Fatalf("fm=%v body=%q", fm, body)
	}
}

func TestStringSliceFromAny_DeduplicatesAndTrims(t *testing.T) {
	got := stringSliceFromAny([]any{" a ", "b", "a", "", nil})
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestStringFromAny_NonString(t *testing.T) {
	if got := stringFromAny(42); got != "42" {
		t.Fatalf("got %q", got)
	}
	if got := stringFromAny(nil); got != "" {
		t.Fatalf("got %q", got)
	}
}
