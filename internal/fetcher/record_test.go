package fetcher

import "testing"

func TestNormalizeRecord_NamespacedID(t *testing.T) {
	rec, ok := normalizeRecord(hubModel{
		ID:          "openai/gpt-2",
		PipelineTag: "text-generation",
		Downloads:   1200,
		Likes:       7,
	})
	if !ok {
		t.Fatalf("expected record")
	}
	if rec.Organization != "openai" {
		t.Fatalf("organization = %q", rec.Organization)
	}
	if rec.ModelName != "gpt-2" {
		t.Fatalf("model name = %q", rec.ModelName)
	}
	if rec.OrganizationURL != "huggingface.co/openai" {
		t.Fatalf("organization url = %q", rec.OrganizationURL)
	}
	if rec.FullModelID != "openai/gpt-2" {
		t.Fatalf("full id = %q", rec.FullModelID)
	}
	if rec.Task != "text-generation" {
		t.Fatalf("task = %q", rec.Task)
	}
	if rec.Downloads != 1200 || rec.Likes != 7 {
		t.Fatalf("counts = %d/%d", rec.Downloads, rec.Likes)
	}
}

func TestNormalizeRecord_BareID_IsIndependent(t *testing.T) {
	rec, ok := normalizeRecord(hubModel{ID: "gpt-2"})
	if !ok {
		t.Fatalf("expected record")
	}
	if rec.Organization != IndependentOrg {
		t.Fatalf("organization = %q", rec.Organization)
	}
	if rec.OrganizationURL != "huggingface.co" {
		t.Fatalf("organization url = %q", rec.OrganizationURL)
	}
	if rec.ModelName != "gpt-2" || rec.FullModelID != "gpt-2" {
		t.Fatalf("name/id = %q/%q", rec.ModelName, rec.FullModelID)
	}
}

func TestNormalizeRecord_MissingPipelineTag_DefaultsToOther(t *testing.T) {
	rec, ok := normalizeRecord(hubModel{ID: "a/b", PipelineTag: "  "})
	if !ok {
		t.Fatalf("expected record")
	}
	if rec.Task != "other" {
		t.Fatalf("task = %q", rec.Task)
	}
}

func TestNormalizeRecord_FallsBackToModelID(t *testing.T) {
	rec, ok := normalizeRecord(hubModel{ModelID: "org/name"})
	if !ok {
		t.Fatalf("expected record")
	}
	if rec.FullModelID != "org/name" {
		t.Fatalf("full id = %q", rec.FullModelID)
	}
}

func TestNormalizeRecord_NoIdentifier_Dropped(t *testing.T) {
	if _, ok := normalizeRecord(hubModel{Downloads: 5}); ok {
		t.Fatalf("expected drop")
	}
}

func TestNormalizeRecord_SlashInName(t *testing.T) {
	// Only the first slash separates the namespace.
	rec, ok := normalizeRecord(hubModel{ID: "org/name/variant"})
	if !ok {
		t.Fatalf("expected record")
	}
	if rec.Organization != "org" || rec.ModelName != "name/variant" {
		t.Fatalf("org/name = %q/%q", rec.Organization, rec.ModelName)
	}
}
