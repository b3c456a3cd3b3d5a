package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/docker/go-units"

	"github.com/hubscout/hubscout/internal/fetcher"
)

// DetailUI renders the detail view for a single model.
type DetailUI struct {
	writer io.Writer
	quiet  bool
}

// NewDetailUI creates a new UI handler for the show command.
func NewDetailUI(w io.Writer, quiet bool) *DetailUI {
	return &DetailUI{
		writer: w,
		quiet:  quiet,
	}
}

// PrintModel renders the model detail view. The card may be nil when the
// repository has no README or fetching it failed.
func (d *DetailUI) PrintModel(info *fetcher.ModelInfo, card *fetcher.ModelCard) {
	if d.quiet {
		d.PrintSimple(info, card)
		return
	}

	var output strings.Builder

	// Header
	output.WriteString(Success.Bold(true).Render("Model Details"))
	output.WriteString("\n\n")

	output.WriteString(d.renderOverview(info))
	output.WriteString("\n\n")

	output.WriteString(d.renderStats(info))
	output.WriteString("\n\n")

	output.WriteString(d.renderCard(card))
	output.WriteString("\n")

	boxed := Box.Render(strings.TrimRight(output.String(), "\n"))
	fmt.Fprintln(d.writer, boxed)
}

// renderOverview creates the identity section
func (d *DetailUI) renderOverview(info *fetcher.ModelInfo) string {
	rec := info.Record()

	var sb strings.Builder

	sb.WriteString(SectionHeader.Render("Model"))
	sb.WriteString("\n")
	writeKeyValue(&sb, "ID", Highlight.Render(rec.FullModelID))
	writeKeyValue(&sb, "Organization", rec.Organization)
	writeKeyValue(&sb, "URL", "https://"+rec.OrganizationURL)
	writeKeyValue(&sb, "Task", rec.Task)
	writeKeyValue(&sb, "Library", info.LibraryName)
	writeKeyValue(&sb, "Model type", info.Config.ModelType)
	writeKeyValue(&sb, "Architectures", joinLimited(info.Config.Architectures, 4))
	writeKeyValue(&sb, "Revision", shortRevision(info.SHA))

	return strings.TrimRight(sb.String(), "\n")
}

// renderStats creates the popularity and access section
func (d *DetailUI) renderStats(info *fetcher.ModelInfo) string {
	var sb strings.Builder

	sb.WriteString(SectionHeader.Render("Stats"))
	sb.WriteString("\n")
	writeKeyValue(&sb, "Downloads", FormatCount(info.Downloads))
	writeKeyValue(&sb, "Likes", FormatCount(info.Likes))
	if info.UsedStorage > 0 {
		writeKeyValue(&sb, "Storage", units.HumanSize(float64(info.UsedStorage)))
	}
	writeKeyValue(&sb, "Created", humanWhen(info.CreatedAt))
	writeKeyValue(&sb, "Updated", humanWhen(info.LastModified))
	writeKeyValue(&sb, "Gated", info.Gated.Describe())
	if info.Private {
		writeKeyValue(&sb, "Private", "yes")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// renderCard creates the model card section
func (d *DetailUI) renderCard(card *fetcher.ModelCard) string {
	var sb strings.Builder

	sb.WriteString(SectionHeader.Render("Model Card"))
	sb.WriteString("\n")

	if card == nil {
		sb.WriteString(Dim.Render("Model card unavailable."))
		return sb.String()
	}

	headerLen := sb.Len()
	writeKeyValue(&sb, "License", card.License)
	writeKeyValue(&sb, "Base model", card.BaseModel)
	writeKeyValue(&sb, "Datasets", joinLimited(card.Datasets, 6))
	writeKeyValue(&sb, "Languages", joinLimited(card.Languages, 6))
	writeKeyValue(&sb, "Tags", joinLimited(card.Tags, 8))

	if sb.Len() == headerLen {
		sb.WriteString(Dim.Render("No structured metadata in the model card."))
		return sb.String()
	}
	return strings.TrimRight(sb.String(), "\n")
}

// PrintSimple prints a minimal text report for quiet mode
func (d *DetailUI) PrintSimple(info *fetcher.ModelInfo, card *fetcher.ModelCard) {
	rec := info.Record()

	fmt.Fprintf(d.writer, "%s task=%s downloads=%d likes=%d\n", rec.FullModelID, rec.Task, info.Downloads, info.Likes)
	if card != nil && card.License != "" {
		fmt.Fprintf(d.writer, "license=%s\n", card.License)
	}
}

// writeKeyValue appends a labeled row, skipping empty values
func writeKeyValue(sb *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	sb.WriteString(FormatKeyValue(key, value))
	sb.WriteString("\n")
}

// joinLimited joins up to max items, noting how many were elided
func joinLimited(items []string, max int) string {
	if len(items) == 0 {
		return ""
	}
	if len(items) <= max {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:max], ", ") + fmt.Sprintf(" (+%d more)", len(items)-max)
}

func shortRevision(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}

func humanWhen(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return units.HumanDuration(time.Since(t)) + " ago"
}
