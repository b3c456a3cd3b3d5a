package ui

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/hubscout/hubscout/internal/fetcher"
)

// TableOptions controls optional columns of the results table.
type TableOptions struct {
	// HideDownloads drops the DOWNLOADS column.
	HideDownloads bool
}

// newTable configures a borderless, left-aligned table in the style of the
// docker CLI. Headers are passed pre-uppercased, so auto formatting is off.
func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetRowSeparator("")
	table.SetColumnSeparator("")
	table.SetCenterSeparator("")
	table.SetTablePadding("   ")
	table.SetNoWhiteSpace(true)
	return table
}

// RenderResults renders search records as the standard results table. Empty
// input produces a notice instead of a bare header.
func RenderResults(records []fetcher.Record, opts TableOptions) string {
	if len(records) == 0 {
		return GetCrossMark() + " No models found matching your criteria.\n"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\n", Bold.Render(fmt.Sprintf("Found %d models:", len(records))))

	table := newTable(&buf)
	header := []string{"#", "NAME", "TASK", "ORGANIZATION"}
	if !opts.HideDownloads {
		header = append(header, "DOWNLOADS")
	}
	header = append(header, "LIKES")
	table.SetHeader(header)

	for i, rec := range records {
		row := []string{strconv.Itoa(i + 1), rec.ModelName, rec.Task, rec.Organization}
		if !opts.HideDownloads {
			row = append(row, FormatCount(rec.Downloads))
		}
		row = append(row, FormatCount(rec.Likes))
		table.Append(row)
	}
	table.Render()

	return buf.String()
}

// FormatCount formats a number with commas for thousands
func FormatCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var result []rune
	for i, r := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, r)
	}
	return string(result)
}
