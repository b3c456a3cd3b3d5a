package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hubscout/hubscout/internal/fetcher"
	"github.com/hubscout/hubscout/internal/ui"
)

// csvHeader is the fixed column set of an export file. Consumers rely on
// these names, so they stay in lockstep with the Record JSON tags.
var csvHeader = []string{"model_name", "task", "organization_url"}

// CSV writes the records to a CSV file at path, creating parent directories
// as needed. When there is nothing to export no file is created; a notice is
// printed to out instead. Status messages go to out, not to the file.
func CSV(out io.Writer, records []fetcher.Record, path string) error {
	if len(records) == 0 {
		fmt.Fprintf(out, "%s No results to export.\n", ui.GetCrossMark())
		return nil
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range records {
		if err := w.Write([]string{rec.ModelName, rec.Task, rec.OrganizationURL}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	logf("wrote %d rows to %s", len(records), path)
	fmt.Fprintf(out, "%s Exported %d models to: %s\n", ui.GetCheckMark(), len(records), ui.Highlight.Render(path))
	return nil
}
