package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/google/uuid"

	"github.com/hubscout/hubscout/internal/fetcher"
	"github.com/hubscout/hubscout/internal/ui"
)

const (
	toolVendor = "hubscout"
	toolName   = "hubscout"
)

// BOM writes the records as a CycloneDX BOM at path. Like CSV, an empty
// result set creates no file and prints a notice to out instead.
func BOM(out io.Writer, records []fetcher.Record, path string) error {
	if len(records) == 0 {
		fmt.Fprintf(out, "%s No results to export.\n", ui.GetCrossMark())
		return nil
	}

	if err := WriteBOM(BuildBOM(records), path); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s Exported %d models to: %s\n", ui.GetCheckMark(), len(records), ui.Highlight.Render(path))
	return nil
}

// BuildBOM converts search results into a CycloneDX BOM with one
// machine-learning-model component per record. The BOM carries a fresh
// serial number and a timestamp, so two exports of the same results are
// distinct documents.
func BuildBOM(records []fetcher.Record) *cdx.BOM {
	components := make([]cdx.Component, 0, len(records))
	for _, rec := range records {
		components = append(components, recordComponent(rec))
	}

	bom := cdx.NewBOM()
	bom.SerialNumber = "urn:uuid:" + uuid.New().String()
	bom.Metadata = &cdx.Metadata{
		Timestamp: time.Now().Format(time.RFC3339),
	}
	addToolComponent(bom)
	bom.Components = &components
	return bom
}

// recordComponent maps one search record onto a CycloneDX component. The
// purl doubles as the bom-ref; hub ids are unique within one result set.
func recordComponent(rec fetcher.Record) cdx.Component {
	purl := "pkg:huggingface/" + rec.FullModelID

	return cdx.Component{
		BOMRef:     purl,
		Type:       cdx.ComponentTypeMachineLearningModel,
		Name:       rec.ModelName,
		Group:      rec.Organization,
		PackageURL: purl,
		ExternalReferences: &[]cdx.ExternalReference{
			{
				Type: cdx.ERTypeWebsite,
				URL:  "https://" + rec.OrganizationURL,
			},
		},
		Properties: &[]cdx.Property{
			{Name: "huggingface:task", Value: rec.Task},
			{Name: "huggingface:downloads", Value: strconv.Itoa(rec.Downloads)},
			{Name: "huggingface:likes", Value: strconv.Itoa(rec.Likes)},
		},
	}
}

func addToolComponent(bom *cdx.BOM) {
	comp := cdx.Component{
		Type: cdx.ComponentTypeApplication,
		Manufacturer: &cdx.OrganizationalEntity{
			Name: toolVendor,
		},
		Name:    toolName,
		Version: ToolVersion(),
	}

	if bom.Metadata.Tools == nil {
		bom.Metadata.Tools = &cdx.ToolsChoice{}
	}
	if bom.Metadata.Tools.Components == nil {
		bom.Metadata.Tools.Components = &[]cdx.Component{comp}
		return
	}
	components := append(*bom.Metadata.Tools.Components, comp)
	bom.Metadata.Tools.Components = &components
}

// WriteBOM writes the BOM to path. The extension picks the encoding: .xml
// writes CycloneDX XML, everything else JSON.
func WriteBOM(bom *cdx.BOM, path string) error {
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

	fileFmt := cdx.BOMFileFormatJSON
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		fileFmt = cdx.BOMFileFormatXML
	}

	encoder := cdx.NewBOMEncoder(f, fileFmt)
	encoder.SetPretty(true)
	if err := encoder.Encode(bom); err != nil {
		return err
	}

	logf("wrote bom to %s", path)
	return nil
}
