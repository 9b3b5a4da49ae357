// Package export flattens an annotated report into a single CSV row for
// downstream tabular analysis.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/equitas/internal/report"
)

// Exporter writes one CSV file per ticker into a target directory. The
// file is overwritten on every run so it always reflects the latest
// report.
type Exporter struct {
	dataDir string
	logger  arbor.ILogger
}

// NewExporter creates an exporter writing into dataDir.
func NewExporter(dataDir string, logger arbor.ILogger) *Exporter {
	return &Exporter{
		dataDir: dataDir,
		logger:  logger,
	}
}

// Export flattens the document to a header row plus one data row and
// writes EquityResearch_{ticker}.csv, returning the written path.
//
// Columns are ticker, report_date, then for each section every data field
// as {section}_{field} followed by {section}_insight and {section}_signal.
// Column order comes from the document's fixed section and field order.
func (e *Exporter) Export(doc *report.Document) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", fmt.Errorf("cannot export document: %w", err)
	}

	header := []string{"ticker", "report_date"}
	row := []string{doc.Ticker, doc.GeneratedOn.Format("2006-01-02")}

	for _, section := range doc.Sections {
		prefix := columnPrefix(section.Kind)
		for _, key := range section.Kind.FieldKeys() {
			header = append(header, prefix+"_"+key)
			row = append(row, section.Field(key).Display())
		}
		header = append(header, prefix+"_insight", prefix+"_signal")
		row = append(row, section.Insight, section.Signal.String())
	}

	if err := os.MkdirAll(e.dataDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	path := filepath.Join(e.dataDir, fmt.Sprintf("EquityResearch_%s.csv", filenameSafe(doc.Ticker)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll([][]string{header, row}); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}

	e.logger.Info().Str("path", path).Int("columns", len(header)).Msg("CSV export written")
	return path, nil
}

// ReadRow reads an exported file back as a column-to-value map.
func ReadRow(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) != 2 {
		return nil, fmt.Errorf("expected header and one data row, got %d records", len(records))
	}
	if len(records[0]) != len(records[1]) {
		return nil, fmt.Errorf("header has %d columns, row has %d", len(records[0]), len(records[1]))
	}

	row := make(map[string]string, len(records[0]))
	for i, col := range records[0] {
		row[col] = records[1][i]
	}
	return row, nil
}

// columnPrefix renders a section kind as a snake_case column prefix, e.g.
// "Company Overview" becomes "company_overview".
func columnPrefix(kind report.SectionKind) string {
	return strings.ReplaceAll(strings.ToLower(kind.String()), " ", "_")
}

func filenameSafe(ticker string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, ticker)
}
