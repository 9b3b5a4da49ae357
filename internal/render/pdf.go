// Package render lays out the annotated report as a paginated PDF.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/equitas/internal/report"
)

const footerDisclaimer = "This report is AI-generated and does not constitute financial advice."

const standingDisclaimer = "This report was generated by an automated system using " +
	"artificial intelligence and third-party market data. It is provided for " +
	"informational and educational purposes only and does not constitute " +
	"investment advice, a recommendation, or an offer or solicitation to buy " +
	"or sell any security. Market data may be delayed, incomplete, or " +
	"inaccurate, and AI-generated commentary may contain errors. Past " +
	"performance is not indicative of future results. Always conduct your own " +
	"research and consult a licensed financial adviser before making any " +
	"investment decision."

// Renderer writes report documents as PDF files into a target directory.
type Renderer struct {
	reportsDir string
	logger     arbor.ILogger
}

// NewRenderer creates a renderer writing into reportsDir. The directory is
// created on first render if it does not exist.
func NewRenderer(reportsDir string, logger arbor.ILogger) *Renderer {
	return &Renderer{
		reportsDir: reportsDir,
		logger:     logger,
	}
}

// Render lays out the document and writes it to
// EquityResearch_{ticker}_{YYYYMMDD}.pdf, returning the written path.
func (r *Renderer) Render(doc *report.Document) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", fmt.Errorf("cannot render document: %w", err)
	}

	pdf := r.layout(doc)
	if pdf.Err() {
		return "", fmt.Errorf("failed to lay out PDF: %w", pdf.Error())
	}

	if err := os.MkdirAll(r.reportsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	filename := fmt.Sprintf("EquityResearch_%s_%s.pdf",
		filenameSafe(doc.Ticker), doc.GeneratedOn.Format("20060102"))
	path := filepath.Join(r.reportsDir, filename)

	if err := pdf.OutputFileAndClose(path); err != nil {
		r.logger.Error().Err(err).Str("path", path).Msg("Failed to write PDF")
		return "", fmt.Errorf("failed to write PDF: %w", err)
	}

	r.logger.Info().Str("path", path).Msg("PDF report written")
	return path, nil
}

func (r *Renderer) layout(doc *report.Document) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AliasNbPages("")

	title := fmt.Sprintf("Equity Research Report - %s", SanitizeText(doc.Ticker))
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 8, title, "", 1, "C", false, 0, "")
		pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
		pdf.Ln(4)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-18)
		pdf.SetFont("Arial", "I", 7)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 4, footerDisclaimer, "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 4, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	r.titlePage(pdf, doc)
	for _, section := range doc.Sections {
		r.sectionBlock(pdf, section)
	}
	r.disclaimerPage(pdf)

	return pdf
}

func (r *Renderer) titlePage(pdf *fpdf.Fpdf, doc *report.Document) {
	pdf.AddPage()
	pdf.Ln(40)

	name := doc.Section(report.CompanyOverview).Field("name")
	heading := SanitizeText(doc.Ticker)
	if name.IsAvailable() {
		heading = fmt.Sprintf("%s (%s)", SanitizeText(name.Display()), SanitizeText(doc.Ticker))
	}

	pdf.SetFont("Arial", "B", 20)
	pdf.MultiCell(0, 10, heading, "", "C", false)
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Reporting Period: %s", doc.Period), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated on %s", doc.GeneratedOn.Format("2 January 2006")), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 6, "Insights and signals in this report are AI-generated.", "", 1, "C", false, 0, "")
}

func (r *Renderer) sectionBlock(pdf *fpdf.Fpdf, section *report.Section) {
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(200, 220, 255)
	pdf.CellFormat(0, 9, section.Kind.String(), "", 1, "L", true, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 10)
	for _, key := range section.Kind.FieldKeys() {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(60, 6, fieldLabel(key), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, SanitizeText(section.Field(key).Display()), "", "L", false)
	}

	if section.Kind == report.RecentNews && len(section.News) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, "Top Headlines", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		limit := len(section.News)
		if limit > 3 {
			limit = 3
		}
		for _, item := range section.News[:limit] {
			line := fmt.Sprintf("- %s (%s)", SanitizeText(item.Title), SanitizeText(item.Publisher))
			pdf.MultiCell(0, 5, line, "", "L", false)
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "AI Insights:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, SanitizeText(section.Insight), "", "L", false)
	pdf.Ln(2)

	marker, red, green, blue := signalMarker(section.Signal)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(red, green, blue)
	pdf.CellFormat(0, 6, fmt.Sprintf("Signal: %s %s", section.Signal, marker), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func (r *Renderer) disclaimerPage(pdf *fpdf.Fpdf) {
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 9, "Disclaimer", "", 1, "L", false, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, standingDisclaimer, "", "L", false)
}

// signalMarker maps a signal onto its display marker and text color.
// Failed annotations carry the neutral marker like a genuine Hold.
func signalMarker(s report.Signal) (marker string, r, g, b int) {
	switch s {
	case report.SignalBuy:
		return "[POSITIVE]", 0, 128, 0
	case report.SignalSell:
		return "[NEGATIVE]", 128, 0, 0
	default:
		return "[NEUTRAL]", 128, 128, 0
	}
}

// fieldLabel renders a snake_case field key as a row label.
func fieldLabel(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		switch w {
		case "pe":
			words[i] = "P/E"
		case "gic":
			words[i] = "GIC"
		default:
			if len(w) > 0 && w[0] >= 'a' && w[0] <= 'z' {
				words[i] = string(w[0]-32) + w[1:]
			}
		}
	}
	return strings.Join(words, " ")
}

// filenameSafe keeps the ticker usable as a file name component.
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
