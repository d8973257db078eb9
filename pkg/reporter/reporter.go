package reporter

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/opscart/avd-business-case/pkg/metrics"
	"github.com/opscart/avd-business-case/pkg/projection"
)

// ReportFormat is an output target
type ReportFormat string

const (
	FormatHTML     ReportFormat = "html"
	FormatMarkdown ReportFormat = "markdown"
	FormatCSV      ReportFormat = "csv"
	FormatXLSX     ReportFormat = "xlsx"
	FormatPDF      ReportFormat = "pdf"
)

// AllFormats lists every supported target
var AllFormats = []ReportFormat{FormatPDF, FormatXLSX, FormatHTML, FormatMarkdown, FormatCSV}

// ParseFormat accepts a format name or a common alias
func ParseFormat(s string) (ReportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html", "htm":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel", "workbook":
		return FormatXLSX, nil
	case "pdf", "document":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported report format: %q", s)
	}
}

// Extension is the file suffix for the format
func (f ReportFormat) Extension() string {
	if f == FormatMarkdown {
		return ".md"
	}
	return "." + string(f)
}

// Reporter renders projections to any supported format
type Reporter struct {
	logger   *slog.Logger
	metrics  *metrics.Recorder
	document *DocumentRenderer
}

func New(logger *slog.Logger, rec *metrics.Recorder) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		logger:   logger,
		metrics:  rec,
		document: NewDocumentRenderer(logger, rec),
	}
}

// Result describes one generated report
type Result struct {
	Format       ReportFormat
	DrawFailures int
}

// Generate renders p as format into w
func (r *Reporter) Generate(p projection.Projection, format ReportFormat, w io.Writer) (Result, error) {
	res := Result{Format: format}
	var err error
	switch format {
	case FormatHTML:
		err = GenerateHTML(p, w)
	case FormatMarkdown:
		err = GenerateMarkdown(p, w)
	case FormatCSV:
		err = GenerateCSV(p, w)
	case FormatXLSX:
		var data []byte
		if data, err = RenderWorkbook(p, r.logger); err == nil {
			_, err = w.Write(data)
		}
	case FormatPDF:
		var result DocumentResult
		var data []byte
		data, result, err = r.document.RenderPDF(p)
		if err == nil {
			_, err = w.Write(data)
		}
		res.DrawFailures = result.DrawFailures
		if result.DrawFailures > 0 {
			r.logger.Warn("document rendered with skipped elements", "skipped", result.DrawFailures, "pages", result.Pages)
		}
	default:
		return res, fmt.Errorf("unsupported report format: %q", format)
	}
	if err != nil {
		return res, fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	r.metrics.ReportGenerated(string(format))
	for _, part := range p.Parts {
		if part.Placeholder {
			r.metrics.Placeholder(part.Name)
		}
	}
	r.logger.Debug("report generated", "format", format, "placeholders", p.Placeholders())
	return res, nil
}
