package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/projection"
)

// Handler defines the interface for output formatting
type Handler interface {
	DisplaySummary(ctx context.Context, p projection.Projection, files []string) error
	DisplayHistory(ctx context.Context, runs []*models.ReportRun, stats *models.RunStats) error
	Format() string
}

// NewHandler returns the handler for a terminal format: text or json
func NewHandler(format string, w io.Writer) (Handler, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return NewTextHandler(w), nil
	case "json":
		return NewJSONHandler(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %q", format)
	}
}

// keyMetrics are the headline values of the summary part in display order
func keyMetrics(p projection.Projection) []projection.Section {
	summary, ok := p.Part(projection.PartSummary)
	if !ok || summary.Placeholder {
		return nil
	}
	var out []projection.Section
	inMetrics := false
	for _, sec := range summary.Sections {
		switch sec.Kind {
		case projection.KindHeading:
			inMetrics = sec.Heading == "Key Metrics"
		case projection.KindKeyValue:
			if inMetrics {
				out = append(out, sec)
			}
		}
	}
	return out
}
