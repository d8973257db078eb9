package output

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/projection"
)

// JSONHandler writes machine-readable output
type JSONHandler struct {
	w io.Writer
}

func NewJSONHandler(w io.Writer) *JSONHandler {
	return &JSONHandler{w: w}
}

func (h *JSONHandler) Format() string { return "json" }

type jsonMetric struct {
	Name    string   `json:"name"`
	Display string   `json:"display"`
	Value   *float64 `json:"value"`
}

type jsonSummary struct {
	Company      string       `json:"company"`
	GeneratedAt  string       `json:"generated_at,omitempty"`
	Metrics      []jsonMetric `json:"metrics"`
	Placeholders int          `json:"placeholders"`
	Files        []string     `json:"files"`
}

func (h *JSONHandler) DisplaySummary(_ context.Context, p projection.Projection, files []string) error {
	out := jsonSummary{
		Company:      p.Company,
		GeneratedAt:  p.GeneratedAt,
		Metrics:      []jsonMetric{},
		Placeholders: p.Placeholders(),
		Files:        files,
	}
	if out.Files == nil {
		out.Files = []string{}
	}
	for _, sec := range keyMetrics(p) {
		out.Metrics = append(out.Metrics, jsonMetric{Name: sec.Key, Display: sec.Value.Text, Value: sec.Value.Number})
	}
	return h.encode(out)
}

type jsonRun struct {
	ID                string    `json:"id"`
	Company           string    `json:"company"`
	TotalUsers        int       `json:"total_users"`
	AnnualValue       *float64  `json:"annual_value"`
	PaybackMonths     *float64  `json:"payback_months"`
	Year3ROI          *float64  `json:"year3_roi"`
	ParallelizedWeeks int       `json:"parallelized_weeks"`
	ValidityWeeks     *int      `json:"validity_weeks"`
	Formats           []string  `json:"formats"`
	CreatedAt         time.Time `json:"created_at"`
}

func (h *JSONHandler) DisplayHistory(_ context.Context, runs []*models.ReportRun, stats *models.RunStats) error {
	out := struct {
		Runs  []jsonRun        `json:"runs"`
		Stats *models.RunStats `json:"stats,omitempty"`
	}{Runs: []jsonRun{}, Stats: stats}

	for _, r := range runs {
		out.Runs = append(out.Runs, jsonRun{
			ID:                r.ID,
			Company:           r.CompanyName,
			TotalUsers:        r.TotalUsers,
			AnnualValue:       r.AnnualValue,
			PaybackMonths:     r.PaybackMonths,
			Year3ROI:          r.Year3ROI,
			ParallelizedWeeks: r.ParallelizedWeeks,
			ValidityWeeks:     r.Validity,
			Formats:           r.Formats,
			CreatedAt:         r.CreatedAt,
		})
	}
	return h.encode(out)
}

func (h *JSONHandler) encode(v any) error {
	enc := json.NewEncoder(h.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
