package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/numeric"
	"github.com/opscart/avd-business-case/pkg/projection"
)

func summaryProjection() projection.Projection {
	return projection.Projection{
		Company: "Contoso",
		Parts: []projection.Part{
			{
				Name: projection.PartSummary,
				Sections: []projection.Section{
					{Kind: projection.KindKeyValue, Key: "Company", Value: projection.TextCell("Contoso")},
					{Kind: projection.KindHeading, Heading: "Key Metrics"},
					{Kind: projection.KindKeyValue, Key: "Annual Savings", Value: projection.NumberCell(391200, "$391,200")},
					{Kind: projection.KindKeyValue, Key: "Payback Period", Value: projection.MissingCell()},
					{Kind: projection.KindHeading, Heading: "Annual Cost Comparison"},
					{Kind: projection.KindKeyValue, Key: "Ignored", Value: projection.TextCell("x")},
				},
			},
			{Name: projection.PartTimeline, Placeholder: true, Message: "Timeline data not available"},
		},
	}
}

func TestNewHandler(t *testing.T) {
	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{"", "text", false},
		{"text", "text", false},
		{"JSON", "json", false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		h, err := NewHandler(tt.format, &bytes.Buffer{})
		if (err != nil) != tt.wantErr {
			t.Errorf("NewHandler(%q): expected error %v, got %v", tt.format, tt.wantErr, err)
			continue
		}
		if err == nil && h.Format() != tt.want {
			t.Errorf("NewHandler(%q): expected %s, got %s", tt.format, tt.want, h.Format())
		}
	}
}

func TestKeyMetricsOnlyFromMetricsBlock(t *testing.T) {
	got := keyMetrics(summaryProjection())
	if len(got) != 2 {
		t.Fatalf("Expected 2 key metrics, got %d", len(got))
	}
	if got[0].Key != "Annual Savings" || got[1].Key != "Payback Period" {
		t.Errorf("Expected Annual Savings, Payback Period; got %s, %s", got[0].Key, got[1].Key)
	}
}

func TestTextSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextHandler(&buf).DisplaySummary(context.Background(), summaryProjection(), []string{"reports/contoso.pdf"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Contoso", "Annual Savings", "$391,200", "N/A", "1 section(s)", "reports/contoso.pdf"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "Ignored") {
		t.Error("Expected only key metrics")
	}
}

func TestJSONSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONHandler(&buf).DisplaySummary(context.Background(), summaryProjection(), nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var got jsonSummary
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if got.Company != "Contoso" || got.Placeholders != 1 {
		t.Errorf("Expected Contoso with 1 placeholder, got %s/%d", got.Company, got.Placeholders)
	}
	if len(got.Metrics) != 2 {
		t.Fatalf("Expected 2 metrics, got %d", len(got.Metrics))
	}
	if got.Metrics[0].Value == nil || *got.Metrics[0].Value != 391200 {
		t.Errorf("Expected raw value 391200, got %v", got.Metrics[0].Value)
	}
	if got.Metrics[1].Value != nil || got.Metrics[1].Display != "N/A" {
		t.Errorf("Expected null value displayed N/A, got %+v", got.Metrics[1])
	}
	if got.Files == nil {
		t.Error("Expected empty files array, not null")
	}
}

func TestHistory(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	runs := []*models.ReportRun{{
		ID:          "run-1",
		CompanyName: "Contoso",
		TotalUsers:  2000,
		AnnualValue: numeric.Ptr(392000.0),
		Formats:     []string{"pdf", "xlsx"},
		CreatedAt:   created,
	}}
	stats := &models.RunStats{CompanyName: "Contoso", PeriodDays: 30, TotalRuns: 1, AvgAnnualValue: 392000}

	var text bytes.Buffer
	if err := NewTextHandler(&text).DisplayHistory(context.Background(), runs, stats); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, want := range []string{"2025-03-01 09:30", "Contoso", "2,000", "$392,000", "N/A", "pdf,xlsx", "Last 30 days", "1 runs"} {
		if !strings.Contains(text.String(), want) {
			t.Errorf("Expected history to contain %q\n%s", want, text.String())
		}
	}

	var js bytes.Buffer
	if err := NewJSONHandler(&js).DisplayHistory(context.Background(), runs, stats); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(js.String(), `"payback_months": null`) || !strings.Contains(js.String(), `"total_runs": 1`) {
		t.Errorf("Expected nullable fields and stats in JSON, got %s", js.String())
	}
}

func TestEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextHandler(&buf).DisplayHistory(context.Background(), nil, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "No archived runs") {
		t.Errorf("Expected empty notice, got %q", buf.String())
	}
}
