package models

import (
	"testing"
	"time"
)

func TestParseBand(t *testing.T) {
	tests := []struct {
		in       string
		expected Band
		wantErr  bool
	}{
		{"low", BandLow, false},
		{"Simple", BandLow, false},
		{" medium ", BandMedium, false},
		{"moderate", BandMedium, false},
		{"HIGH", BandHigh, false},
		{"complex", BandHigh, false},
		{"extreme", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseBand(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Expected error for %q, got band %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unexpected error for %q: %v", tt.in, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("Expected %q for %q, got %q", tt.expected, tt.in, got)
		}
	}
}

func TestBandUnmarshalText(t *testing.T) {
	var b Band
	if err := b.UnmarshalText([]byte("complex")); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if b != BandHigh {
		t.Errorf("Expected high, got %s", b)
	}
	if err := b.UnmarshalText([]byte("nope")); err == nil {
		t.Error("Expected error for unknown band")
	}
}

func TestDriverLabels(t *testing.T) {
	if len(AllDrivers) != 14 {
		t.Fatalf("Expected 14 drivers, got %d", len(AllDrivers))
	}
	for _, d := range AllDrivers {
		if !d.Valid() {
			t.Errorf("Driver %s should be valid", d)
		}
	}
	if got := DriverChangeControl.Label(); got != "Change Control (D19)" {
		t.Errorf("Expected 'Change Control (D19)', got %q", got)
	}
	if DriverID("D99").Valid() {
		t.Error("D99 should not be a valid driver")
	}
}

func TestNewCostLineAnnualIsTwelveMonths(t *testing.T) {
	line := NewCostLine(CategoryCompute, "Azure VMs", 1234.56)
	if line.AnnualCost != line.MonthlyCost*12 {
		t.Errorf("Expected annual %.2f, got %.2f", line.MonthlyCost*12, line.AnnualCost)
	}
	absent := AbsentCostLine(CategoryStorage, "Storage")
	if !absent.Absent || absent.MonthlyCost != 0 || absent.AnnualCost != 0 {
		t.Errorf("Absent line should be zero and flagged, got %+v", absent)
	}
}

func TestTimelineFeasible(t *testing.T) {
	var nilTimeline *Timeline
	if nilTimeline.Feasible() != nil {
		t.Error("Nil timeline should have unknown feasibility")
	}

	tl := &Timeline{}
	if tl.Feasible() != nil {
		t.Error("Timeline without validity should have unknown feasibility")
	}

	shortfall := -8
	tl.Validity = &shortfall
	if f := tl.Feasible(); f == nil || *f {
		t.Error("Negative validity should be infeasible")
	}
}

func TestNewReportRun(t *testing.T) {
	value := 200000.0
	validity := 4
	bc := &BusinessCase{
		ID:           "run-1",
		Profile:      &CustomerProfile{CompanyName: "Contoso", TotalUsers: 2500},
		ROI:          ROIResult{TotalAnnualValue: &value},
		Timeline:     &Timeline{ParallelizedWeeks: 28, Validity: &validity},
		CalculatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	run := NewReportRun(bc)
	if run.CompanyName != "Contoso" || run.TotalUsers != 2500 {
		t.Errorf("Expected Contoso/2500, got %s/%d", run.CompanyName, run.TotalUsers)
	}
	if run.ParallelizedWeeks != 28 {
		t.Errorf("Expected 28 weeks, got %d", run.ParallelizedWeeks)
	}
	if run.AnnualValue == nil || *run.AnnualValue != value {
		t.Errorf("Expected annual value %.0f, got %v", value, run.AnnualValue)
	}
}
