package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/opscart/avd-business-case/pkg/metrics"
	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/numeric"
)

func fixedNow() time.Time {
	return time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
}

func date(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func fullProfile() *models.CustomerProfile {
	return &models.CustomerProfile{
		CompanyName:      "Contoso",
		TotalUsers:       1000,
		LocationCount:    3,
		UseCaseCount:     4,
		AppCount:         120,
		PlannedStartDate: date("2026-02-02"),
		TargetGoLiveDate: date("2026-06-22"),
		CurrentPlatform:  "citrix",
		UserProfile:      models.UserProfileMedium,
		StorageType:      "premium",
	}
}

func TestComputeFullProfile(t *testing.T) {
	e := New(Options{Now: fixedNow, DiscountRate: 0.08})

	bc, err := e.Compute(fullProfile())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if bc.ID == "" {
		t.Error("Expected an ID")
	}
	if bc.CurrentState == nil || bc.FutureState == nil {
		t.Fatal("Expected current and future state")
	}
	if bc.ROI.TotalAnnualValue == nil {
		t.Fatal("Expected annual value")
	}
	expected := bc.CurrentState.AnnualTotal - bc.FutureState.Totals.AnnualNet
	if math.Abs(*bc.ROI.TotalAnnualValue-expected) > 0.01 {
		t.Errorf("Expected annual value %.2f, got %.2f", expected, *bc.ROI.TotalAnnualValue)
	}
	if bc.ROI.ImplementationCost != bc.Implementation.TotalCost {
		t.Errorf("ROI cost %.2f != implementation %.2f", bc.ROI.ImplementationCost, bc.Implementation.TotalCost)
	}
	if bc.Timeline == nil || bc.Timeline.Validity == nil {
		t.Fatal("Expected timeline with validity")
	}
	if *bc.Timeline.WeeksToGoLive != 20 {
		t.Errorf("Expected 20 weeks to go-live, got %d", *bc.Timeline.WeeksToGoLive)
	}
	if bc.TCO == nil {
		t.Error("Expected TCO")
	}
	if len(bc.Recommendations) < 2 {
		t.Errorf("Expected recommendations, got %d", len(bc.Recommendations))
	}
	if !bc.CalculatedAt.Equal(fixedNow()) {
		t.Errorf("Expected CalculatedAt from clock, got %v", bc.CalculatedAt)
	}
}

func TestComputeZeroImplementationCost(t *testing.T) {
	p := &models.CustomerProfile{TotalUsers: 100, ImplementationCost: numeric.Ptr(0.0), CurrentPlatform: "vmware"}

	bc, err := New(Options{Now: fixedNow}).Compute(p)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	r := bc.ROI
	if r.PaybackMonths != nil || r.Year1 != nil || r.Year3 != nil || r.Year5 != nil {
		t.Errorf("Expected null ROI and payback, got %+v", r)
	}
}

func TestComputeMinimalProfile(t *testing.T) {
	bc, err := New(Options{Now: fixedNow}).Compute(&models.CustomerProfile{TotalUsers: 25})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if bc.CurrentState != nil {
		t.Error("Expected nil current state without a platform")
	}
	if bc.ROI.TotalAnnualValue != nil {
		t.Error("Expected nil annual value")
	}
	if bc.TCO != nil {
		t.Error("Expected nil TCO")
	}
	if bc.Timeline.Validity != nil {
		t.Error("Expected nil validity without a go-live date")
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	e := New(Options{Now: fixedNow})
	p := fullProfile()

	a, _ := e.Compute(p)
	b, _ := e.Compute(p)

	if *a.ROI.TotalAnnualValue != *b.ROI.TotalAnnualValue {
		t.Error("Expected identical annual value")
	}
	if a.Timeline.ParallelizedWeeks != b.Timeline.ParallelizedWeeks {
		t.Error("Expected identical timeline")
	}
	if a.ID == b.ID {
		t.Error("Expected distinct IDs per computation")
	}
}

func TestComputeRejectsInvalidProfiles(t *testing.T) {
	tests := []struct {
		name    string
		profile *models.CustomerProfile
		field   string
	}{
		{"zero users", &models.CustomerProfile{}, "total_users"},
		{"negative apps", &models.CustomerProfile{TotalUsers: 10, AppCount: -1}, "app_count"},
		{"negative servers", &models.CustomerProfile{TotalUsers: 10, CurrentServerCount: numeric.Ptr(-2)}, "current_server_count"},
		{"dates reversed", &models.CustomerProfile{TotalUsers: 10, PlannedStartDate: date("2026-05-01"), TargetGoLiveDate: date("2026-04-01")}, "target_go_live_date"},
		{"unknown driver", &models.CustomerProfile{TotalUsers: 10, Drivers: map[models.DriverID]models.Band{"D99": models.BandLow}}, "drivers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bc, err := New(Options{Now: fixedNow}).Compute(tt.profile)
			if bc != nil {
				t.Error("Expected no business case")
			}
			var pe *ProfileError
			if !errors.As(err, &pe) {
				t.Fatalf("Expected ProfileError, got %v", err)
			}
			if pe.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, pe.Field)
			}
		})
	}
}

func TestComputeNilProfile(t *testing.T) {
	rec := metrics.NewRecorder()
	_, err := New(Options{Metrics: rec}).Compute(nil)

	if !errors.Is(err, ErrNoProfile) {
		t.Errorf("Expected ErrNoProfile, got %v", err)
	}
	count, err := testutil.GatherAndCount(rec.Registry(), "avd_business_case_compute_errors_total")
	if err != nil {
		t.Fatalf("GatherAndCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected compute error metric, got %d", count)
	}
}
