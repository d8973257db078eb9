package drivers

import (
	"testing"
	"time"

	"github.com/opscart/avd-business-case/pkg/models"
)

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestBandThresholds(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(int) models.Band
		value    int
		expected models.Band
	}{
		{"users 999", UserScaleBand, 999, models.BandLow},
		{"users 1000", UserScaleBand, 1000, models.BandMedium},
		{"users 5000", UserScaleBand, 5000, models.BandMedium},
		{"users 5001", UserScaleBand, 5001, models.BandHigh},
		{"use cases 2", UseCaseBand, 2, models.BandLow},
		{"use cases 5", UseCaseBand, 5, models.BandLow},
		{"use cases 6", UseCaseBand, 6, models.BandMedium},
		{"use cases 11", UseCaseBand, 11, models.BandHigh},
		{"apps 99", AppCountBand, 99, models.BandLow},
		{"apps 300", AppCountBand, 300, models.BandMedium},
		{"apps 301", AppCountBand, 301, models.BandHigh},
		{"weeks 60", TimelinePressureBand, 60, models.BandLow},
		{"weeks 45", TimelinePressureBand, 45, models.BandMedium},
		{"weeks 12", TimelinePressureBand, 12, models.BandMedium},
		{"weeks 11", TimelinePressureBand, 11, models.BandHigh},
		{"weeks negative", TimelinePressureBand, -3, models.BandHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.value); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestResolveExplicitWins(t *testing.T) {
	p := &models.CustomerProfile{
		TotalUsers: 200,
		Drivers: map[models.DriverID]models.Band{
			models.DriverUserScale:     models.BandHigh,
			models.DriverChangeControl: models.BandLow,
		},
	}

	res := Resolve(p, time.Now())

	if res.Band(models.DriverUserScale) != models.BandHigh {
		t.Errorf("Expected explicit D6 high, got %s", res.Band(models.DriverUserScale))
	}
	if res.Band(models.DriverChangeControl) != models.BandLow {
		t.Errorf("Expected explicit D19 low, got %s", res.Band(models.DriverChangeControl))
	}
	if res.Defaulted[models.DriverChangeControl] {
		t.Error("Explicit driver should not be marked defaulted")
	}
}

func TestResolveDerivesAndDefaults(t *testing.T) {
	p := &models.CustomerProfile{
		TotalUsers:       2500,
		UseCaseCount:     12,
		AppCount:         80,
		PlannedStartDate: date("2026-01-05"),
		TargetGoLiveDate: date("2026-03-02"),
	}

	res := Resolve(p, time.Now())

	expected := map[models.DriverID]models.Band{
		models.DriverTimelinePressure: models.BandHigh,
		models.DriverUserScale:        models.BandMedium,
		models.DriverUseCases:         models.BandHigh,
		models.DriverAppCount:         models.BandLow,
		models.DriverCloudPlatform:    models.BandLow,
		models.DriverPeripherals:      models.BandLow,
		models.DriverLOBTesting:       models.BandMedium,
	}
	for id, band := range expected {
		if res.Band(id) != band {
			t.Errorf("%s: expected %s, got %s", id.Label(), band, res.Band(id))
		}
	}

	if res.Defaulted[models.DriverUserScale] {
		t.Error("D6 derived from user count should not be defaulted")
	}
	if !res.Defaulted[models.DriverLOBTesting] {
		t.Error("D29 should be marked defaulted")
	}
	if res.WeeksToGoLive == nil || *res.WeeksToGoLive != 8 {
		t.Errorf("Expected 8 weeks to go-live, got %v", res.WeeksToGoLive)
	}
	if len(res.Bands) != len(models.AllDrivers) {
		t.Errorf("Expected %d bands, got %d", len(models.AllDrivers), len(res.Bands))
	}
}

func TestResolveWithoutGoLive(t *testing.T) {
	p := &models.CustomerProfile{TotalUsers: 100}

	res := Resolve(p, time.Now())

	if res.WeeksToGoLive != nil {
		t.Errorf("Expected nil weeks to go-live, got %d", *res.WeeksToGoLive)
	}
	if !res.Defaulted[models.DriverTimelinePressure] {
		t.Error("D5 should be defaulted without a go-live date")
	}
	if res.Band(models.DriverTimelinePressure) != models.BandMedium {
		t.Errorf("Expected default D5 medium, got %s", res.Band(models.DriverTimelinePressure))
	}
}

func TestWeeksToGoLiveUsesAsOfWithoutStart(t *testing.T) {
	asOf := *date("2026-06-01")
	p := &models.CustomerProfile{TotalUsers: 10, TargetGoLiveDate: date("2026-10-19")}

	weeks := WeeksToGoLive(p, asOf)
	if weeks == nil || *weeks != 20 {
		t.Errorf("Expected 20 weeks, got %v", weeks)
	}
}

func TestResolveNilProfile(t *testing.T) {
	res := Resolve(nil, time.Now())
	for _, id := range models.AllDrivers {
		if !res.Defaulted[id] {
			t.Errorf("%s should be defaulted for a nil profile", id)
		}
	}
}
