package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/opscart/avd-business-case/pkg/models"
)

func TestLoadYAML(t *testing.T) {
	p, err := Load("testdata/contoso.yaml")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if p.CompanyName != "Contoso Health" || p.TotalUsers != 2000 {
		t.Errorf("Expected Contoso Health/2000, got %s/%d", p.CompanyName, p.TotalUsers)
	}
	if p.UseCaseCount != 8 || p.AppCount != 220 || p.LocationCount != 12 {
		t.Errorf("Expected counts 8/220/12, got %d/%d/%d", p.UseCaseCount, p.AppCount, p.LocationCount)
	}

	wantStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if p.PlannedStartDate == nil || !p.PlannedStartDate.Equal(wantStart) {
		t.Errorf("Expected start %v, got %v", wantStart, p.PlannedStartDate)
	}
	wantGoLive := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	if p.TargetGoLiveDate == nil || !p.TargetGoLiveDate.Equal(wantGoLive) {
		t.Errorf("Expected go-live %v, got %v", wantGoLive, p.TargetGoLiveDate)
	}

	wantDrivers := map[models.DriverID]models.Band{
		models.DriverChangeControl:  models.BandHigh,
		models.DriverSecurityReview: models.BandHigh,
		models.DriverPeripherals:    models.BandLow,
	}
	if len(p.Drivers) != len(wantDrivers) {
		t.Fatalf("Expected %d drivers, got %d", len(wantDrivers), len(p.Drivers))
	}
	for id, want := range wantDrivers {
		if got := p.Drivers[id]; got != want {
			t.Errorf("Expected %s = %s, got %s", id, want, got)
		}
	}

	if p.CurrentPlatform != "Citrix" || p.CurrentServerCount == nil || *p.CurrentServerCount != 80 {
		t.Errorf("Expected Citrix with 80 servers, got %s/%v", p.CurrentPlatform, p.CurrentServerCount)
	}
	if p.CurrentAnnualCost != nil {
		t.Errorf("Expected no annual cost override, got %v", *p.CurrentAnnualCost)
	}
	if p.StorageType != "premium" || p.UserProfile != models.UserProfileMedium {
		t.Errorf("Expected premium/medium, got %s/%s", p.StorageType, p.UserProfile)
	}
	if p.IncludeManager == nil || !*p.IncludeManager {
		t.Error("Expected include_manager true")
	}
	if p.ImplementationCost == nil || *p.ImplementationCost != 250000 {
		t.Errorf("Expected implementation cost 250000, got %v", p.ImplementationCost)
	}
}

func TestLoadJSON(t *testing.T) {
	p, err := Load("testdata/fabrikam.json")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.TotalUsers != 450 || p.UserProfile != models.UserProfileLight {
		t.Errorf("Expected 450 light users, got %d %s", p.TotalUsers, p.UserProfile)
	}
	if p.CurrentAnnualCost == nil || *p.CurrentAnnualCost != 540000 {
		t.Errorf("Expected annual cost 540000, got %v", p.CurrentAnnualCost)
	}
	if p.StoragePerUserGB == nil || *p.StoragePerUserGB != 20 {
		t.Errorf("Expected 20 GB per user, got %v", p.StoragePerUserGB)
	}
	if p.PlannedStartDate != nil || p.TargetGoLiveDate != nil || p.Drivers != nil {
		t.Error("Expected absent dates and drivers to stay nil")
	}
}

func TestLoadBadDate(t *testing.T) {
	_, err := Load("testdata/bad_date.yaml")
	if err == nil {
		t.Fatal("Expected error for non ISO date")
	}
	if !strings.Contains(err.Error(), "target_go_live_date") {
		t.Errorf("Expected error to name the field, got %v", err)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		isJSON bool
		want   string
	}{
		{"unknown yaml key", "total_users: 10\ntotal_user: 12\n", false, "total_user"},
		{"unknown json key", `{"total_users": 10, "seats": 4}`, true, "seats"},
		{"unknown driver", "total_users: 10\ndrivers:\n  D99: high\n", false, "D99"},
		{"bad band", "total_users: 10\ndrivers:\n  D6: extreme\n", false, "extreme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.isJSON)
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	p, err := Parse(nil, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.TotalUsers != 0 {
		t.Errorf("Expected zero users, got %d", p.TotalUsers)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.json", "notes.txt", "c.YML"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("total_users: 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := Discover(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := []string{"a.json", "b.yaml", "c.YML"}
	if len(paths) != len(want) {
		t.Fatalf("Expected %v, got %v", want, paths)
	}
	for i, name := range want {
		if filepath.Base(paths[i]) != name {
			t.Errorf("Expected %s at %d, got %s", name, i, paths[i])
		}
	}
}
