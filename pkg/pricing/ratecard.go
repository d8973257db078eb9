package pricing

import (
	"fmt"

	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/numeric"
)

// HoursPerMonth is the Azure billing convention for always-on compute
const HoursPerMonth = 730.0

// PlatformRates are the current-state unit costs of an incumbent platform
type PlatformRates struct {
	LicensePerUserMonthly float64 `yaml:"license_per_user_monthly"`
	OpsPerUserMonthly     float64 `yaml:"ops_per_user_monthly"`
	ServerMonthly         float64 `yaml:"server_monthly"`
	UsersPerServer        int     `yaml:"users_per_server"`
}

// SKURate is the pay-as-you-go price of a session host size
type SKURate struct {
	HourlyRate float64 `yaml:"hourly_rate"`
	VCPU       int     `yaml:"vcpu"`
	MemoryGiB  int     `yaml:"memory_gib"`
}

// ProfileSizing maps a user workload class to a host size and density
type ProfileSizing struct {
	SKU              string  `yaml:"sku"`
	UsersPerVM       int     `yaml:"users_per_vm"`
	StoragePerUserGB float64 `yaml:"storage_per_user_gb"`
}

// AutoScalingRates band the auto-scaling savings percentage.
// Savings = ByUserScale[D6] - UseCasePenalty[D7], clamped to [0, MaxPercent].
type AutoScalingRates struct {
	ByUserScale    map[models.Band]float64 `yaml:"by_user_scale"`
	UseCasePenalty map[models.Band]float64 `yaml:"use_case_penalty"`
	MaxPercent     float64                 `yaml:"max_percent"`
}

// ImplementationRates price the services engagement
type ImplementationRates struct {
	ProjectManagerRate     float64                 `yaml:"project_manager_rate"`
	ArchitectRate          float64                 `yaml:"architect_rate"`
	EngineerRate           float64                 `yaml:"engineer_rate"`
	ProjectManagementHours float64                 `yaml:"project_management_hours"`
	ArchitectHours         float64                 `yaml:"architect_hours"`
	EngineerHours          float64                 `yaml:"engineer_hours"`
	BaseDurationWeeks      int                     `yaml:"base_duration_weeks"`
	ComplexityMultipliers  map[models.Band]float64 `yaml:"complexity_multipliers"`
}

// RateCard is the complete set of unit costs for one pricing source
type RateCard struct {
	Version  string `yaml:"version"`
	Source   string `yaml:"-"`
	Region   string `yaml:"region"`
	Currency string `yaml:"currency"`

	Platforms             map[string]PlatformRates             `yaml:"platforms"`
	SKUs                  map[string]SKURate                   `yaml:"skus"`
	UserProfiles          map[models.UserProfile]ProfileSizing `yaml:"user_profiles"`
	StoragePerGBMonthly   map[string]float64                   `yaml:"storage_per_gb_monthly"`
	ManagerPerUserMonthly float64                              `yaml:"manager_per_user_monthly"`
	AutoScaling           AutoScalingRates                     `yaml:"auto_scaling"`
	Implementation        ImplementationRates                  `yaml:"implementation"`
}

// Platform returns the rates for a current platform, if priced
func (r *RateCard) Platform(name string) (PlatformRates, bool) {
	if r == nil {
		return PlatformRates{}, false
	}
	p, ok := r.Platforms[name]
	return p, ok
}

// SKU returns the price of a session host size, if priced
func (r *RateCard) SKU(name string) (SKURate, bool) {
	if r == nil {
		return SKURate{}, false
	}
	s, ok := r.SKUs[name]
	return s, ok
}

// Sizing returns host sizing for a user profile, falling back to medium
func (r *RateCard) Sizing(profile models.UserProfile) (ProfileSizing, bool) {
	if r == nil {
		return ProfileSizing{}, false
	}
	if s, ok := r.UserProfiles[profile]; ok {
		return s, true
	}
	s, ok := r.UserProfiles[models.UserProfileMedium]
	return s, ok
}

// StorageRate returns the $/GB-month of a storage type, if priced
func (r *RateCard) StorageRate(storageType string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	v, ok := r.StoragePerGBMonthly[storageType]
	return v, ok
}

// Clone returns a deep copy so providers can overlay prices safely
func (r *RateCard) Clone() *RateCard {
	if r == nil {
		return nil
	}
	c := *r
	c.Platforms = make(map[string]PlatformRates, len(r.Platforms))
	for k, v := range r.Platforms {
		c.Platforms[k] = v
	}
	c.SKUs = make(map[string]SKURate, len(r.SKUs))
	for k, v := range r.SKUs {
		c.SKUs[k] = v
	}
	c.UserProfiles = make(map[models.UserProfile]ProfileSizing, len(r.UserProfiles))
	for k, v := range r.UserProfiles {
		c.UserProfiles[k] = v
	}
	c.StoragePerGBMonthly = make(map[string]float64, len(r.StoragePerGBMonthly))
	for k, v := range r.StoragePerGBMonthly {
		c.StoragePerGBMonthly[k] = v
	}
	c.AutoScaling.ByUserScale = copyBandMap(r.AutoScaling.ByUserScale)
	c.AutoScaling.UseCasePenalty = copyBandMap(r.AutoScaling.UseCasePenalty)
	c.Implementation.ComplexityMultipliers = copyBandMap(r.Implementation.ComplexityMultipliers)
	return &c
}

func copyBandMap(m map[models.Band]float64) map[models.Band]float64 {
	out := make(map[models.Band]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Validate checks that every rate is finite and non-negative and densities are positive
func (r *RateCard) Validate() error {
	for name, p := range r.Platforms {
		if !validRate(p.LicensePerUserMonthly) || !validRate(p.OpsPerUserMonthly) || !validRate(p.ServerMonthly) {
			return fmt.Errorf("platform %s: rates must be finite and non-negative", name)
		}
		if p.UsersPerServer < 0 {
			return fmt.Errorf("platform %s: users_per_server must be non-negative", name)
		}
	}
	for name, s := range r.SKUs {
		if !validRate(s.HourlyRate) {
			return fmt.Errorf("sku %s: hourly_rate must be finite and non-negative, got %v", name, s.HourlyRate)
		}
	}
	for profile, s := range r.UserProfiles {
		if s.UsersPerVM <= 0 {
			return fmt.Errorf("user profile %s: users_per_vm must be positive", profile)
		}
		if !validRate(s.StoragePerUserGB) {
			return fmt.Errorf("user profile %s: storage_per_user_gb must be finite and non-negative", profile)
		}
	}
	for name, v := range r.StoragePerGBMonthly {
		if !validRate(v) {
			return fmt.Errorf("storage %s: price must be finite and non-negative, got %v", name, v)
		}
	}
	if !validRate(r.ManagerPerUserMonthly) {
		return fmt.Errorf("manager_per_user_monthly must be finite and non-negative, got %v", r.ManagerPerUserMonthly)
	}

	as := r.AutoScaling
	if !validRate(as.MaxPercent) || as.MaxPercent > 1 {
		return fmt.Errorf("auto_scaling.max_percent must be between 0 and 1, got %v", as.MaxPercent)
	}
	if err := validBandRates("auto_scaling.by_user_scale", as.ByUserScale); err != nil {
		return err
	}
	if err := validBandRates("auto_scaling.use_case_penalty", as.UseCasePenalty); err != nil {
		return err
	}

	impl := r.Implementation
	for field, v := range map[string]float64{
		"project_manager_rate":     impl.ProjectManagerRate,
		"architect_rate":           impl.ArchitectRate,
		"engineer_rate":            impl.EngineerRate,
		"project_management_hours": impl.ProjectManagementHours,
		"architect_hours":          impl.ArchitectHours,
		"engineer_hours":           impl.EngineerHours,
	} {
		if !validRate(v) {
			return fmt.Errorf("implementation.%s must be finite and non-negative, got %v", field, v)
		}
	}
	if impl.BaseDurationWeeks < 0 {
		return fmt.Errorf("implementation.base_duration_weeks must be non-negative")
	}
	return validBandRates("implementation.complexity_multipliers", impl.ComplexityMultipliers)
}

func validRate(v float64) bool {
	return numeric.IsFinite(v) && v >= 0
}

func validBandRates(field string, m map[models.Band]float64) error {
	for band, v := range m {
		if !validRate(v) {
			return fmt.Errorf("%s.%s must be finite and non-negative, got %v", field, band, v)
		}
	}
	return nil
}
