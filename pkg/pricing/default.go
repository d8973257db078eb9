package pricing

import (
	"context"

	"github.com/opscart/avd-business-case/pkg/models"
)

// DefaultProvider serves the built-in list-price rate card
type DefaultProvider struct {
	card *RateCard
}

func NewDefaultProvider() *DefaultProvider {
	return &DefaultProvider{card: DefaultRateCard()}
}

func (d *DefaultProvider) Name() string {
	return "default"
}

func (d *DefaultProvider) GetRateCard(ctx context.Context, region string) (*RateCard, error) {
	card := d.card.Clone()
	if region != "" {
		card.Region = region
	}
	return card, nil
}

// DefaultRateCard returns conservative US list prices (East US, pay-as-you-go)
func DefaultRateCard() *RateCard {
	return &RateCard{
		Version:  "2025.1",
		Source:   "default",
		Region:   "eastus",
		Currency: "USD",
		Platforms: map[string]PlatformRates{
			"citrix":   {LicensePerUserMonthly: 18.0, OpsPerUserMonthly: 14.0, ServerMonthly: 850.0, UsersPerServer: 25},
			"vmware":   {LicensePerUserMonthly: 16.0, OpsPerUserMonthly: 13.0, ServerMonthly: 800.0, UsersPerServer: 25},
			"omnissa":  {LicensePerUserMonthly: 16.0, OpsPerUserMonthly: 13.0, ServerMonthly: 800.0, UsersPerServer: 25},
			"physical": {LicensePerUserMonthly: 6.0, OpsPerUserMonthly: 22.0, ServerMonthly: 30.0, UsersPerServer: 1},
		},
		SKUs: map[string]SKURate{
			"D4s_v5":  {HourlyRate: 0.192, VCPU: 4, MemoryGiB: 16},
			"D8s_v5":  {HourlyRate: 0.384, VCPU: 8, MemoryGiB: 32},
			"D16s_v5": {HourlyRate: 0.768, VCPU: 16, MemoryGiB: 64},
			"E8s_v5":  {HourlyRate: 0.504, VCPU: 8, MemoryGiB: 64},
		},
		UserProfiles: map[models.UserProfile]ProfileSizing{
			models.UserProfileLight:  {SKU: "D8s_v5", UsersPerVM: 16, StoragePerUserGB: 30},
			models.UserProfileMedium: {SKU: "D8s_v5", UsersPerVM: 10, StoragePerUserGB: 50},
			models.UserProfilePower:  {SKU: "D16s_v5", UsersPerVM: 6, StoragePerUserGB: 100},
		},
		StoragePerGBMonthly: map[string]float64{
			"standard": 0.06,
			"premium":  0.16,
			"netapp":   0.30,
		},
		ManagerPerUserMonthly: 4.0,
		AutoScaling: AutoScalingRates{
			ByUserScale: map[models.Band]float64{
				models.BandLow:    0.25,
				models.BandMedium: 0.35,
				models.BandHigh:   0.45,
			},
			UseCasePenalty: map[models.Band]float64{
				models.BandLow:    0,
				models.BandMedium: 0.05,
				models.BandHigh:   0.10,
			},
			MaxPercent: 0.60,
		},
		Implementation: ImplementationRates{
			ProjectManagerRate:     200,
			ArchitectRate:          250,
			EngineerRate:           200,
			ProjectManagementHours: 200,
			ArchitectHours:         240,
			EngineerHours:          600,
			BaseDurationWeeks:      16,
			ComplexityMultipliers: map[models.Band]float64{
				models.BandLow:    0.75,
				models.BandMedium: 1.0,
				models.BandHigh:   1.5,
			},
		},
	}
}
