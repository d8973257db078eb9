package costmodel

import (
	"math"

	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/numeric"
	"github.com/opscart/avd-business-case/pkg/pricing"
)

// EstimateImplementationCost prices the services engagement, scaled by the
// overall complexity band. A profile override replaces the computed total.
func EstimateImplementationCost(p *models.CustomerProfile, card *pricing.RateCard, complexity models.Band) models.ImplementationCost {
	if card == nil {
		card = pricing.DefaultRateCard()
	}
	rates := card.Implementation

	multiplier, ok := rates.ComplexityMultipliers[complexity]
	if !ok || !numeric.IsFinite(multiplier) || multiplier < 0 {
		multiplier = 1
	}

	est := models.ImplementationCost{
		ProjectManagementHours: math.Round(rates.ProjectManagementHours * multiplier),
		ArchitectHours:         math.Round(rates.ArchitectHours * multiplier),
		EngineerHours:          math.Round(rates.EngineerHours * multiplier),
		DurationWeeks:          int(math.Round(float64(rates.BaseDurationWeeks) * multiplier)),
	}
	est.TotalCost = numeric.RoundMoney(est.ProjectManagementHours*rates.ProjectManagerRate +
		est.ArchitectHours*rates.ArchitectRate +
		est.EngineerHours*rates.EngineerRate)

	if p != nil && p.ImplementationCost != nil && numeric.IsFinite(*p.ImplementationCost) {
		est.TotalCost = numeric.NonNegative(*p.ImplementationCost)
		est.Overridden = true
	}
	return est
}

// OverallComplexity reduces the driver bands to one band: high if a third or
// more drivers are high, low if two thirds or more are low, else medium.
func OverallComplexity(bands map[models.DriverID]models.Band) models.Band {
	if len(bands) == 0 {
		return models.BandMedium
	}
	var low, high int
	for _, b := range bands {
		switch b {
		case models.BandLow:
			low++
		case models.BandHigh:
			high++
		}
	}
	n := float64(len(bands))
	switch {
	case float64(high) >= n/3:
		return models.BandHigh
	case float64(low) >= 2*n/3:
		return models.BandLow
	default:
		return models.BandMedium
	}
}
