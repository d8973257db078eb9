package costmodel

import (
	"math"

	"github.com/opscart/avd-business-case/pkg/drivers"
	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/numeric"
	"github.com/opscart/avd-business-case/pkg/pricing"
)

const (
	labelCompute        = "Compute (Session Hosts)"
	labelStorage        = "Storage (Profiles)"
	labelManagerLicense = "Nerdio Manager Licensing"

	defaultStorageType = "premium"
)

// CalculateFutureState sizes and prices the proposed AVD deployment.
// Auto-scaling savings apply to compute and storage only, so savings never
// exceed gross cost.
func CalculateFutureState(p *models.CustomerProfile, card *pricing.RateCard, bands drivers.Resolution) models.FutureState {
	state := models.FutureState{}
	if p == nil {
		return state
	}

	profile := p.UserProfile
	if profile == "" {
		profile = models.UserProfileMedium
	}
	sizing, sized := card.Sizing(profile)

	state.VMSKU = sizing.SKU
	if p.VMSKU != "" {
		state.VMSKU = p.VMSKU
	}
	state.UsersPerVM = sizing.UsersPerVM
	state.StorageType = p.StorageType
	if state.StorageType == "" {
		state.StorageType = defaultStorageType
	}

	state.Compute = computeLine(p, card, &state, sized)
	state.Storage = storageLine(p, card, &state, sizing, sized)
	state.Licensing = licensingLine(p, card)

	infrastructure := state.Compute.MonthlyCost + state.Storage.MonthlyCost
	pct := AutoScalingPercent(card, bands)
	monthlySavings := numeric.RoundMoney(numeric.Clamp(infrastructure*pct, 0, infrastructure))
	state.AutoScaling = models.AutoScaling{
		SavingsPercent: pct,
		MonthlySavings: monthlySavings,
		AnnualSavings:  monthlySavings * 12,
	}

	for _, line := range state.Lines() {
		if line.Absent {
			continue
		}
		state.Available = true
		state.Totals.MonthlyGross += line.MonthlyCost
	}
	state.Totals.AnnualGross = state.Totals.MonthlyGross * 12
	state.Totals.MonthlyNet = state.Totals.MonthlyGross - state.AutoScaling.MonthlySavings
	state.Totals.AnnualNet = state.Totals.MonthlyNet * 12
	if state.Available {
		state.Totals.PerUserMonthly = numeric.Divide(state.Totals.MonthlyNet, float64(p.TotalUsers))
	}
	return state
}

func computeLine(p *models.CustomerProfile, card *pricing.RateCard, state *models.FutureState, sized bool) models.CostLine {
	sku, priced := card.SKU(state.VMSKU)
	if !sized || !priced || state.UsersPerVM <= 0 || p.TotalUsers <= 0 {
		return models.AbsentCostLine(models.CategoryCompute, labelCompute)
	}
	state.VMCount = int(math.Ceil(float64(p.TotalUsers) / float64(state.UsersPerVM)))
	monthly := float64(state.VMCount) * sku.HourlyRate * pricing.HoursPerMonth
	return pricedLine(models.CategoryCompute, labelCompute, monthly)
}

func storageLine(p *models.CustomerProfile, card *pricing.RateCard, state *models.FutureState, sizing pricing.ProfileSizing, sized bool) models.CostLine {
	rate, priced := card.StorageRate(state.StorageType)
	perUser := sizing.StoragePerUserGB
	if p.StoragePerUserGB != nil {
		perUser = numeric.NonNegative(numeric.Finite(*p.StoragePerUserGB, 0))
	} else if !sized {
		return models.AbsentCostLine(models.CategoryStorage, labelStorage)
	}
	if !priced || p.TotalUsers <= 0 {
		return models.AbsentCostLine(models.CategoryStorage, labelStorage)
	}
	state.StorageTotalGB = float64(p.TotalUsers) * perUser
	return pricedLine(models.CategoryStorage, labelStorage, state.StorageTotalGB*rate)
}

func licensingLine(p *models.CustomerProfile, card *pricing.RateCard) models.CostLine {
	include := p.IncludeManager == nil || *p.IncludeManager
	if !include {
		return models.NewCostLine(models.CategoryLicensing, labelManagerLicense, 0)
	}
	if card == nil || p.TotalUsers <= 0 {
		return models.AbsentCostLine(models.CategoryLicensing, labelManagerLicense)
	}
	return pricedLine(models.CategoryLicensing, labelManagerLicense, float64(p.TotalUsers)*card.ManagerPerUserMonthly)
}

// AutoScalingPercent bands savings by user scale (D6), less a penalty for
// use-case diversity (D7), clamped to the card's maximum.
func AutoScalingPercent(card *pricing.RateCard, bands drivers.Resolution) float64 {
	if card == nil {
		return 0
	}
	rates := card.AutoScaling
	pct := rates.ByUserScale[bands.Band(models.DriverUserScale)] -
		rates.UseCasePenalty[bands.Band(models.DriverUseCases)]
	return numeric.Clamp(numeric.Finite(pct, 0), 0, rates.MaxPercent)
}
