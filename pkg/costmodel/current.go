package costmodel

import (
	"math"
	"strings"

	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/numeric"
	"github.com/opscart/avd-business-case/pkg/pricing"
)

// Category shares applied when only a total current annual cost is known
const (
	infrastructureShare = 0.40
	licensingShare      = 0.35
	operationsShare     = 0.25
)

const (
	labelInfrastructure = "Infrastructure"
	labelLicensing      = "Software Licenses"
	labelOperations     = "Operations"
)

// CalculateCurrentState prices the customer's existing platform. A known
// annual cost overrides the rate card and is split across categories.
func CalculateCurrentState(p *models.CustomerProfile, card *pricing.RateCard) models.CurrentState {
	state := models.CurrentState{}
	if p == nil {
		return state
	}
	state.Platform = p.CurrentPlatform
	state.UserCount = p.TotalUsers

	if p.CurrentAnnualCost != nil && numeric.IsFinite(*p.CurrentAnnualCost) && *p.CurrentAnnualCost >= 0 {
		state.Lines = splitAnnualCost(*p.CurrentAnnualCost)
	} else {
		rates, ok := card.Platform(strings.ToLower(p.CurrentPlatform))
		state.Lines = []models.CostLine{
			infrastructureLine(p, rates, ok),
			perUserLine(models.CategoryLicensing, labelLicensing, p.TotalUsers, rates.LicensePerUserMonthly, ok),
			perUserLine(models.CategoryOperations, labelOperations, p.TotalUsers, rates.OpsPerUserMonthly, ok),
		}
	}

	for _, line := range state.Lines {
		if line.Absent {
			continue
		}
		state.Available = true
		state.MonthlyTotal += line.MonthlyCost
		state.AnnualTotal += line.AnnualCost
	}
	if state.Available {
		state.PerUserMonthly = numeric.Divide(state.MonthlyTotal, float64(p.TotalUsers))
	}
	return state
}

func infrastructureLine(p *models.CustomerProfile, rates pricing.PlatformRates, priced bool) models.CostLine {
	if !priced {
		return models.AbsentCostLine(models.CategoryInfrastructure, labelInfrastructure)
	}
	if p.CurrentServerCount != nil && *p.CurrentServerCount >= 0 {
		return pricedLine(models.CategoryInfrastructure, labelInfrastructure, float64(*p.CurrentServerCount)*rates.ServerMonthly)
	}
	if rates.UsersPerServer <= 0 || p.TotalUsers <= 0 {
		return models.AbsentCostLine(models.CategoryInfrastructure, labelInfrastructure)
	}
	servers := math.Ceil(float64(p.TotalUsers) / float64(rates.UsersPerServer))
	return estimated(pricedLine(models.CategoryInfrastructure, labelInfrastructure, servers*rates.ServerMonthly))
}

func perUserLine(category, label string, users int, rate float64, priced bool) models.CostLine {
	if !priced || users <= 0 {
		return models.AbsentCostLine(category, label)
	}
	return pricedLine(category, label, float64(users)*rate)
}

// splitAnnualCost divides a known annual total across categories. Shares are
// rounded on the annual amount so the lines add back to the entered total.
func splitAnnualCost(annual float64) []models.CostLine {
	infra := numeric.RoundMoney(annual * infrastructureShare)
	licensing := numeric.RoundMoney(annual * licensingShare)
	operations := numeric.RoundMoney(annual - infra - licensing)
	return []models.CostLine{
		estimated(models.NewAnnualCostLine(models.CategoryInfrastructure, labelInfrastructure, infra)),
		estimated(models.NewAnnualCostLine(models.CategoryLicensing, labelLicensing, licensing)),
		estimated(models.NewAnnualCostLine(models.CategoryOperations, labelOperations, operations)),
	}
}

// pricedLine rounds a monthly amount to cents. A non-finite amount means a
// unit cost was unusable, so the line is absent rather than zero.
func pricedLine(category, label string, monthly float64) models.CostLine {
	if !numeric.IsFinite(monthly) {
		return models.AbsentCostLine(category, label)
	}
	return models.NewCostLine(category, label, numeric.RoundMoney(monthly))
}

func estimated(line models.CostLine) models.CostLine {
	line.Estimated = true
	return line
}
