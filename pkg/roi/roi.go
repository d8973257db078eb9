package roi

import (
	"fmt"
	"math"

	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/numeric"
)

const (
	DefaultHorizonYears = 5
	DefaultDiscountRate = 0.08
)

// Input is everything the calculator needs. AnnualValue is nil when the
// current or future cost is unknown.
type Input struct {
	AnnualValue        *float64
	ImplementationCost float64
	HorizonYears       int
	DiscountRate       float64
	Convention         models.NPVConvention
}

// ParseConvention accepts "annual" or "continuous"; empty means annual
func ParseConvention(s string) (models.NPVConvention, error) {
	switch models.NPVConvention(s) {
	case "", models.NPVAnnual:
		return models.NPVAnnual, nil
	case models.NPVContinuous:
		return models.NPVContinuous, nil
	default:
		return "", fmt.Errorf("unknown NPV convention %q (want annual or continuous)", s)
	}
}

// Calculate derives payback, ROI and NPV. Undefined results are nil, never
// NaN or Inf.
func Calculate(in Input) models.ROIResult {
	horizon := in.HorizonYears
	if horizon <= 0 {
		horizon = DefaultHorizonYears
	}
	convention := in.Convention
	if convention == "" {
		convention = models.NPVAnnual
	}
	cost := numeric.NonNegative(in.ImplementationCost)

	result := models.ROIResult{
		ImplementationCost: cost,
		HorizonYears:       horizon,
		DiscountRate:       in.DiscountRate,
		Convention:         convention,
	}

	if in.AnnualValue == nil || !numeric.IsFinite(*in.AnnualValue) {
		return result
	}
	value := *in.AnnualValue
	result.TotalAnnualValue = &value

	if value > 0 && cost > 0 {
		result.PaybackMonths = numeric.Divide(cost, value/12)
	}
	if cost > 0 {
		result.Year1 = roiAt(value, cost, 1)
		result.Year3 = roiAt(value, cost, 3)
		result.Year5 = roiAt(value, cost, 5)
	}
	result.NPV = NPV(value, cost, horizon, in.DiscountRate, convention)
	return result
}

func roiAt(value, cost float64, years int) *float64 {
	ratio := numeric.Divide(value*float64(years)-cost, cost)
	if ratio == nil {
		return nil
	}
	pct := *ratio * 100
	return &pct
}

// NPV discounts a constant yearly value over the horizon, less the
// up-front cost at t=0. Nil for a negative or non-finite rate.
func NPV(annualValue, cost float64, years int, rate float64, convention models.NPVConvention) *float64 {
	if !numeric.IsFinite(rate) || rate < 0 {
		return nil
	}
	total := -cost
	for t := 1; t <= years; t++ {
		total += annualValue * DiscountFactor(rate, t, convention)
	}
	if !numeric.IsFinite(total) {
		return nil
	}
	return &total
}

// DiscountFactor is 1/(1+r)^t for annual and e^(-rt) for continuous
func DiscountFactor(rate float64, year int, convention models.NPVConvention) float64 {
	if convention == models.NPVContinuous {
		return math.Exp(-rate * float64(year))
	}
	return 1 / math.Pow(1+rate, float64(year))
}
