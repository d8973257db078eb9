package models

// NPVConvention selects how yearly value is discounted
type NPVConvention string

const (
	// NPVAnnual discounts at the end of each year: v / (1+r)^t
	NPVAnnual NPVConvention = "annual"
	// NPVContinuous discounts continuously: v * e^(-r*t)
	NPVContinuous NPVConvention = "continuous"
)

// ROIResult holds payback, ROI and NPV. Nil fields mean "not applicable".
type ROIResult struct {
	TotalAnnualValue   *float64
	ImplementationCost float64

	PaybackMonths *float64
	Year1         *float64
	Year3         *float64
	Year5         *float64

	NPV          *float64
	HorizonYears int
	DiscountRate float64
	Convention   NPVConvention
}
