package roi

import (
	"math"
	"testing"

	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/numeric"
)

func TestZeroImplementationCostIsNotApplicable(t *testing.T) {
	values := []*float64{nil, numeric.Ptr(0.0), numeric.Ptr(150000.0), numeric.Ptr(-5000.0)}

	for _, v := range values {
		result := Calculate(Input{AnnualValue: v, ImplementationCost: 0})

		if result.PaybackMonths != nil {
			t.Errorf("value=%v: expected nil payback, got %f", v, *result.PaybackMonths)
		}
		for name, roi := range map[string]*float64{"year1": result.Year1, "year3": result.Year3, "year5": result.Year5} {
			if roi != nil {
				t.Errorf("value=%v: expected nil %s, got %f", v, name, *roi)
			}
		}
	}
}

func TestROIScenario(t *testing.T) {
	// 500k current, 300k future net, 220k implementation
	result := Calculate(Input{
		AnnualValue:        numeric.Ptr(500000.0 - 300000.0),
		ImplementationCost: 220000,
	})

	if result.TotalAnnualValue == nil || *result.TotalAnnualValue != 200000 {
		t.Fatalf("Expected annual value 200000, got %v", result.TotalAnnualValue)
	}
	if result.Year1 == nil || math.Abs(*result.Year1-(-9.09)) > 0.01 {
		t.Errorf("Expected year1 ROI -9.09, got %v", result.Year1)
	}
	if result.Year3 == nil || math.Abs(*result.Year3-172.73) > 0.01 {
		t.Errorf("Expected year3 ROI 172.73, got %v", result.Year3)
	}
	if result.Year5 == nil || math.Abs(*result.Year5-354.55) > 0.01 {
		t.Errorf("Expected year5 ROI 354.55, got %v", result.Year5)
	}
	if result.PaybackMonths == nil || math.Abs(*result.PaybackMonths-13.2) > 0.001 {
		t.Errorf("Expected payback 13.2 months, got %v", result.PaybackMonths)
	}
}

func TestNegativeValueHasROIButNoPayback(t *testing.T) {
	result := Calculate(Input{AnnualValue: numeric.Ptr(-10000.0), ImplementationCost: 100000})

	if result.PaybackMonths != nil {
		t.Error("Expected nil payback for negative value")
	}
	if result.Year1 == nil || math.Abs(*result.Year1-(-110)) > 0.001 {
		t.Errorf("Expected year1 ROI -110, got %v", result.Year1)
	}
}

func TestMissingValueLeavesEverythingNil(t *testing.T) {
	result := Calculate(Input{ImplementationCost: 220000})

	if result.TotalAnnualValue != nil || result.NPV != nil || result.Year1 != nil || result.PaybackMonths != nil {
		t.Errorf("Expected all nil, got %+v", result)
	}
	if result.ImplementationCost != 220000 {
		t.Errorf("Expected cost echoed, got %f", result.ImplementationCost)
	}
}

func TestNonFiniteValueIsMissing(t *testing.T) {
	result := Calculate(Input{AnnualValue: numeric.Ptr(math.NaN()), ImplementationCost: 1000})
	if result.TotalAnnualValue != nil || result.Year1 != nil {
		t.Error("NaN annual value must not propagate")
	}
}

func TestNPVConventions(t *testing.T) {
	tests := []struct {
		name       string
		convention models.NPVConvention
		rate       float64
		expected   float64
	}{
		// -100 + 110/1.1
		{"annual one year", models.NPVAnnual, 0.10, 0},
		{"zero rate", models.NPVAnnual, 0, 10},
		// -100 + 110*e^-0.1
		{"continuous one year", models.NPVContinuous, 0.10, -0.4679},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			npv := NPV(110, 100, 1, tt.rate, tt.convention)
			if npv == nil {
				t.Fatal("Expected NPV, got nil")
			}
			if math.Abs(*npv-tt.expected) > 0.001 {
				t.Errorf("Expected %.4f, got %.4f", tt.expected, *npv)
			}
		})
	}
}

func TestNPVRejectsNegativeRate(t *testing.T) {
	if NPV(100, 10, 3, -0.5, models.NPVAnnual) != nil {
		t.Error("Expected nil NPV for a negative rate")
	}
	if NPV(100, 10, 3, math.Inf(1), models.NPVAnnual) != nil {
		t.Error("Expected nil NPV for an infinite rate")
	}
}

func TestCalculateDefaults(t *testing.T) {
	result := Calculate(Input{AnnualValue: numeric.Ptr(100.0), ImplementationCost: 50, DiscountRate: 0.08})

	if result.HorizonYears != DefaultHorizonYears {
		t.Errorf("Expected horizon %d, got %d", DefaultHorizonYears, result.HorizonYears)
	}
	if result.Convention != models.NPVAnnual {
		t.Errorf("Expected annual convention, got %s", result.Convention)
	}
	// 100 * annuity factor(8%, 5y) - 50
	if result.NPV == nil || math.Abs(*result.NPV-349.27) > 0.01 {
		t.Errorf("Expected NPV 349.27, got %v", result.NPV)
	}
}

func TestParseConvention(t *testing.T) {
	if c, err := ParseConvention(""); err != nil || c != models.NPVAnnual {
		t.Errorf("Expected annual default, got %s, %v", c, err)
	}
	if c, err := ParseConvention("continuous"); err != nil || c != models.NPVContinuous {
		t.Errorf("Expected continuous, got %s, %v", c, err)
	}
	if _, err := ParseConvention("monthly"); err == nil {
		t.Error("Expected error for unknown convention")
	}
}
