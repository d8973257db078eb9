package costmodel

import (
	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/numeric"
)

// CalculateTCO compares cumulative cost over the horizon. The future side
// carries the one-off implementation cost. Nil when either state is unknown.
func CalculateTCO(current models.CurrentState, future models.FutureState, impl models.ImplementationCost, horizonYears int) *models.TCO {
	if !current.Available || !future.Available || horizonYears <= 0 {
		return nil
	}
	years := float64(horizonYears)
	tco := &models.TCO{
		HorizonYears:  horizonYears,
		AnnualCurrent: current.AnnualTotal,
		AnnualFuture:  future.Totals.AnnualNet,
		AnnualSavings: current.AnnualTotal - future.Totals.AnnualNet,
		CurrentTotal:  current.AnnualTotal * years,
		FutureTotal:   future.Totals.AnnualNet*years + impl.TotalCost,
	}
	tco.SavingsTotal = tco.CurrentTotal - tco.FutureTotal
	if pct := numeric.Divide(tco.SavingsTotal, tco.CurrentTotal); pct != nil && tco.CurrentTotal > 0 {
		v := *pct * 100
		tco.SavingsPercent = &v
	}
	return tco
}

// AnnualValue is current annual cost less future net annual cost; nil unless
// both states are known.
func AnnualValue(current models.CurrentState, future models.FutureState) *float64 {
	if !current.Available || !future.Available {
		return nil
	}
	v := current.AnnualTotal - future.Totals.AnnualNet
	return &v
}
