package timeline

import (
	"math"

	"github.com/opscart/avd-business-case/pkg/drivers"
	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/numeric"
)

// Calculate derives phase durations, the sequential and parallelized totals
// and the go-live validity margin from resolved driver bands.
func Calculate(res drivers.Resolution, catalog []PhaseSpec, table *WeightTable) models.Timeline {
	if table == nil {
		table = DefaultWeightTable()
	}

	scores := make(map[models.DriverID]float64, len(models.AllDrivers))
	for _, id := range models.AllDrivers {
		if dw, ok := table.Lookup(id, res.Band(id)); ok {
			scores[id] = numeric.NonNegative(dw.Score * dw.Weight)
		}
	}

	tl := models.Timeline{
		Phases: make([]models.Phase, 0, len(catalog)),
		Audit: models.TimelineAudit{
			Bands:              res.Bands,
			Defaulted:          res.Defaulted,
			DriverScores:       scores,
			WeightTableVersion: table.Version,
		},
	}

	for _, spec := range catalog {
		weeks := PhaseWeeks(spec, scores, table.ScoreDivisor)
		tl.Phases = append(tl.Phases, models.Phase{Key: spec.Key, Label: spec.Label, Weeks: weeks})
		tl.SequentialWeeks += weeks
	}

	tl.ParallelizationFactor = Factor(res, table)
	floor := table.MinimumWeeks
	if floor > tl.SequentialWeeks {
		floor = tl.SequentialWeeks
	}
	tl.ParallelizedWeeks = Parallelize(tl.SequentialWeeks, tl.ParallelizationFactor, floor)
	tl.CreditWeeks = tl.SequentialWeeks - tl.ParallelizedWeeks

	if res.WeeksToGoLive != nil {
		weeks := *res.WeeksToGoLive
		validity := weeks - tl.ParallelizedWeeks
		tl.WeeksToGoLive = &weeks
		tl.Validity = &validity
	}
	return tl
}

// PhaseWeeks is round(base + sum(score*weight) / divisor), at least MinWeeks
func PhaseWeeks(spec PhaseSpec, scores map[models.DriverID]float64, divisor float64) int {
	var sum float64
	for _, id := range spec.Drivers {
		sum += scores[id]
	}
	raw := numeric.Divide(sum, divisor)
	weeks := int(math.Round(numeric.NonNegative(spec.BaseWeeks + numeric.Number(raw, 0))))
	if weeks < spec.MinWeeks {
		weeks = spec.MinWeeks
	}
	return weeks
}

// Factor is MaxParallelization scaled by the weight-averaged overlap of the
// resolved bands. Drivers with zero weight do not pull the average.
func Factor(res drivers.Resolution, table *WeightTable) float64 {
	var weighted, total float64
	for _, id := range models.AllDrivers {
		dw, ok := table.Lookup(id, res.Band(id))
		if !ok || dw.Weight <= 0 {
			continue
		}
		weighted += dw.Weight * numeric.Clamp(dw.Overlap, 0, 1)
		total += dw.Weight
	}
	mean := numeric.Number(numeric.Divide(weighted, total), 0)
	return numeric.Clamp(table.MaxParallelization*mean, 0, 1)
}

// Parallelize discounts a sequential duration by factor, never going below
// floor nor above the sequential duration.
func Parallelize(sequential int, factor float64, floor int) int {
	if sequential <= 0 {
		return 0
	}
	f := numeric.Clamp(factor, 0, 1)
	weeks := int(math.Round(float64(sequential) * (1 - f)))
	if weeks < floor {
		weeks = floor
	}
	if weeks > sequential {
		weeks = sequential
	}
	return weeks
}
