package engine

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/opscart/avd-business-case/pkg/costmodel"
	"github.com/opscart/avd-business-case/pkg/drivers"
	"github.com/opscart/avd-business-case/pkg/metrics"
	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/pricing"
	"github.com/opscart/avd-business-case/pkg/recommender"
	"github.com/opscart/avd-business-case/pkg/roi"
	"github.com/opscart/avd-business-case/pkg/timeline"
)

// Options configure an Engine. Zero values fall back to defaults.
type Options struct {
	RateCard     *pricing.RateCard
	Weights      *timeline.WeightTable
	Catalog      []timeline.PhaseSpec
	HorizonYears int
	DiscountRate float64
	Convention   models.NPVConvention
	Now          func() time.Time
	Metrics      *metrics.Recorder
	Logger       *slog.Logger
}

// Engine computes business cases. It holds only read-only configuration,
// so one Engine may serve concurrent Compute calls.
type Engine struct {
	opts        Options
	recommender *recommender.Recommender
}

func New(opts Options) *Engine {
	if opts.RateCard == nil {
		opts.RateCard = pricing.DefaultRateCard()
	}
	if opts.Weights == nil {
		opts.Weights = timeline.DefaultWeightTable()
	}
	if opts.Catalog == nil {
		opts.Catalog = timeline.DefaultCatalog()
	}
	if opts.HorizonYears <= 0 {
		opts.HorizonYears = roi.DefaultHorizonYears
	}
	if opts.Convention == "" {
		opts.Convention = models.NPVAnnual
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Engine{opts: opts, recommender: recommender.New()}
}

// Compute derives the full business case for a profile. Only a missing or
// structurally invalid profile is an error; missing optional inputs
// produce absent values in the result.
func (e *Engine) Compute(p *models.CustomerProfile) (*models.BusinessCase, error) {
	start := time.Now()
	if err := Validate(p); err != nil {
		e.opts.Metrics.ComputeFailed()
		return nil, err
	}

	now := e.opts.Now()
	bands := drivers.Resolve(p, now)

	current := costmodel.CalculateCurrentState(p, e.opts.RateCard)
	future := costmodel.CalculateFutureState(p, e.opts.RateCard, bands)
	impl := costmodel.EstimateImplementationCost(p, e.opts.RateCard, costmodel.OverallComplexity(bands.Bands))
	tl := timeline.Calculate(bands, e.opts.Catalog, e.opts.Weights)

	bc := &models.BusinessCase{
		ID:             uuid.New().String(),
		Profile:        p,
		Implementation: impl,
		TCO:            costmodel.CalculateTCO(current, future, impl, e.opts.HorizonYears),
		ROI: roi.Calculate(roi.Input{
			AnnualValue:        costmodel.AnnualValue(current, future),
			ImplementationCost: impl.TotalCost,
			HorizonYears:       e.opts.HorizonYears,
			DiscountRate:       e.opts.DiscountRate,
			Convention:         e.opts.Convention,
		}),
		Timeline:     &tl,
		CalculatedAt: now,
	}
	if current.Available {
		bc.CurrentState = &current
	}
	if future.Available {
		bc.FutureState = &future
	}
	bc.Recommendations = e.recommender.Analyze(bc)

	e.opts.Metrics.ObserveCompute(time.Since(start))
	e.opts.Logger.Debug("business case computed",
		"id", bc.ID,
		"company", p.CompanyName,
		"users", p.TotalUsers,
		"sequential_weeks", tl.SequentialWeeks,
		"parallelized_weeks", tl.ParallelizedWeeks)
	return bc, nil
}

// Validate rejects profiles that cannot produce a report
func Validate(p *models.CustomerProfile) error {
	if p == nil {
		return ErrNoProfile
	}
	if p.TotalUsers <= 0 {
		return &ProfileError{Field: "total_users", Reason: "must be a positive integer"}
	}
	counts := []struct {
		field string
		value int
	}{
		{"location_count", p.LocationCount},
		{"use_case_count", p.UseCaseCount},
		{"app_count", p.AppCount},
	}
	for _, c := range counts {
		if c.value < 0 {
			return &ProfileError{Field: c.field, Reason: "must not be negative"}
		}
	}
	if p.CurrentServerCount != nil && *p.CurrentServerCount < 0 {
		return &ProfileError{Field: "current_server_count", Reason: "must not be negative"}
	}
	if p.PlannedStartDate != nil && p.TargetGoLiveDate != nil && p.PlannedStartDate.After(*p.TargetGoLiveDate) {
		return &ProfileError{Field: "target_go_live_date", Reason: "must not be before planned_start_date"}
	}
	for id := range p.Drivers {
		if !id.Valid() {
			return &ProfileError{Field: "drivers", Reason: "unknown driver " + string(id)}
		}
	}
	return nil
}
