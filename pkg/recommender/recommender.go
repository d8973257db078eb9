package recommender

import (
	"fmt"

	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/numeric"
)

// Recommendation text shown on the timeline audit
const (
	TimelineAchievable = "Timeline is achievable with dedicated team"
	TimelineTight      = "Timeline is tight - consider professional services or adjusting go-live date"
	TimelineUnknown    = "Set a target go-live date to assess timeline feasibility"
)

type Recommender struct {
	paybackTargetMonths float64
	defaultedThreshold  int
	highValueAnnual     float64
}

func New() *Recommender {
	return &Recommender{
		paybackTargetMonths: 24,
		defaultedThreshold:  5,
		highValueAnnual:     250000,
	}
}

// Analyze reviews a computed business case and returns findings for the
// timeline, the financials and the completeness of the inputs.
func (r *Recommender) Analyze(bc *models.BusinessCase) []models.Recommendation {
	if bc == nil {
		return nil
	}

	recs := []models.Recommendation{
		r.timeline(bc.Timeline),
		r.financial(bc.ROI),
	}
	if rec := r.inputs(bc); rec != nil {
		recs = append(recs, *rec)
	}
	return recs
}

func (r *Recommender) timeline(tl *models.Timeline) models.Recommendation {
	feasible := tl.Feasible()
	if feasible == nil {
		return models.Recommendation{
			Type:   models.RecommendationGatherData,
			Area:   "timeline",
			Reason: TimelineUnknown,
			Impact: "NONE",
			Risk:   "MEDIUM",
		}
	}

	if *feasible {
		return models.Recommendation{
			Type:   models.RecommendationProceed,
			Area:   "timeline",
			Reason: TimelineAchievable,
			Impact: "LOW",
			Risk:   "LOW",
		}
	}

	rec := models.Recommendation{
		Type:   models.RecommendationEngageServices,
		Area:   "timeline",
		Reason: TimelineTight,
		Risk:   "HIGH",
	}
	shortfall := -*tl.Validity
	if shortfall > 8 {
		rec.Impact = "HIGH"
	} else if shortfall > 2 {
		rec.Impact = "MEDIUM"
	} else {
		rec.Impact = "LOW"
	}
	return rec
}

func (r *Recommender) financial(roi models.ROIResult) models.Recommendation {
	if roi.TotalAnnualValue == nil {
		return models.Recommendation{
			Type:   models.RecommendationGatherData,
			Area:   "financial",
			Reason: "Current or future cost inputs are missing; annual savings cannot be quantified",
			Impact: "NONE",
			Risk:   "MEDIUM",
		}
	}

	value := *roi.TotalAnnualValue
	if value <= 0 {
		return models.Recommendation{
			Type:   models.RecommendationReviewCosts,
			Area:   "financial",
			Reason: fmt.Sprintf("Future annual cost exceeds current cost by %s", numeric.FormatCurrency(numeric.Ptr(-value))),
			Impact: "HIGH",
			Risk:   "HIGH",
		}
	}

	if roi.PaybackMonths != nil && *roi.PaybackMonths > r.paybackTargetMonths {
		return models.Recommendation{
			Type: models.RecommendationReviewCosts,
			Area: "financial",
			Reason: fmt.Sprintf("Payback of %s exceeds the %.0f-month target",
				numeric.FormatMonths(roi.PaybackMonths), r.paybackTargetMonths),
			Impact: "MEDIUM",
			Risk:   "MEDIUM",
		}
	}

	rec := models.Recommendation{
		Type:   models.RecommendationProceed,
		Area:   "financial",
		Reason: fmt.Sprintf("Saves %s per year", numeric.FormatCurrency(&value)),
		Risk:   "LOW",
	}
	if roi.PaybackMonths != nil {
		rec.Reason += fmt.Sprintf(", payback in %s", numeric.FormatMonths(roi.PaybackMonths))
	}
	if value > r.highValueAnnual {
		rec.Impact = "HIGH"
	} else {
		rec.Impact = "MEDIUM"
	}
	return rec
}

func (r *Recommender) inputs(bc *models.BusinessCase) *models.Recommendation {
	if bc.Timeline == nil {
		return nil
	}
	defaulted := 0
	for _, d := range bc.Timeline.Audit.Defaulted {
		if d {
			defaulted++
		}
	}
	if defaulted < r.defaultedThreshold {
		return nil
	}
	return &models.Recommendation{
		Type:   models.RecommendationGatherData,
		Area:   "inputs",
		Reason: fmt.Sprintf("%d of %d complexity drivers were defaulted; confirm them with the customer", defaulted, len(models.AllDrivers)),
		Impact: "MEDIUM",
		Risk:   "MEDIUM",
	}
}

// String renders a recommendation for terminal output
func String(rec models.Recommendation) string {
	if rec.Type == models.RecommendationProceed {
		return fmt.Sprintf("[%s] %s: %s", rec.Impact, rec.Area, rec.Reason)
	}
	return fmt.Sprintf("[%s] %s: %s\n  Action: %s\n  Risk: %s", rec.Impact, rec.Area, rec.Reason, rec.Type, rec.Risk)
}
