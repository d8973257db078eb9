package recommender

import (
	"strings"
	"testing"

	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/numeric"
)

func TestNew(t *testing.T) {
	rec := New()

	if rec == nil {
		t.Fatal("New() returned nil")
	}

	if rec.paybackTargetMonths != 24 {
		t.Errorf("Expected default payback target 24, got %.1f", rec.paybackTargetMonths)
	}
}

func TestTimelineRecommendations(t *testing.T) {
	tests := []struct {
		name     string
		validity *int
		expected models.RecommendationType
		reason   string
		impact   string
	}{
		{"no go-live", nil, models.RecommendationGatherData, TimelineUnknown, "NONE"},
		{"buffer", numeric.Ptr(4), models.RecommendationProceed, TimelineAchievable, "LOW"},
		{"exact", numeric.Ptr(0), models.RecommendationProceed, TimelineAchievable, "LOW"},
		{"small shortfall", numeric.Ptr(-2), models.RecommendationEngageServices, TimelineTight, "LOW"},
		{"shortfall", numeric.Ptr(-8), models.RecommendationEngageServices, TimelineTight, "MEDIUM"},
		{"large shortfall", numeric.Ptr(-12), models.RecommendationEngageServices, TimelineTight, "HIGH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := New().timeline(&models.Timeline{Validity: tt.validity})

			if rec.Type != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, rec.Type)
			}
			if rec.Reason != tt.reason {
				t.Errorf("Expected reason %q, got %q", tt.reason, rec.Reason)
			}
			if rec.Impact != tt.impact {
				t.Errorf("Expected impact %s, got %s", tt.impact, rec.Impact)
			}
		})
	}
}

func TestFinancialRecommendations(t *testing.T) {
	tests := []struct {
		name     string
		roi      models.ROIResult
		expected models.RecommendationType
		contains string
	}{
		{"missing value", models.ROIResult{}, models.RecommendationGatherData, "cannot be quantified"},
		{"negative value", models.ROIResult{TotalAnnualValue: numeric.Ptr(-20000.0)}, models.RecommendationReviewCosts, "$20,000"},
		{"slow payback", models.ROIResult{TotalAnnualValue: numeric.Ptr(50000.0), PaybackMonths: numeric.Ptr(52.8)}, models.RecommendationReviewCosts, "52.8 months"},
		{"good payback", models.ROIResult{TotalAnnualValue: numeric.Ptr(200000.0), PaybackMonths: numeric.Ptr(13.2)}, models.RecommendationProceed, "payback in 13.2 months"},
		{"zero cost", models.ROIResult{TotalAnnualValue: numeric.Ptr(200000.0)}, models.RecommendationProceed, "Saves $200,000 per year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := New().financial(tt.roi)

			if rec.Type != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, rec.Type)
			}
			if !strings.Contains(rec.Reason, tt.contains) {
				t.Errorf("Expected reason to contain %q, got %q", tt.contains, rec.Reason)
			}
		})
	}
}

func TestDefaultedDriversRecommendation(t *testing.T) {
	defaulted := make(map[models.DriverID]bool)
	for _, id := range models.AllDrivers[:6] {
		defaulted[id] = true
	}
	bc := &models.BusinessCase{
		Timeline: &models.Timeline{Audit: models.TimelineAudit{Defaulted: defaulted}},
	}

	recs := New().Analyze(bc)

	if len(recs) != 3 {
		t.Fatalf("Expected 3 recommendations, got %d", len(recs))
	}
	last := recs[2]
	if last.Area != "inputs" {
		t.Errorf("Expected inputs recommendation, got %s", last.Area)
	}
	if !strings.Contains(last.Reason, "6 of 14") {
		t.Errorf("Expected reason to count defaulted drivers, got %q", last.Reason)
	}
}

func TestAnalyzeNil(t *testing.T) {
	if recs := New().Analyze(nil); recs != nil {
		t.Errorf("Expected nil, got %v", recs)
	}
}

func TestString(t *testing.T) {
	proceed := models.Recommendation{Type: models.RecommendationProceed, Area: "timeline", Reason: TimelineAchievable, Impact: "LOW"}
	if got := String(proceed); got != "[LOW] timeline: "+TimelineAchievable {
		t.Errorf("Unexpected string: %s", got)
	}

	engage := models.Recommendation{Type: models.RecommendationEngageServices, Area: "timeline", Reason: TimelineTight, Impact: "HIGH", Risk: "HIGH"}
	if !strings.Contains(String(engage), "Action: ENGAGE_SERVICES") {
		t.Errorf("Expected action line, got %s", String(engage))
	}
}
