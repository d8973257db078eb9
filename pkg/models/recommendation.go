package models

// RecommendationType represents the type of recommendation
type RecommendationType string

const (
	RecommendationProceed        RecommendationType = "PROCEED"
	RecommendationEngageServices RecommendationType = "ENGAGE_SERVICES"
	RecommendationReviewCosts    RecommendationType = "REVIEW_COSTS"
	RecommendationGatherData     RecommendationType = "GATHER_DATA"
)

// Recommendation is one advisory finding on a business case
type Recommendation struct {
	Type   RecommendationType
	Area   string // timeline, financial, inputs
	Reason string
	Impact string // HIGH, MEDIUM, LOW, NONE
	Risk   string
}
