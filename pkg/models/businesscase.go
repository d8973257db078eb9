package models

import "time"

// BusinessCase is the full computed model for one profile
type BusinessCase struct {
	ID              string
	Profile         *CustomerProfile
	CurrentState    *CurrentState
	FutureState     *FutureState
	Implementation  ImplementationCost
	TCO             *TCO
	ROI             ROIResult
	Timeline        *Timeline
	Recommendations []Recommendation
	CalculatedAt    time.Time
}
