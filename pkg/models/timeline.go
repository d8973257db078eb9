package models

// Phase is one implementation phase with its duration
type Phase struct {
	Key   string
	Label string
	Weeks int
}

// TimelineAudit records how each driver was banded and scored
type TimelineAudit struct {
	Bands              map[DriverID]Band
	Defaulted          map[DriverID]bool
	DriverScores       map[DriverID]float64
	WeightTableVersion string
}

// Timeline is the phased implementation estimate
type Timeline struct {
	Phases                []Phase
	SequentialWeeks       int
	ParallelizedWeeks     int
	CreditWeeks           int
	ParallelizationFactor float64

	// WeeksToGoLive and Validity are nil when no go-live date is known.
	// Validity >= 0 is buffer, < 0 is shortfall.
	WeeksToGoLive *int
	Validity      *int

	Audit TimelineAudit
}

// Feasible reports whether the go-live date can be met; nil when unknown
func (t *Timeline) Feasible() *bool {
	if t == nil || t.Validity == nil {
		return nil
	}
	ok := *t.Validity >= 0
	return &ok
}
