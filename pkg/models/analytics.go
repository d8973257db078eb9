package models

import "time"

// ReportRun records one report generation in the archive
type ReportRun struct {
	ID                string
	CompanyName       string
	TotalUsers        int
	AnnualValue       *float64
	PaybackMonths     *float64
	Year3ROI          *float64
	ParallelizedWeeks int
	Validity          *int
	Formats           []string
	Placeholders      int
	DrawFailures      int
	CreatedAt         time.Time
}

// RunStats aggregates archived runs for one customer
type RunStats struct {
	CompanyName      string     `json:"company"`
	PeriodDays       int        `json:"period_days"`
	TotalRuns        int        `json:"total_runs"`
	AvgAnnualValue   float64    `json:"avg_annual_value"`
	AvgPaybackMonths *float64   `json:"avg_payback_months"`
	LatestRun        *time.Time `json:"latest_run"`
}

// NewReportRun captures the headline numbers of a business case
func NewReportRun(bc *BusinessCase) *ReportRun {
	run := &ReportRun{
		ID:            bc.ID,
		AnnualValue:   bc.ROI.TotalAnnualValue,
		PaybackMonths: bc.ROI.PaybackMonths,
		Year3ROI:      bc.ROI.Year3,
		CreatedAt:     bc.CalculatedAt,
	}
	if bc.Profile != nil {
		run.CompanyName = bc.Profile.CompanyName
		run.TotalUsers = bc.Profile.TotalUsers
	}
	if bc.Timeline != nil {
		run.ParallelizedWeeks = bc.Timeline.ParallelizedWeeks
		run.Validity = bc.Timeline.Validity
	}
	return run
}
