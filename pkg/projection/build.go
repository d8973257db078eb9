package projection

import (
	"fmt"

	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/numeric"
)

// Part names, which double as workbook sheet names
const (
	PartSummary   = "Summary"
	PartCurrent   = "Current State"
	PartFuture    = "Future State"
	PartMultiYear = "Multi-Year Analysis"
	PartROI       = "ROI Metrics"
	PartTimeline  = "Implementation Timeline"
)

// Build projects a computed business case. Absent sources become
// placeholder parts; absent values become missing cells.
func Build(bc *models.BusinessCase) Projection {
	if bc == nil {
		bc = &models.BusinessCase{}
	}
	company := "Customer"
	if bc.Profile != nil && bc.Profile.CompanyName != "" {
		company = bc.Profile.CompanyName
	}

	proj := Projection{
		Title:   "Azure Virtual Desktop Business Case",
		Company: company,
	}
	if !bc.CalculatedAt.IsZero() {
		proj.GeneratedAt = bc.CalculatedAt.Format("January 2, 2006")
	}

	proj.Parts = []Part{
		summaryPart(bc, proj),
		currentPart(bc),
		futurePart(bc),
		multiYearPart(bc),
		roiPart(bc),
		timelinePart(bc),
	}
	return proj
}

func summaryPart(bc *models.BusinessCase, proj Projection) Part {
	part := Part{
		Name:         PartSummary,
		Title:        "Executive Summary",
		ColumnWidths: []float64{32, 22, 16},
	}

	users := MissingCell()
	industry := MissingCell()
	if bc.Profile != nil {
		users = NumberCell(float64(bc.Profile.TotalUsers), numeric.FormatCount(bc.Profile.TotalUsers))
		if bc.Profile.Industry != "" {
			industry = TextCell(bc.Profile.Industry)
		}
	}
	generated := MissingCell()
	if proj.GeneratedAt != "" {
		generated = TextCell(proj.GeneratedAt)
	}

	part.Sections = append(part.Sections,
		heading(fmt.Sprintf("%s: %s", proj.Title, proj.Company)),
		kv("Company", TextCell(proj.Company)),
		kv("Industry", industry),
		kv("Total Users", users),
		kv("Generated", generated),
		spacer(),
		heading("Key Metrics"),
		kv("Annual Savings", Money(bc.ROI.TotalAnnualValue)),
		kv("Payback Period", months(bc.ROI.PaybackMonths)),
		kv("3-Year ROI", Percent(bc.ROI.Year3, 1)),
		kv(fmt.Sprintf("%d-Year NPV", bc.ROI.HorizonYears), Money(bc.ROI.NPV)),
		kv("Implementation Cost", Money(numeric.Ptr(bc.Implementation.TotalCost))),
		kv("Implementation Duration", weeksCell(timelineWeeks(bc.Timeline))),
		kv("Go-Live Feasibility", feasibility(bc.Timeline)),
		spacer(),
		heading("Annual Cost Comparison"),
		table(&Table{
			Header: []string{"Scenario", "Annual Cost"},
			Rows: [][]Cell{
				{TextCell("Current State"), Money(currentAnnual(bc))},
				{TextCell("Future State (AVD)"), Money(futureAnnual(bc))},
			},
			Chart:       ChartBars,
			ChartColumn: 1,
		}),
	)

	if len(bc.Recommendations) > 0 {
		rows := make([][]Cell, 0, len(bc.Recommendations))
		for _, rec := range bc.Recommendations {
			rows = append(rows, []Cell{TextCell(rec.Area), TextCell(rec.Reason), TextCell(rec.Impact)})
		}
		part.Sections = append(part.Sections,
			spacer(),
			heading("Recommendations"),
			table(&Table{Header: []string{"Area", "Finding", "Impact"}, Rows: rows}),
		)
	}
	return part
}

func currentPart(bc *models.BusinessCase) Part {
	cs := bc.CurrentState
	if cs == nil || !cs.Available {
		return placeholder(PartCurrent, "Current state data not available")
	}

	rows := make([][]Cell, 0, len(cs.Lines)+1)
	for _, line := range cs.Lines {
		rows = append(rows, lineRow(line, cs.UserCount))
	}
	rows = append(rows, []Cell{
		TextCell("Total"),
		Money(numeric.Ptr(cs.MonthlyTotal)),
		Money(numeric.Ptr(cs.AnnualTotal)),
		perUser(cs.PerUserMonthly),
		TextCell(""),
	})

	platform := MissingCell()
	if cs.Platform != "" {
		platform = TextCell(cs.Platform)
	}
	return Part{
		Name:         PartCurrent,
		Title:        "Current State Costs",
		ColumnWidths: []float64{28, 16, 16, 18, 14},
		Sections: []Section{
			heading("Current State Costs"),
			kv("Platform", platform),
			kv("Users", NumberCell(float64(cs.UserCount), numeric.FormatCount(cs.UserCount))),
			spacer(),
			table(&Table{
				Header: []string{"Category", "Monthly Cost", "Annual Cost", "Per User / Month", "Basis"},
				Rows:   rows,
			}),
		},
	}
}

func futurePart(bc *models.BusinessCase) Part {
	fs := bc.FutureState
	if fs == nil || !fs.Available {
		return placeholder(PartFuture, "Future state data not available")
	}
	users := 0
	if bc.Profile != nil {
		users = bc.Profile.TotalUsers
	}

	rows := make([][]Cell, 0, 6)
	for _, line := range fs.Lines() {
		rows = append(rows, lineRow(line, users))
	}
	rows = append(rows,
		[]Cell{
			TextCell("Gross Total"),
			Money(numeric.Ptr(fs.Totals.MonthlyGross)),
			Money(numeric.Ptr(fs.Totals.AnnualGross)),
			perUser(numeric.Divide(fs.Totals.MonthlyGross, float64(users))),
			TextCell(""),
		},
		[]Cell{
			TextCell(fmt.Sprintf("Auto-Scaling (%s savings)", numeric.FormatPercent(numeric.Ptr(fs.AutoScaling.SavingsPercent*100), 0))),
			Money(numeric.Ptr(-fs.AutoScaling.MonthlySavings)),
			Money(numeric.Ptr(-fs.AutoScaling.AnnualSavings)),
			perUser(numeric.Divide(-fs.AutoScaling.MonthlySavings, float64(users))),
			TextCell("Estimated"),
		},
		[]Cell{
			TextCell("Net Total"),
			Money(numeric.Ptr(fs.Totals.MonthlyNet)),
			Money(numeric.Ptr(fs.Totals.AnnualNet)),
			perUser(fs.Totals.PerUserMonthly),
			TextCell(""),
		},
	)

	sku := MissingCell()
	if fs.VMSKU != "" {
		sku = TextCell(fs.VMSKU)
	}
	return Part{
		Name:         PartFuture,
		Title:        "Future State Costs (AVD)",
		ColumnWidths: []float64{34, 16, 16, 18, 14},
		Sections: []Section{
			heading("Future State Costs (AVD)"),
			kv("VM SKU", sku),
			kv("Session Hosts", NumberCell(float64(fs.VMCount), numeric.FormatCount(fs.VMCount))),
			kv("Users per Host", NumberCell(float64(fs.UsersPerVM), numeric.FormatCount(fs.UsersPerVM))),
			kv("Storage", TextCell(fmt.Sprintf("%s, %s GB", fs.StorageType, numeric.FormatCount(int(fs.StorageTotalGB))))),
			spacer(),
			table(&Table{
				Header: []string{"Category", "Monthly Cost", "Annual Cost", "Per User / Month", "Basis"},
				Rows:   rows,
			}),
		},
	}
}

func multiYearPart(bc *models.BusinessCase) Part {
	tco := bc.TCO
	if tco == nil || tco.HorizonYears <= 0 {
		return placeholder(PartMultiYear, "Multi-year analysis not available")
	}

	rows := make([][]Cell, 0, tco.HorizonYears)
	var cumulative float64
	for year := 1; year <= tco.HorizonYears; year++ {
		future := tco.AnnualFuture
		if year == 1 {
			future += bc.Implementation.TotalCost
		}
		savings := tco.AnnualCurrent - future
		cumulative += savings
		rows = append(rows, []Cell{
			TextCell(fmt.Sprintf("Year %d", year)),
			Money(numeric.Ptr(tco.AnnualCurrent)),
			Money(numeric.Ptr(future)),
			Money(numeric.Ptr(savings)),
			Money(numeric.Ptr(cumulative)),
		})
	}

	return Part{
		Name:         PartMultiYear,
		Title:        fmt.Sprintf("%d-Year Total Cost of Ownership", tco.HorizonYears),
		ColumnWidths: []float64{12, 18, 18, 18, 20},
		Sections: []Section{
			heading(fmt.Sprintf("%d-Year Total Cost of Ownership", tco.HorizonYears)),
			table(&Table{
				Header: []string{"Year", "Current Cost", "Future Cost", "Annual Savings", "Cumulative Savings"},
				Rows:   rows,
			}),
			spacer(),
			kv("Total Current Cost", Money(numeric.Ptr(tco.CurrentTotal))),
			kv("Total Future Cost", Money(numeric.Ptr(tco.FutureTotal))),
			kv("Total Savings", Money(numeric.Ptr(tco.SavingsTotal))),
			kv("Savings", Percent(tco.SavingsPercent, 1)),
		},
	}
}

func roiPart(bc *models.BusinessCase) Part {
	r := bc.ROI
	convention := MissingCell()
	if r.Convention != "" {
		convention = TextCell(fmt.Sprintf("%s, %s discount rate", r.Convention, numeric.FormatPercent(numeric.Ptr(r.DiscountRate*100), 1)))
	}
	return Part{
		Name:         PartROI,
		Title:        "Return on Investment",
		ColumnWidths: []float64{30, 22},
		Sections: []Section{
			heading("Return on Investment"),
			kv("Total Annual Value", Money(r.TotalAnnualValue)),
			kv("Implementation Cost", Money(numeric.Ptr(r.ImplementationCost))),
			kv("Payback Period", months(r.PaybackMonths)),
			spacer(),
			heading("ROI by Year"),
			kv("Year 1 ROI", Percent(r.Year1, 1)),
			kv("Year 3 ROI", Percent(r.Year3, 1)),
			kv("Year 5 ROI", Percent(r.Year5, 1)),
			spacer(),
			kv(fmt.Sprintf("Net Present Value (%d years)", r.HorizonYears), Money(r.NPV)),
			kv("Discounting", convention),
		},
	}
}

func timelinePart(bc *models.BusinessCase) Part {
	tl := bc.Timeline
	if tl == nil || len(tl.Phases) == 0 || tl.SequentialWeeks <= 0 {
		return placeholder(PartTimeline, "Timeline data not available")
	}

	phases := make([][]Cell, 0, len(tl.Phases))
	for _, phase := range tl.Phases {
		share := numeric.Divide(float64(phase.Weeks), float64(tl.SequentialWeeks))
		if share != nil {
			*share *= 100
		}
		phases = append(phases, []Cell{
			TextCell(phase.Label),
			NumberCell(float64(phase.Weeks), numeric.FormatWeeks(&phase.Weeks)),
			Percent(share, 1),
		})
	}

	span := NumberCell(float64(tl.ParallelizedWeeks),
		"Parallelized schedule: "+numeric.FormatWeeks(&tl.ParallelizedWeeks))

	audit := make([][]Cell, 0, len(models.AllDrivers))
	for _, id := range models.AllDrivers {
		band, ok := tl.Audit.Bands[id]
		bandCell := MissingCell()
		if ok {
			bandCell = TextCell(band.Upper())
		}
		source := "Provided"
		if tl.Audit.Defaulted[id] {
			source = "Default"
		}
		score := tl.Audit.DriverScores[id]
		audit = append(audit, []Cell{
			TextCell(id.Label()),
			bandCell,
			NumberCell(score, fmt.Sprintf("%.0f", score)),
			TextCell(source),
		})
	}

	return Part{
		Name:         PartTimeline,
		Title:        "Implementation Timeline",
		ColumnWidths: []float64{36, 12, 14, 12},
		Sections: []Section{
			heading("Implementation Timeline"),
			table(&Table{
				Header:      []string{"Phase", "Duration", "Share"},
				Rows:        phases,
				Chart:       ChartGantt,
				ChartColumn: 1,
				Span:        &span,
			}),
			spacer(),
			kv("Sequential Duration", weeksCell(&tl.SequentialWeeks)),
			kv("Parallelized Duration", weeksCell(&tl.ParallelizedWeeks)),
			kv("Parallelization Credit", weeksCell(&tl.CreditWeeks)),
			kv("Parallelization Factor", Percent(numeric.Ptr(tl.ParallelizationFactor*100), 0)),
			kv("Weeks to Go-Live", weeksCell(tl.WeeksToGoLive)),
			kv("Validity", validity(tl.Validity)),
			kv("Assessment", feasibility(tl)),
			kv("Recommendation", recommendationFor(bc, "timeline")),
			spacer(),
			heading(fmt.Sprintf("Complexity Audit (weights v%s)", tl.Audit.WeightTableVersion)),
			table(&Table{
				Header: []string{"Driver", "Band", "Score", "Source"},
				Rows:   audit,
			}),
		},
	}
}

func lineRow(line models.CostLine, users int) []Cell {
	if line.Absent {
		return []Cell{TextCell(line.Label), MissingCell(), MissingCell(), MissingCell(), TextCell("Not available")}
	}
	basis := "Rate card"
	if line.Estimated {
		basis = "Estimated"
	}
	return []Cell{
		TextCell(line.Label),
		Money(numeric.Ptr(line.MonthlyCost)),
		Money(numeric.Ptr(line.AnnualCost)),
		perUser(numeric.Divide(line.MonthlyCost, float64(users))),
		TextCell(basis),
	}
}

func perUser(v *float64) Cell {
	if v == nil || !numeric.IsFinite(*v) {
		return MissingCell()
	}
	return NumberCell(*v, numeric.FormatCurrencyCents(v))
}

func months(v *float64) Cell {
	if v == nil || !numeric.IsFinite(*v) {
		return MissingCell()
	}
	return NumberCell(*v, numeric.FormatMonths(v))
}

func weeksCell(v *int) Cell {
	if v == nil {
		return MissingCell()
	}
	return NumberCell(float64(*v), numeric.FormatWeeks(v))
}

func validity(v *int) Cell {
	if v == nil {
		return MissingCell()
	}
	if *v < 0 {
		shortfall := -*v
		return NumberCell(float64(*v), fmt.Sprintf("%s shortfall", numeric.FormatWeeks(&shortfall)))
	}
	return NumberCell(float64(*v), fmt.Sprintf("%s buffer", numeric.FormatWeeks(v)))
}

func feasibility(tl *models.Timeline) Cell {
	ok := tl.Feasible()
	if ok == nil {
		return MissingCell()
	}
	if *ok {
		return TextCell("Achievable")
	}
	return TextCell("At risk")
}

func recommendationFor(bc *models.BusinessCase, area string) Cell {
	for _, rec := range bc.Recommendations {
		if rec.Area == area {
			return TextCell(rec.Reason)
		}
	}
	return MissingCell()
}

func timelineWeeks(tl *models.Timeline) *int {
	if tl == nil || tl.SequentialWeeks <= 0 {
		return nil
	}
	return &tl.ParallelizedWeeks
}

func currentAnnual(bc *models.BusinessCase) *float64 {
	if bc.CurrentState == nil || !bc.CurrentState.Available {
		return nil
	}
	return &bc.CurrentState.AnnualTotal
}

func futureAnnual(bc *models.BusinessCase) *float64 {
	if bc.FutureState == nil || !bc.FutureState.Available {
		return nil
	}
	return &bc.FutureState.Totals.AnnualNet
}
