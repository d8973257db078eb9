package models

// Cost categories
const (
	CategoryInfrastructure = "infrastructure"
	CategoryLicensing      = "licensing"
	CategoryOperations     = "operations"
	CategoryCompute        = "compute"
	CategoryStorage        = "storage"
)

// CostLine is one cost category. AnnualCost is always MonthlyCost * 12;
// an Absent line carries zero and is reported as not available.
type CostLine struct {
	Category    string
	Label       string
	MonthlyCost float64
	AnnualCost  float64
	Absent      bool
	Estimated   bool
}

// NewCostLine builds a present cost line from a monthly amount
func NewCostLine(category, label string, monthly float64) CostLine {
	return CostLine{
		Category:    category,
		Label:       label,
		MonthlyCost: monthly,
		AnnualCost:  monthly * 12,
	}
}

// NewAnnualCostLine builds a present cost line from an annual amount, keeping
// the annual figure exact
func NewAnnualCostLine(category, label string, annual float64) CostLine {
	return CostLine{
		Category:    category,
		Label:       label,
		MonthlyCost: annual / 12,
		AnnualCost:  annual,
	}
}

// AbsentCostLine builds a zero line flagged as missing its inputs
func AbsentCostLine(category, label string) CostLine {
	return CostLine{Category: category, Label: label, Absent: true}
}

// CurrentState is the customer's existing desktop platform cost
type CurrentState struct {
	Platform       string
	UserCount      int
	Lines          []CostLine
	MonthlyTotal   float64
	AnnualTotal    float64
	PerUserMonthly *float64
	// Available is false when every category is absent
	Available bool
}

// AutoScaling is the savings estimate from scaling session hosts on demand
type AutoScaling struct {
	SavingsPercent float64
	MonthlySavings float64
	AnnualSavings  float64
}

// FutureTotals rolls the future-state lines up. MonthlyNet = MonthlyGross - savings.
type FutureTotals struct {
	MonthlyGross   float64
	AnnualGross    float64
	MonthlyNet     float64
	AnnualNet      float64
	PerUserMonthly *float64
}

// FutureState is the proposed AVD deployment cost
type FutureState struct {
	VMSKU          string
	VMCount        int
	UsersPerVM     int
	StorageType    string
	StorageTotalGB float64

	Compute   CostLine
	Storage   CostLine
	Licensing CostLine

	AutoScaling AutoScaling
	Totals      FutureTotals
	Available   bool
}

// Lines returns the future-state categories in report order
func (f *FutureState) Lines() []CostLine {
	return []CostLine{f.Compute, f.Storage, f.Licensing}
}

// ImplementationCost is the one-off services investment
type ImplementationCost struct {
	ProjectManagementHours float64
	ArchitectHours         float64
	EngineerHours          float64
	TotalCost              float64
	DurationWeeks          int
	Overridden             bool
}

// TCO compares total cost of ownership over the horizon
type TCO struct {
	HorizonYears   int
	AnnualCurrent  float64
	AnnualFuture   float64
	AnnualSavings  float64
	CurrentTotal   float64
	FutureTotal    float64
	SavingsTotal   float64
	SavingsPercent *float64
}
