package projection

import "github.com/opscart/avd-business-case/pkg/numeric"

// Kind discriminates a Section
type Kind int

const (
	KindHeading Kind = iota
	KindKeyValue
	KindTable
	KindSpacer
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindKeyValue:
		return "key-value"
	case KindTable:
		return "table"
	case KindSpacer:
		return "spacer"
	default:
		return "unknown"
	}
}

// Cell is a fully resolved value. Text is always safe to print; Number is
// set when the value is numeric so tabular targets can keep it raw.
type Cell struct {
	Text    string
	Number  *float64
	Missing bool
}

// TextCell holds a plain string
func TextCell(s string) Cell {
	return Cell{Text: s}
}

// NumberCell holds a number with its display form
func NumberCell(v float64, text string) Cell {
	if !numeric.IsFinite(v) {
		return MissingCell()
	}
	return Cell{Text: text, Number: &v}
}

// MissingCell is the explicit "not available" leaf
func MissingCell() Cell {
	return Cell{Text: numeric.NotAvailable, Missing: true}
}

// Money formats a nullable amount as whole dollars
func Money(v *float64) Cell {
	if v == nil || !numeric.IsFinite(*v) {
		return MissingCell()
	}
	return NumberCell(*v, numeric.FormatCurrency(v))
}

// Percent formats a nullable percentage
func Percent(v *float64, places int) Cell {
	if v == nil || !numeric.IsFinite(*v) {
		return MissingCell()
	}
	return NumberCell(*v, numeric.FormatPercent(v, places))
}

// ChartKind hints how a document target may visualise a table
type ChartKind int

const (
	ChartNone ChartKind = iota
	// ChartBars compares rows side by side
	ChartBars
	// ChartGantt lays rows end to end as a roadmap
	ChartGantt
)

// Table is a header plus data rows
type Table struct {
	Header      []string
	Rows        [][]Cell
	Chart       ChartKind
	ChartColumn int
	// Span is the overall length of a gantt once phases overlap
	Span        *Cell
}

// Section is one element of a part. Exactly the fields for its Kind are set.
type Section struct {
	Kind    Kind
	Heading string
	Key     string
	Value   Cell
	Table   *Table
}

// Part is one concern: a workbook sheet, a document section
type Part struct {
	Name         string
	Title        string
	Sections     []Section
	Placeholder  bool
	Message      string
	ColumnWidths []float64
}

// Projection is the renderer-agnostic report
type Projection struct {
	Title       string
	Company     string
	GeneratedAt string
	Parts       []Part
}

// Part returns the named part, if present
func (p Projection) Part(name string) (Part, bool) {
	for _, part := range p.Parts {
		if part.Name == name {
			return part, true
		}
	}
	return Part{}, false
}

// Placeholders counts the parts rendered as placeholders
func (p Projection) Placeholders() int {
	n := 0
	for _, part := range p.Parts {
		if part.Placeholder {
			n++
		}
	}
	return n
}

func heading(text string) Section {
	return Section{Kind: KindHeading, Heading: text}
}

func kv(key string, value Cell) Section {
	return Section{Kind: KindKeyValue, Key: key, Value: value}
}

func table(t *Table) Section {
	return Section{Kind: KindTable, Table: t}
}

func spacer() Section {
	return Section{Kind: KindSpacer}
}

func placeholder(name, message string) Part {
	return Part{
		Name:        name,
		Title:       name,
		Placeholder: true,
		Message:     message,
		Sections:    []Section{kv(name, TextCell(message))},
	}
}
