package reporter

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/opscart/avd-business-case/pkg/metrics"
	"github.com/opscart/avd-business-case/pkg/numeric"
	"github.com/opscart/avd-business-case/pkg/projection"
)

const (
	pageMargin   = 18.0
	lineHeight   = 6.0
	headerHeight = 34.0
	chartLabelW  = 48.0
	chartValueW  = 30.0
	chartBarH    = 9.0
	fontFamily   = "Helvetica"
)

var (
	colorBrand    = Color{0, 51, 102}
	colorText     = Color{50, 50, 50}
	colorMuted    = Color{120, 120, 120}
	colorWhite    = Color{255, 255, 255}
	colorPanel    = Color{245, 247, 250}
	colorCurrent  = Color{200, 80, 60}
	colorFuture   = Color{40, 140, 90}
	colorPhaseBar = Color{50, 110, 200}
)

// document pages and the parts each one shows
var pageLayout = []struct {
	title string
	parts []string
}{
	{"Executive Summary", []string{projection.PartSummary}},
	{"Cost Comparison", []string{projection.PartCurrent, projection.PartFuture}},
	{"Return on Investment", []string{projection.PartROI, projection.PartMultiYear}},
	{"Implementation Roadmap", []string{projection.PartTimeline}},
}

// DocumentResult describes a finished document
type DocumentResult struct {
	Pages        int
	DrawFailures int
}

// DocumentRenderer lays a projection out as pages. It keeps no state
// between calls.
type DocumentRenderer struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func NewDocumentRenderer(logger *slog.Logger, rec *metrics.Recorder) *DocumentRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentRenderer{logger: logger, metrics: rec}
}

// docState is the per-render cursor
type docState struct {
	r        *DocumentRenderer
	c        Canvas
	width    float64
	height   float64
	y        float64
	pages    int
	failures int
	title    string
}

// Render lays out every page and finishes the canvas into w. Individual
// draw failures are skipped; w receives nothing unless Finish succeeds.
func (r *DocumentRenderer) Render(p projection.Projection, c Canvas, w io.Writer) (result DocumentResult, err error) {
	s := &docState{r: r, c: c, title: p.Title}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("document layout aborted: %v", rec)
		}
	}()

	for i, page := range pageLayout {
		s.newPage(page.title)
		if i == 0 {
			s.cover(p)
		}
		for _, name := range page.parts {
			part, ok := p.Part(name)
			if !ok {
				part = projection.Part{Name: name, Title: name, Placeholder: true, Message: name + " not available"}
			}
			s.part(part, i != 0)
		}
		if page.parts[0] == projection.PartCurrent {
			s.costChart(p)
		}
	}

	result = DocumentResult{Pages: s.pages, DrawFailures: s.failures}

	var buf bytes.Buffer
	if err := c.Finish(&buf); err != nil {
		return result, fmt.Errorf("failed to finish document: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return result, fmt.Errorf("failed to write document: %w", err)
	}
	return result, nil
}

// RenderPDF renders to PDF bytes, returned only for a complete document
func (r *DocumentRenderer) RenderPDF(p projection.Projection) ([]byte, DocumentResult, error) {
	var buf bytes.Buffer
	result, err := r.Render(p, NewFPDFCanvas(), &buf)
	if err != nil {
		return nil, result, err
	}
	return buf.Bytes(), result, nil
}

// draw runs one canvas operation in isolation
func (s *docState) draw(element string, fn func() error) {
	defer func() {
		if rec := recover(); rec != nil {
			s.fail(element, fmt.Errorf("panic: %v", rec))
		}
	}()
	if err := fn(); err != nil {
		s.fail(element, err)
	}
}

func (s *docState) fail(element string, err error) {
	s.failures++
	s.r.metrics.DrawFailed(element)
	s.r.logger.Warn("skipped document element", "element", element, "page", s.pages, "error", err)
}

func (s *docState) font(weight FontWeight, size float64, color Color) {
	s.draw("font", func() error { return s.c.SetFont(fontFamily, weight, size) })
	s.draw("font", func() error { return s.c.SetTextColor(color) })
}

func (s *docState) text(element, content string, x, y float64) {
	if content == "" {
		return
	}
	s.draw(element, func() error { return s.c.DrawText(content, x, y) })
}

// rect draws nothing for a zero, negative or non-finite magnitude
func (s *docState) rect(element string, x, y, w, h float64, fill Color) {
	if !numeric.IsFinite(w) || !numeric.IsFinite(h) || w <= 0 || h <= 0 {
		return
	}
	s.draw(element, func() error { return s.c.SetFillColor(fill) })
	s.draw(element, func() error { return s.c.DrawRect(x, y, w, h, RectFill) })
}

func (s *docState) newPage(title string) {
	s.draw("page", s.c.AddPage)
	s.pages++
	s.width, s.height = s.c.PageSize()
	if !numeric.IsFinite(s.width) || s.width <= 2*pageMargin {
		s.width = 210
	}
	if !numeric.IsFinite(s.height) || s.height <= 2*pageMargin {
		s.height = 297
	}

	s.rect("page-header", 0, 0, s.width, 14, colorBrand)
	s.font(WeightBold, 10, colorWhite)
	s.text("page-header", s.title, pageMargin, 9)
	s.font(WeightBold, 16, colorBrand)
	s.text("page-title", title, pageMargin, 26)
	s.y = headerHeight
}

func (s *docState) ensure(h float64) {
	if s.y+h > s.height-pageMargin {
		s.newPage("(continued)")
	}
}

func (s *docState) contentWidth() float64 {
	return s.width - 2*pageMargin
}

func (s *docState) cover(p projection.Projection) {
	s.rect("cover-panel", pageMargin, s.y, s.contentWidth(), 22, colorPanel)
	s.font(WeightBold, 14, colorBrand)
	s.text("cover", p.Company, pageMargin+4, s.y+9)
	s.font(WeightItalic, 10, colorMuted)
	s.text("cover", p.GeneratedAt, pageMargin+4, s.y+17)
	s.y += 30
}

func (s *docState) part(part projection.Part, showTitle bool) {
	if showTitle {
		s.ensure(lineHeight * 2)
		s.font(WeightBold, 13, colorBrand)
		s.text("part-title", part.Title, pageMargin, s.y+lineHeight)
		s.y += lineHeight * 1.8
	}
	if part.Placeholder {
		s.ensure(lineHeight)
		s.font(WeightItalic, 10, colorMuted)
		s.text("placeholder", part.Message, pageMargin, s.y+lineHeight)
		s.y += lineHeight * 2
		return
	}

	for i, sec := range part.Sections {
		switch sec.Kind {
		case projection.KindHeading:
			if i == 0 && showTitle {
				continue
			}
			s.ensure(lineHeight * 1.5)
			s.font(WeightBold, 11, colorBrand)
			s.text("heading", sec.Heading, pageMargin, s.y+lineHeight)
			s.y += lineHeight * 1.4
		case projection.KindKeyValue:
			s.ensure(lineHeight)
			s.font(WeightRegular, 10, colorText)
			s.text("key", fit(sec.Key, 70, 10), pageMargin, s.y+lineHeight)
			s.font(WeightBold, 10, colorText)
			s.text("value", fit(sec.Value.Text, s.contentWidth()-72, 10), pageMargin+72, s.y+lineHeight)
			s.y += lineHeight
		case projection.KindTable:
			if sec.Table == nil {
				continue
			}
			if sec.Table.Chart == projection.ChartGantt {
				s.gantt(sec.Table)
			} else {
				s.table(sec.Table, part.ColumnWidths)
			}
		case projection.KindSpacer:
			s.y += lineHeight / 2
		}
	}
	s.y += lineHeight
}

func (s *docState) table(t *projection.Table, widths []float64) {
	cols := columnOffsets(len(t.Header), widths, s.contentWidth())
	s.ensure(lineHeight * 2)
	s.rect("table-header", pageMargin, s.y+1, s.contentWidth(), lineHeight, colorPanel)
	s.font(WeightBold, 9, colorBrand)
	for i, h := range t.Header {
		s.text("table-header", fit(h, cols[i+1]-cols[i], 9), pageMargin+cols[i]+1, s.y+lineHeight-0.5)
	}
	s.y += lineHeight + 1

	s.font(WeightRegular, 9, colorText)
	for _, row := range t.Rows {
		s.ensure(lineHeight)
		for i, cell := range row {
			if i >= len(cols)-1 {
				break
			}
			s.text("table-cell", fit(cell.Text, cols[i+1]-cols[i], 9), pageMargin+cols[i]+1, s.y+lineHeight-0.5)
		}
		s.y += lineHeight
	}
}

// costChart draws the current vs future annual cost bars, scaled to the
// measured page width
func (s *docState) costChart(p projection.Projection) {
	summary, ok := p.Part(projection.PartSummary)
	if !ok {
		return
	}
	var chart *projection.Table
	for _, sec := range summary.Sections {
		if sec.Kind == projection.KindTable && sec.Table != nil && sec.Table.Chart == projection.ChartBars {
			chart = sec.Table
			break
		}
	}
	if chart == nil {
		return
	}

	s.ensure(lineHeight*2 + float64(len(chart.Rows))*(chartBarH+3))
	s.font(WeightBold, 11, colorBrand)
	s.text("heading", "Annual Cost Comparison", pageMargin, s.y+lineHeight)
	s.y += lineHeight * 1.6

	maxVal := 0.0
	for _, row := range chart.Rows {
		if v := chartValue(row, chart.ChartColumn); v > maxVal {
			maxVal = v
		}
	}
	barSpace := s.contentWidth() - chartLabelW - chartValueW
	colors := []Color{colorCurrent, colorFuture}

	for i, row := range chart.Rows {
		label := ""
		if len(row) > 0 {
			label = row[0].Text
		}
		valueText := numeric.NotAvailable
		if chart.ChartColumn < len(row) {
			valueText = row[chart.ChartColumn].Text
		}

		s.font(WeightRegular, 10, colorText)
		s.text("cost-chart-label", fit(label, chartLabelW-2, 10), pageMargin, s.y+chartBarH-2)

		width := 0.0
		if maxVal > 0 {
			width = chartValue(row, chart.ChartColumn) / maxVal * barSpace
		}
		s.rect("cost-chart-bar", pageMargin+chartLabelW, s.y, width, chartBarH, colors[i%len(colors)])

		s.font(WeightBold, 10, colorText)
		s.text("cost-chart-value", valueText, pageMargin+chartLabelW+numeric.NonNegative(width)+2, s.y+chartBarH-2)
		s.y += chartBarH + 3
	}
	s.y += lineHeight
}

// gantt lays phases along a week axis. When the table carries a shorter
// overlapped span, each later phase starts early by an even share of the
// difference so the last one ends on the span, and a marker shows it.
func (s *docState) gantt(t *projection.Table) {
	total := 0.0
	active := 0
	for _, row := range t.Rows {
		if w := chartValue(row, t.ChartColumn); w > 0 {
			total += w
			active++
		}
	}
	scale := numeric.Number(numeric.Divide(s.contentWidth()-chartLabelW-chartValueW, total), 0)

	span := total
	if t.Span != nil && t.Span.Number != nil && !t.Span.Missing {
		if v := *t.Span.Number; numeric.IsFinite(v) && v > 0 && v < total {
			span = v
		}
	}
	step := 0.0
	if active > 1 {
		step = (total - span) / float64(active-1)
	}

	s.ensure(float64(len(t.Rows))*(chartBarH+1) + 2*lineHeight)
	top := s.y
	x0 := pageMargin + chartLabelW

	sequential, start := 0.0, 0.0
	k := 0
	for _, row := range t.Rows {
		label := ""
		if len(row) > 0 {
			label = row[0].Text
		}
		weeks := chartValue(row, t.ChartColumn)
		if weeks > 0 {
			start = math.Max(sequential-step*float64(k), start)
			sequential += weeks
			k++
		}

		s.font(WeightRegular, 8, colorText)
		s.text("roadmap-label", fit(label, chartLabelW-2, 8), pageMargin, s.y+chartBarH-3)
		s.rect("roadmap-bar", x0+start*scale, s.y, weeks*scale, chartBarH-2, colorPhaseBar)
		if t.ChartColumn < len(row) {
			s.font(WeightBold, 8, colorText)
			s.text("roadmap-value", row[t.ChartColumn].Text, x0+(start+weeks)*scale+2, s.y+chartBarH-3)
		}
		s.y += chartBarH + 1
	}

	if span < total {
		s.rect("roadmap-marker", x0+span*scale, top, 0.6, s.y-top, colorBrand)
		s.font(WeightItalic, 8, colorMuted)
		s.text("roadmap-span", t.Span.Text, x0, s.y+4)
		s.y += lineHeight
	}
	s.y += lineHeight / 2
}

// chartValue is the non-negative finite magnitude of a row, 0 when missing
func chartValue(row []projection.Cell, col int) float64 {
	if col < 0 || col >= len(row) || row[col].Number == nil {
		return 0
	}
	return numeric.NonNegative(*row[col].Number)
}

// columnOffsets returns n+1 x offsets from proportional width hints
func columnOffsets(n int, hints []float64, total float64) []float64 {
	offsets := make([]float64, n+1)
	if n == 0 {
		return offsets
	}
	sum := 0.0
	useHints := len(hints) >= n
	if useHints {
		for _, h := range hints[:n] {
			sum += numeric.NonNegative(h)
		}
		useHints = sum > 0
	}
	for i := 0; i < n; i++ {
		share := 1.0 / float64(n)
		if useHints {
			share = numeric.NonNegative(hints[i]) / sum
		}
		offsets[i+1] = offsets[i] + share*total
	}
	return offsets
}

// fit truncates text to roughly the width available at a font size
func fit(s string, width, size float64) string {
	max := int(width / (size * 0.19))
	if max <= 3 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
