package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/numeric"
	"github.com/opscart/avd-business-case/pkg/projection"
)

var (
	primary = lipgloss.Color("#0078D4")
	success = lipgloss.Color("#10B981")
	warning = lipgloss.Color("#F59E0B")
	muted   = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	labelStyle = lipgloss.NewStyle().
			Foreground(muted).
			Width(26)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	missingStyle = lipgloss.NewStyle().
			Foreground(muted).
			Italic(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(warning).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(success)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)
)

// TextHandler renders styled terminal output
type TextHandler struct {
	w io.Writer
}

func NewTextHandler(w io.Writer) *TextHandler {
	return &TextHandler{w: w}
}

func (h *TextHandler) Format() string { return "text" }

func (h *TextHandler) DisplaySummary(_ context.Context, p projection.Projection, files []string) error {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(p.Company))
	sb.WriteString("\n")

	for _, sec := range keyMetrics(p) {
		value := valueStyle.Render(sec.Value.Text)
		if sec.Value.Missing {
			value = missingStyle.Render(sec.Value.Text)
		}
		sb.WriteString(labelStyle.Render(sec.Key))
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	if n := p.Placeholders(); n > 0 {
		sb.WriteString(warnStyle.Render(fmt.Sprintf("%d section(s) lack data and were rendered as placeholders", n)))
		sb.WriteString("\n")
	}
	for _, f := range files {
		sb.WriteString(okStyle.Render("✓ " + f))
		sb.WriteString("\n")
	}

	_, err := fmt.Fprintln(h.w, panelStyle.Render(strings.TrimRight(sb.String(), "\n")))
	return err
}

func (h *TextHandler) DisplayHistory(_ context.Context, runs []*models.ReportRun, stats *models.RunStats) error {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Report History"))
	sb.WriteString("\n")

	if len(runs) == 0 {
		sb.WriteString(missingStyle.Render("No archived runs"))
		sb.WriteString("\n")
	}
	for _, run := range runs {
		sb.WriteString(fmt.Sprintf("%s  %-24s %8s users  %12s/yr  payback %-12s  %s\n",
			run.CreatedAt.Format("2006-01-02 15:04"),
			truncate(run.CompanyName, 24),
			numeric.FormatCount(run.TotalUsers),
			numeric.FormatCurrency(run.AnnualValue),
			numeric.FormatMonths(run.PaybackMonths),
			strings.Join(run.Formats, ","),
		))
	}

	if stats != nil {
		sb.WriteString("\n")
		sb.WriteString(labelStyle.Render(fmt.Sprintf("Last %d days", stats.PeriodDays)))
		sb.WriteString(valueStyle.Render(fmt.Sprintf("%d runs, avg %s/yr, avg payback %s",
			stats.TotalRuns,
			numeric.FormatCurrency(&stats.AvgAnnualValue),
			numeric.FormatMonths(stats.AvgPaybackMonths))))
		sb.WriteString("\n")
	}

	_, err := fmt.Fprint(h.w, sb.String())
	return err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
