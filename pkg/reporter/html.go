package reporter

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/opscart/avd-business-case/pkg/projection"
)

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} - {{.Company}}</title>
<style>
  :root { --azure: #0078d4; --azure-dark: #004e8c; --ink: #1b1b1f; --muted: #605e5c; --rule: #edebe9; }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { font: 15px/1.55 "Segoe UI", system-ui, sans-serif; color: var(--ink); background: #f3f2f1; padding: 24px; }
  main { max-width: 1080px; margin: 0 auto; background: #fff; border: 1px solid var(--rule); }
  header { background: var(--azure); border-bottom: 6px solid var(--azure-dark); color: #fff; padding: 36px 40px; }
  header h1 { font-size: 2em; font-weight: 600; }
  header p { opacity: .9; }
  .cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(210px, 1fr)); gap: 16px; padding: 28px 40px; border-bottom: 1px solid var(--rule); }
  .card { border-left: 4px solid var(--azure); padding: 12px 16px; background: #faf9f8; }
  .card span { display: block; font-size: .78em; letter-spacing: .08em; text-transform: uppercase; color: var(--muted); }
  .card strong { font-size: 1.7em; font-weight: 600; }
  .card.missing { border-left-color: #a19f9d; }
  .card.missing strong { color: #a19f9d; }
  section { padding: 28px 40px; border-bottom: 1px solid var(--rule); }
  section h2 { color: var(--azure-dark); font-size: 1.3em; margin-bottom: 12px; }
  section h3 { font-size: 1em; margin: 18px 0 8px; }
  section ul { list-style: none; }
  section li { padding: 3px 0; }
  table { border-collapse: collapse; width: 100%; margin: 8px 0; }
  th { background: var(--azure-dark); color: #fff; font-weight: 600; text-align: left; padding: 8px 10px; }
  td { padding: 7px 10px; border-bottom: 1px solid var(--rule); }
  tr:nth-child(even) td { background: #faf9f8; }
  .placeholder { color: var(--muted); font-style: italic; }
  footer { padding: 18px; text-align: center; font-size: .85em; color: var(--muted); }
</style>
</head>
<body>
<main>
  <header>
    <h1>{{.Title}}</h1>
    <p>Prepared for {{.Company}}{{if .GeneratedAt}} &middot; {{.GeneratedAt}}{{end}}</p>
  </header>
{{- if .Cards}}
  <div class="cards">
  {{- range .Cards}}
    <div class="card{{if .Missing}} missing{{end}}"><span>{{.Label}}</span><strong>{{.Value}}</strong></div>
  {{- end}}
  </div>
{{- end}}
{{- range .Sections}}
  <section>
    <h2>{{.Title}}</h2>
    {{if .Placeholder}}<p class="placeholder">{{.Message}}</p>{{else}}{{.Body}}{{end}}
  </section>
{{- end}}
  <footer>Generated by avd-business-case</footer>
</main>
</body>
</html>
`

// summary metrics promoted to cards, in display order
var htmlCardKeys = []string{"Annual Savings", "Payback Period", "3-Year ROI", "Implementation Duration"}

type htmlCard struct {
	Label   string
	Value   string
	Missing bool
}

type htmlSection struct {
	Title       string
	Placeholder bool
	Message     string
	Body        template.HTML
}

type htmlReport struct {
	Title       string
	Company     string
	GeneratedAt string
	Cards       []htmlCard
	Sections    []htmlSection
}

var htmlTmpl = template.Must(template.New("report").Parse(htmlTemplate))

// GenerateHTML creates an HTML report. Part bodies go through the markdown
// renderer; raw HTML in projected text is escaped, never passed through.
func GenerateHTML(p projection.Projection, writer io.Writer) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	report := htmlReport{
		Title:       p.Title,
		Company:     p.Company,
		GeneratedAt: p.GeneratedAt,
		Cards:       summaryCards(p),
	}

	for _, part := range p.Parts {
		sec := htmlSection{Title: part.Title, Placeholder: part.Placeholder, Message: part.Message}
		if !part.Placeholder {
			var src bytes.Buffer
			writePartMarkdown(&src, part)
			body := bytes.TrimSpace(src.Bytes())
			// drop the "## Title" line, the template renders its own
			if i := bytes.IndexByte(body, '\n'); i >= 0 {
				body = body[i+1:]
			} else {
				body = nil
			}

			var out bytes.Buffer
			if err := md.Convert(body, &out); err != nil {
				return fmt.Errorf("failed to render section %q: %w", part.Name, err)
			}
			sec.Body = template.HTML(out.String())
		}
		report.Sections = append(report.Sections, sec)
	}

	if err := htmlTmpl.Execute(writer, report); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

func summaryCards(p projection.Projection) []htmlCard {
	summary, ok := p.Part(projection.PartSummary)
	if !ok || summary.Placeholder {
		return nil
	}
	values := make(map[string]projection.Cell)
	for _, sec := range summary.Sections {
		if sec.Kind == projection.KindKeyValue {
			values[sec.Key] = sec.Value
		}
	}

	var cards []htmlCard
	for _, key := range htmlCardKeys {
		cell, ok := values[key]
		if !ok {
			continue
		}
		cards = append(cards, htmlCard{
			Label:   strings.TrimSpace(key),
			Value:   cell.Text,
			Missing: cell.Missing,
		})
	}
	return cards
}
