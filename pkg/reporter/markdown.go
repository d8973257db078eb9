package reporter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/opscart/avd-business-case/pkg/projection"
)

// GenerateMarkdown writes the projection as GitHub-flavoured markdown
func GenerateMarkdown(p projection.Projection, writer io.Writer) error {
	w := bufio.NewWriter(writer)

	fmt.Fprintf(w, "# %s\n\n", escapeMarkdown(p.Title))
	fmt.Fprintf(w, "**%s**", escapeMarkdown(p.Company))
	if p.GeneratedAt != "" {
		fmt.Fprintf(w, " · %s", p.GeneratedAt)
	}
	fmt.Fprint(w, "\n\n")

	for _, part := range p.Parts {
		writePartMarkdown(w, part)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

func writePartMarkdown(w io.Writer, part projection.Part) {
	fmt.Fprintf(w, "## %s\n\n", escapeMarkdown(part.Title))
	if part.Placeholder {
		fmt.Fprintf(w, "_%s_\n\n", escapeMarkdown(part.Message))
		return
	}

	inList := false
	endList := func() {
		if inList {
			fmt.Fprintln(w)
			inList = false
		}
	}

	for _, sec := range part.Sections {
		switch sec.Kind {
		case projection.KindHeading:
			endList()
			if sec.Heading == part.Title {
				continue
			}
			fmt.Fprintf(w, "### %s\n\n", escapeMarkdown(sec.Heading))
		case projection.KindKeyValue:
			fmt.Fprintf(w, "- **%s:** %s\n", escapeMarkdown(sec.Key), escapeMarkdown(sec.Value.Text))
			inList = true
		case projection.KindTable:
			endList()
			if sec.Table != nil {
				writeTableMarkdown(w, sec.Table)
			}
		case projection.KindSpacer:
			endList()
		}
	}
	endList()
}

func writeTableMarkdown(w io.Writer, t *projection.Table) {
	if len(t.Header) == 0 {
		return
	}
	cells := make([]string, len(t.Header))
	for i, h := range t.Header {
		cells[i] = escapeMarkdown(h)
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))

	for i := range cells {
		if i == 0 {
			cells[i] = "---"
		} else {
			cells[i] = "---:"
		}
	}
	fmt.Fprintf(w, "|%s|\n", strings.Join(cells, "|"))

	for _, row := range t.Rows {
		for i := range cells {
			cells[i] = ""
			if i < len(row) {
				cells[i] = escapeMarkdown(row[i].Text)
			}
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	}
	fmt.Fprintln(w)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"<", "&lt;",
	">", "&gt;",
	"\n", " ",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
