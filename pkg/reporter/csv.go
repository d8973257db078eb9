package reporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/opscart/avd-business-case/pkg/projection"
)

var csvHeader = []string{"Part", "Section", "Item", "Metric", "Value", "Raw"}

// GenerateCSV flattens the projection to one row per value
func GenerateCSV(p projection.Projection, writer io.Writer) error {
	w := csv.NewWriter(writer)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, part := range p.Parts {
		if part.Placeholder {
			if err := w.Write([]string{part.Name, "", "", "", part.Message, ""}); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
			continue
		}

		section := part.Title
		for _, sec := range part.Sections {
			switch sec.Kind {
			case projection.KindHeading:
				section = sec.Heading
			case projection.KindKeyValue:
				if err := w.Write([]string{part.Name, section, sec.Key, "", sec.Value.Text, rawValue(sec.Value)}); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			case projection.KindTable:
				if sec.Table == nil {
					continue
				}
				for _, row := range sec.Table.Rows {
					if len(row) == 0 {
						continue
					}
					item := row[0].Text
					for i := 1; i < len(row); i++ {
						metric := ""
						if i < len(sec.Table.Header) {
							metric = sec.Table.Header[i]
						}
						if err := w.Write([]string{part.Name, section, item, metric, row[i].Text, rawValue(row[i])}); err != nil {
							return fmt.Errorf("failed to write CSV row: %w", err)
						}
					}
				}
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func rawValue(c projection.Cell) string {
	if c.Number == nil || c.Missing {
		return ""
	}
	return strconv.FormatFloat(*c.Number, 'f', -1, 64)
}
