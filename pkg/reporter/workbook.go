package reporter

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/opscart/avd-business-case/pkg/numeric"
	"github.com/opscart/avd-business-case/pkg/projection"
)

const (
	defaultFirstColumnWidth = 34.0
	defaultColumnWidth      = 18.0
	maxSheetNameLength      = 31
	maxColumnWidth          = 255.0
)

// sheetGrid is one sheet laid out before anything touches the workbook
type sheetGrid struct {
	name   string
	rows   [][]interface{}
	bold   map[int]bool
	widths []float64
}

// RenderWorkbook writes one sheet per part. A part that cannot be laid
// out or written becomes a single-cell sheet; the rest of the workbook is kept.
func RenderWorkbook(p projection.Projection, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("failed to close workbook", "error", err)
		}
	}()

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14, Color: "003366"}})
	if err != nil {
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	used := make(map[string]bool)
	for i, part := range p.Parts {
		grid := layoutSheet(part, logger)
		grid.name = uniqueSheetName(grid.name, used)

		if i == 0 {
			if err := f.SetSheetName("Sheet1", grid.name); err != nil {
				return nil, fmt.Errorf("failed to name sheet %q: %w", grid.name, err)
			}
		} else if _, err := f.NewSheet(grid.name); err != nil {
			return nil, fmt.Errorf("failed to add sheet %q: %w", grid.name, err)
		}
		if err := writeSheet(f, grid, part, titleStyle, boldStyle, logger); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// layoutSheet turns a part into rows. Numbers stay raw.
func layoutSheet(part projection.Part, logger *slog.Logger) (grid sheetGrid) {
	name := part.Name
	if name == "" {
		name = part.Title
	}
	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn("sheet layout failed, writing notice instead", "sheet", name, "error", rec)
			grid = messageGrid(name, fmt.Sprintf("%s could not be generated", name))
		}
	}()

	if part.Placeholder {
		msg := part.Message
		if msg == "" {
			msg = name + " not available"
		}
		return messageGrid(name, msg)
	}

	grid = sheetGrid{name: name, bold: map[int]bool{}, widths: part.ColumnWidths}
	grid.rows = append(grid.rows, []interface{}{part.Title})
	for _, sec := range part.Sections {
		switch sec.Kind {
		case projection.KindHeading:
			if sec.Heading == part.Title {
				continue
			}
			grid.rows = append(grid.rows, nil, []interface{}{sec.Heading})
			grid.bold[len(grid.rows)] = true
		case projection.KindKeyValue:
			grid.rows = append(grid.rows, []interface{}{sec.Key, cellValue(sec.Value)})
		case projection.KindTable:
			if sec.Table == nil {
				continue
			}
			header := make([]interface{}, len(sec.Table.Header))
			for i, h := range sec.Table.Header {
				header[i] = h
			}
			grid.bold[len(grid.rows)+1] = true
			grid.rows = append(grid.rows, header)
			for _, row := range sec.Table.Rows {
				values := make([]interface{}, len(row))
				for i, c := range row {
					values[i] = cellValue(c)
				}
				grid.rows = append(grid.rows, values)
			}
		case projection.KindSpacer:
			grid.rows = append(grid.rows, nil)
		}
	}
	return grid
}

func messageGrid(name, msg string) sheetGrid {
	return sheetGrid{name: name, rows: [][]interface{}{{msg}}, bold: map[int]bool{}}
}

func cellValue(c projection.Cell) interface{} {
	if c.Number != nil && !c.Missing {
		return *c.Number
	}
	return c.Text
}

// writeSheet writes a laid-out grid. If excelize rejects it the partial
// rows are removed and a notice is written in their place.
func writeSheet(f *excelize.File, g sheetGrid, part projection.Part, titleStyle, boldStyle int, logger *slog.Logger) error {
	err := safeWriteGrid(f, g, titleStyle, boldStyle)
	if err == nil {
		return nil
	}
	label := part.Name
	if label == "" {
		label = g.name
	}
	logger.Warn("sheet write failed, writing notice instead", "sheet", g.name, "error", err)

	for range g.rows {
		if err := f.RemoveRow(g.name, 1); err != nil {
			return fmt.Errorf("failed to clear %q: %w", g.name, err)
		}
	}
	notice := messageGrid(g.name, fmt.Sprintf("%s could not be generated", label))
	if err := safeWriteGrid(f, notice, titleStyle, boldStyle); err != nil {
		return fmt.Errorf("failed to write notice for %q: %w", g.name, err)
	}
	return nil
}

func safeWriteGrid(f *excelize.File, g sheetGrid, titleStyle, boldStyle int) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic writing %q: %v", g.name, rec)
		}
	}()
	return writeGrid(f, g, titleStyle, boldStyle)
}

func writeGrid(f *excelize.File, g sheetGrid, titleStyle, boldStyle int) error {
	widest := 1
	for r, row := range g.rows {
		if len(row) > widest {
			widest = len(row)
		}
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("failed to address cell in %q: %w", g.name, err)
			}
			if err := f.SetCellValue(g.name, cell, v); err != nil {
				return fmt.Errorf("failed to set %s!%s: %w", g.name, cell, err)
			}
		}
	}

	if len(g.rows) > 1 {
		if err := f.SetCellStyle(g.name, "A1", "A1", titleStyle); err != nil {
			return fmt.Errorf("failed to style %q: %w", g.name, err)
		}
	}
	last, err := excelize.ColumnNumberToName(widest)
	if err != nil {
		return fmt.Errorf("failed to address column in %q: %w", g.name, err)
	}
	for row := range g.bold {
		if err := f.SetCellStyle(g.name, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", last, row), boldStyle); err != nil {
			return fmt.Errorf("failed to style %q: %w", g.name, err)
		}
	}

	for c := 1; c <= widest; c++ {
		width := defaultColumnWidth
		if c == 1 {
			width = defaultFirstColumnWidth
		}
		if c-1 < len(g.widths) && g.widths[c-1] > 0 {
			width = g.widths[c-1]
		}
		if !numeric.IsFinite(width) || width > maxColumnWidth {
			return fmt.Errorf("column %d width %v in %q exceeds %v", c, width, g.name, maxColumnWidth)
		}
		col, err := excelize.ColumnNumberToName(c)
		if err != nil {
			return fmt.Errorf("failed to address column in %q: %w", g.name, err)
		}
		if err := f.SetColWidth(g.name, col, col, width); err != nil {
			return fmt.Errorf("failed to size column %s in %q: %w", col, g.name, err)
		}
	}
	return nil
}

// uniqueSheetName applies the workbook naming rules
func uniqueSheetName(name string, used map[string]bool) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '-'
		}
		return r
	}, name)
	if strings.TrimSpace(name) == "" {
		name = "Sheet"
	}
	if r := []rune(name); len(r) > maxSheetNameLength {
		name = string(r[:maxSheetNameLength])
	}

	base := name
	for i := 2; used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		r := []rune(base)
		if len(r)+len(suffix) > maxSheetNameLength {
			r = r[:maxSheetNameLength-len(suffix)]
		}
		name = string(r) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}
