package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// brlNumFmt displays numeric cost cells as currency.
const brlNumFmt = `"R$" #,##0.00`

// GenerateExcel writes the export rows to a single "Produtos" sheet with a
// header row followed by one row per product, and returns the xlsx bytes.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := ExportSheetName

	// Rename default sheet.
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through E).
	columns := []string{"A", "B", "C", "D", "E"}
	lastCol := columns[len(columns)-1]

	widths := []float64{40, 24, 18, 10, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	// Column header style: bold, white text, charcoal background, centered.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	numFmt := brlNumFmt
	costStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Border:       thinBorders(),
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return nil, fmt.Errorf("create cost style: %w", err)
	}

	// ── Row 1: Column Headers ───────────────────────────────────────────

	for i, h := range ExportColumns {
		if err := f.SetCellValue(sheetName, columns[i]+"1", h); err != nil {
			return nil, fmt.Errorf("set header %s: %w", h, err)
		}
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	// ── Data Rows (starting row 2) ──────────────────────────────────────

	for i, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", i+2)

		for j, v := range r.Values() {
			if s, ok := v.(string); ok {
				v = sanitizeExcelCell(s)
			}
			if err := f.SetCellValue(sheetName, columns[j]+rowStr, v); err != nil {
				return nil, fmt.Errorf("set cell %s%s: %w", columns[j], rowStr, err)
			}
		}

		if err := f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, rowStyle); err != nil {
			return nil, fmt.Errorf("style row %s: %w", rowStr, err)
		}
		if err := f.SetCellStyle(sheetName, "C"+rowStr, "C"+rowStr, costStyle); err != nil {
			return nil, fmt.Errorf("style cost %s: %w", rowStr, err)
		}
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
