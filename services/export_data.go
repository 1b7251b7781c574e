package services

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ExportSheetName   = "Produtos"
	ExcelFileName     = "produtos.xlsx"
	PDFFileName       = "produtos.pdf"
	ExcelContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	PDFContentType    = "application/pdf"
	exportTitle       = "Produtos"
	exportDateDisplay = "02/01/2006 15:04"
)

// ExportColumns are the spreadsheet headers, in column order.
var ExportColumns = []string{"NOME / DESCRIÇÃO", "FABRICANTE", "CUSTO RECEBIDO", "IPI (%)", "DATA"}

// ExportRow is one product as it appears in an export.
type ExportRow struct {
	Name         string
	Manufacturer string
	Cost         decimal.Decimal
	IPI          decimal.NullDecimal
	Date         string // dd/mm/yyyy
}

// Values returns the cell values in ExportColumns order. Cost and IPI stay
// numeric; an absent IPI becomes N/A.
func (r ExportRow) Values() []any {
	cost, _ := r.Cost.Float64()
	var ipi any = IPINotApplicable
	if r.IPI.Valid {
		ipi, _ = r.IPI.Decimal.Float64()
	}
	return []any{r.Name, r.Manufacturer, cost, ipi, r.Date}
}

// ExportData holds all data needed for export.
type ExportData struct {
	Title         string
	GeneratedDate string
	Rows          []ExportRow
	TotalCost     decimal.Decimal
}

// BuildExportData converts the current catalog view into export rows,
// keeping the view's order.
func BuildExportData(view []Product, now time.Time) ExportData {
	data := ExportData{
		Title:         exportTitle,
		GeneratedDate: now.Format(exportDateDisplay),
		Rows:          make([]ExportRow, 0, len(view)),
	}
	for _, p := range view {
		data.Rows = append(data.Rows, ExportRow{
			Name:         p.Name,
			Manufacturer: p.Manufacturer,
			Cost:         p.Cost,
			IPI:          p.IPI,
			Date:         FormatDateBR(p.Date),
		})
		data.TotalCost = data.TotalCost.Add(p.Cost)
	}
	return data
}
