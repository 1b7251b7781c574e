package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"margincalc/services"
)

// buildExportData serializes the catalog view selected by the query string.
func buildExportData(catalog *services.Catalog, e *core.RequestEvent) services.ExportData {
	filter, sort := parseViewQuery(e.Request.URL.Query())
	return services.BuildExportData(catalog.View(filter, sort), time.Now())
}

func sendFile(e *core.RequestEvent, contentType, filename string, body []byte) error {
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	_, err := e.Response.Write(body)
	return err
}

// HandleProductExportExcel returns a handler that downloads the current view as produtos.xlsx.
func HandleProductExportExcel(catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		xlsxBytes, err := services.GenerateExcel(buildExportData(catalog, e))
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Falha ao exportar para Excel")
		}

		return sendFile(e, services.ExcelContentType, services.ExcelFileName, xlsxBytes)
	}
}

// HandleProductExportPDF returns a handler that downloads the current view as produtos.pdf.
func HandleProductExportPDF(catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		pdfBytes, err := services.GeneratePDF(buildExportData(catalog, e))
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Falha ao exportar para PDF")
		}

		return sendFile(e, services.PDFContentType, services.PDFFileName, pdfBytes)
	}
}
