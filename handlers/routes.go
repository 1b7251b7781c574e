package handlers

import (
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"

	"margincalc/services"
)

// RegisterRoutes binds the calculator and catalog pages to r.
func RegisterRoutes(r *router.Router[*core.RequestEvent], catalog *services.Catalog) {
	r.BindFunc(NavMiddleware())

	// ── Calculator ───────────────────────────────────────────
	r.GET("/calculator", HandleCalculator())
	r.POST("/calculator", HandleCalculatorCompute())

	// ── Product export (before /products/{id}/*) ─────────────
	r.GET("/products/export/excel", HandleProductExportExcel(catalog))
	r.GET("/products/export/pdf", HandleProductExportPDF(catalog))

	// ── Product CRUD ─────────────────────────────────────────
	r.GET("/products", HandleProductList(catalog))
	r.GET("/products/new", HandleProductNew())
	r.POST("/products", HandleProductSave(catalog))
	r.GET("/products/{id}/edit", HandleProductEdit(catalog))
	r.POST("/products/{id}", HandleProductUpdate(catalog))
	r.GET("/products/{id}/delete", HandleProductDeleteDialog(catalog))
	r.DELETE("/products/{id}", HandleProductDelete(catalog))

	// Redirect home to the calculator
	r.GET("/{$}", HandleHome())
}
