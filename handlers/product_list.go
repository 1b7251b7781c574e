package handlers

import (
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"margincalc/services"
	"margincalc/templates"
)

// parseViewQuery reads the filter and sort from a /products query string.
// An unknown sort column means no sort.
func parseViewQuery(q url.Values) (services.FieldFilterSet, *services.SortSpec) {
	filter := services.FieldFilterSet{
		Name:         q.Get("name"),
		Manufacturer: q.Get("manufacturer"),
		Cost:         q.Get("cost"),
		IPI:          q.Get("ipi"),
		Date:         q.Get("date"),
	}

	key, ok := services.ParseSortKey(q.Get("sort"))
	if !ok {
		return filter, nil
	}
	order := services.SortAsc
	if q.Get("order") == string(services.SortDesc) {
		order = services.SortDesc
	}
	return filter, &services.SortSpec{Key: key, Order: order}
}

// HandleProductList renders the catalog view for the filter and sort in the
// query string.
func HandleProductList(catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter, sort := parseViewQuery(e.Request.URL.Query())

		data := templates.ProductListData{
			Products: catalog.View(filter, sort),
			Filter:   filter,
			Sort:     sort,
			Total:    catalog.Len(),
		}

		var component templ.Component
		if isHTMX(e) && e.Request.Header.Get("HX-Target") == "products" {
			component = templates.ProductListContent(data)
		} else {
			component = templates.ProductListPage(data, GetNavData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleHome sends the root path to the calculator tab.
func HandleHome() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.Redirect(http.StatusFound, "/calculator")
	}
}
