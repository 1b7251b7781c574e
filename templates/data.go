// Package templates renders the calculator and catalog pages as templ
// components.
package templates

//go:generate templ generate

import (
	"net/url"
	"strconv"

	"margincalc/services"
)

// Navigation tabs.
const (
	TabCalculator = "calculator"
	TabProducts   = "products"
)

// NavData describes the tab bar.
type NavData struct {
	ActiveTab string
}

type navTab struct {
	id    string
	label string
	href  string
}

var navTabs = []navTab{
	{TabCalculator, "Calculadora", "/calculator"},
	{TabProducts, "Produtos", "/products"},
}

// CalculatorData is the calculator form text plus the computed results.
type CalculatorData struct {
	State  services.CalculatorState
	Result services.MarginResult
}

var freightTypes = []services.FreightType{services.FreightCIF, services.FreightFOB}

// driverVals is the hx-vals payload that makes an input authoritative.
func driverVals(driver services.Driver) string {
	return `{"driver":"` + string(driver) + `"}`
}

// ProductListData is one rendering of the catalog view.
type ProductListData struct {
	Products []services.Product
	Filter   services.FieldFilterSet
	Sort     *services.SortSpec
	Total    int // catalog size before filtering
}

type column struct {
	key   services.SortKey
	label string
	param string
	value func(services.FieldFilterSet) string
}

var productColumns = []column{
	{services.SortByName, "Nome / Descrição", "name", func(f services.FieldFilterSet) string { return f.Name }},
	{services.SortByManufacturer, "Fabricante", "manufacturer", func(f services.FieldFilterSet) string { return f.Manufacturer }},
	{services.SortByCost, "Custo Recebido", "cost", func(f services.FieldFilterSet) string { return f.Cost }},
	{services.SortByIPI, "IPI (%)", "ipi", func(f services.FieldFilterSet) string { return f.IPI }},
	{services.SortByDate, "Data", "date", func(f services.FieldFilterSet) string { return f.Date }},
}

// filterID is stable across swaps so htmx can restore focus to the input
// being typed in.
func (c column) filterID() string {
	return "filter-" + c.param
}

func (c column) sortURL(data ProductListData) string {
	next := services.NextSort(data.Sort, c.key)
	return ProductsURL("/products", data.Filter, &next)
}

// ProductsQuery encodes a filter and sort as /products query parameters.
func ProductsQuery(filter services.FieldFilterSet, sort *services.SortSpec) url.Values {
	q := url.Values{}
	for _, c := range productColumns {
		if v := c.value(filter); v != "" {
			q.Set(c.param, v)
		}
	}
	if sort != nil {
		q.Set("sort", string(sort.Key))
		q.Set("order", string(sort.Order))
	}
	return q
}

// ProductsURL returns path with the filter and sort appended.
func ProductsURL(path string, filter services.FieldFilterSet, sort *services.SortSpec) string {
	if q := ProductsQuery(filter, sort).Encode(); q != "" {
		return path + "?" + q
	}
	return path
}

func countText(data ProductListData) string {
	return itoa(int64(len(data.Products))) + " de " + itoa(int64(data.Total)) + " produtos"
}

// ProductFormData drives both the add and the edit form.
type ProductFormData struct {
	ID     int64 // zero for a new product
	Input  services.ProductInput
	Errors map[string]string // keyed by ProductInput field name
}

// IsEdit reports whether the form edits an existing product.
func (d ProductFormData) IsEdit() bool {
	return d.ID != 0
}

func (d ProductFormData) action() string {
	if d.IsEdit() {
		return "/products/" + itoa(d.ID)
	}
	return "/products"
}

func (d ProductFormData) title() string {
	if d.IsEdit() {
		return "Editar Produto"
	}
	return "Novo Produto"
}

// DeleteDialogData is the product awaiting a delete confirmation.
type DeleteDialogData struct {
	Product services.Product
	Prompt  string
}

func productPath(id int64) string {
	return "/products/" + itoa(id)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
