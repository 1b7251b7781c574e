package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"margincalc/services"
	"margincalc/testhelpers"
)

func productForm(name, manufacturer, cost, date, hasIPI, ipi string) url.Values {
	form := url.Values{}
	form.Set("name", name)
	form.Set("manufacturer", manufacturer)
	form.Set("cost", cost)
	form.Set("date", date)
	form.Set("has_ipi", hasIPI)
	form.Set("ipi", ipi)
	return form
}

func postProductForm(path string, form url.Values) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return req, httptest.NewRecorder()
}

func TestHandleProductNew_GET(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products/new", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(req, rec)

	if err := HandleProductNew()(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	today := time.Now().Format(services.DateLayout)
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Novo Produto", `action="/products"`, "Possui IPI?",
		`name="date" value="`+today+`"`)
}

func TestHandleProductSave_Valid(t *testing.T) {
	catalog := testhelpers.NewTestCatalog(t)

	req, rec := postProductForm("/products",
		productForm("agulha 25x7", "descarpack", "0,10", "2025-12-05", "sim", "0"))
	e := newTestRequestEvent(req, rec)

	if err := HandleProductSave(catalog)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/products")

	p, ok := catalog.Get(3)
	if !ok {
		t.Fatal("expected product 3 to be created")
	}
	if p.Name != "AGULHA 25X7" || p.Manufacturer != "DESCARPACK" {
		t.Errorf("stored names not upper-cased: %q / %q", p.Name, p.Manufacturer)
	}
	if p.CostText() != "0.1" || p.IPIText() != "0" {
		t.Errorf("cost/IPI = %s/%s, want 0.1/0", p.CostText(), p.IPIText())
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "success") {
		t.Error("expected a success toast")
	}
}

func TestHandleProductSave_NonHTMXRedirects(t *testing.T) {
	catalog := testhelpers.NewTestCatalog(t)

	req, rec := postProductForm("/products",
		productForm("Gaze", "Cremer", "1.5", "2025-12-05", "nao", ""))
	req.Header.Del("HX-Request")
	e := newTestRequestEvent(req, rec)

	if err := HandleProductSave(catalog)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Errorf("expected status 302, got %d", rec.Code)
	}
	if catalog.Len() != 3 {
		t.Errorf("expected 3 products, got %d", catalog.Len())
	}
}

func TestHandleProductSave_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		form      url.Values
		toast     string
		fieldText string
	}{
		{
			"missing name",
			productForm("", "Talge", "1", "2025-12-05", "nao", ""),
			services.MsgInvalidProduct,
			"Informe o nome do produto",
		},
		{
			"bad cost",
			productForm("Luva", "Talge", "abc", "2025-12-05", "nao", ""),
			services.MsgInvalidProduct,
			"Informe um custo válido",
		},
		{
			"missing date",
			productForm("Luva", "Talge", "1", "", "nao", ""),
			services.MsgInvalidProduct,
			"Informe uma data válida",
		},
		{
			"IPI applicable but blank",
			productForm("Luva", "Talge", "1", "2025-12-05", "sim", ""),
			services.MsgMissingIPI,
			"Informe um IPI válido",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := testhelpers.NewTestCatalog(t)

			req, rec := postProductForm("/products", tt.form)
			e := newTestRequestEvent(req, rec)

			if err := HandleProductSave(catalog)(e); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			// Should re-render form, not redirect
			if rec.Header().Get("HX-Redirect") != "" {
				t.Error("expected no HX-Redirect for validation error")
			}
			if !strings.Contains(rec.Header().Get("HX-Trigger"), tt.toast) {
				t.Errorf("expected toast %q, got %s", tt.toast, rec.Header().Get("HX-Trigger"))
			}
			testhelpers.AssertHTMLContains(t, rec.Body.String(), tt.fieldText)
			if catalog.Len() != 2 {
				t.Errorf("rejected submission changed the catalog: %d products", catalog.Len())
			}
		})
	}
}

func TestHandleProductEdit_PrefillsRecord(t *testing.T) {
	catalog := testhelpers.NewTestCatalog(t)

	req := httptest.NewRequest(http.MethodGet, "/products/1/edit", nil)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(req, rec)

	if err := HandleProductEdit(catalog)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Editar Produto", `action="/products/1"`,
		`name="name" value="SERINGA DESCARTÁVEL 5ML"`,
		`name="cost" value="0.8"`,
		`name="date" value="2025-12-01"`,
		`<option value="sim" selected>`,
		`name="ipi" value="5"`)
}

func TestHandleProductEdit_NotFound(t *testing.T) {
	catalog := testhelpers.NewTestCatalog(t)

	req := httptest.NewRequest(http.MethodGet, "/products/99/edit", nil)
	req.SetPathValue("id", "99")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(req, rec)

	if err := HandleProductEdit(catalog)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandleProductUpdate_Valid(t *testing.T) {
	catalog := testhelpers.NewTestCatalog(t)

	req, rec := postProductForm("/products/2",
		productForm("Luva Nitrílica (G)", "Supermax", "0.45", "2025-12-20", "sim", "3,5"))
	req.SetPathValue("id", "2")
	e := newTestRequestEvent(req, rec)

	if err := HandleProductUpdate(catalog)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/products")

	p, _ := catalog.Get(2)
	if p.Name != "LUVA NITRÍLICA (G)" || p.Manufacturer != "SUPERMAX" {
		t.Errorf("record not replaced: %+v", p)
	}
	if p.IPIText() != "3.5" || p.DateISO() != "2025-12-20" {
		t.Errorf("IPI/date = %s/%s, want 3.5/2025-12-20", p.IPIText(), p.DateISO())
	}
	if catalog.Len() != 2 {
		t.Errorf("update changed the catalog size to %d", catalog.Len())
	}
}

func TestHandleProductUpdate_Invalid(t *testing.T) {
	catalog := testhelpers.NewTestCatalog(t)

	req, rec := postProductForm("/products/1",
		productForm("Seringa", "", "0.8", "2025-12-01", "sim", "5"))
	req.SetPathValue("id", "1")
	e := newTestRequestEvent(req, rec)

	if err := HandleProductUpdate(catalog)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Informe o fabricante", `action="/products/1"`)
	p, _ := catalog.Get(1)
	if p.Manufacturer != "DESCARPACK" {
		t.Errorf("rejected update changed the record: %+v", p)
	}
}

func TestHandleProductUpdate_UnknownID(t *testing.T) {
	catalog := testhelpers.NewTestCatalog(t)

	req, rec := postProductForm("/products/42",
		productForm("X", "Y", "1", "2025-12-01", "nao", ""))
	req.SetPathValue("id", "42")
	e := newTestRequestEvent(req, rec)

	if err := HandleProductUpdate(catalog)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Error("expected HX-Reswap: none")
	}
}

func TestProductID(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{"1", 1, true},
		{"0", 0, false},
		{"-3", -3, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.SetPathValue("id", tt.raw)
			e := newTestRequestEvent(req, httptest.NewRecorder())

			got, ok := productID(e)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("productID(%q) = %d, %v; want %d, %v", tt.raw, got, ok, tt.want, tt.ok)
			}
		})
	}
}
