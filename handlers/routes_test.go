package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"

	"margincalc/services"
	"margincalc/testhelpers"
)

// newTestMux builds the registered routes into a plain http.Handler.
func newTestMux(t *testing.T, catalog *services.Catalog) http.Handler {
	t.Helper()

	r := router.NewRouter(func(w http.ResponseWriter, req *http.Request) (*core.RequestEvent, router.EventCleanupFunc) {
		e := &core.RequestEvent{}
		e.Response = w
		e.Request = req
		return e, nil
	})
	RegisterRoutes(r, catalog)

	mux, err := r.BuildMux()
	if err != nil {
		t.Fatalf("BuildMux() error = %v", err)
	}
	return mux
}

func serve(mux http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_ProductLifecycle(t *testing.T) {
	catalog := testhelpers.NewTestCatalog(t)
	mux := newTestMux(t, catalog)

	// Add
	rec := serve(mux, http.MethodPost, "/products",
		productForm("Gaze Estéril", "Cremer", "1,20", "2026-01-05", "sim", "12.5"))
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/products")

	// Update
	rec = serve(mux, http.MethodPost, "/products/3",
		productForm("Gaze Estéril 7,5cm", "Cremer", "1,35", "2026-01-05", "nao", ""))
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/products")

	// View
	rec = serve(mux, http.MethodGet, "/products?name=gaze", nil)
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "GAZE ESTÉRIL 7,5CM", "R$\u00a01,35", "N/A")

	// Delete dialog, then confirm
	rec = serve(mux, http.MethodGet, "/products/3/delete", nil)
	testhelpers.AssertHTMLContains(t, rec.Body.String(), services.DeletePrompt)

	rec = serve(mux, http.MethodDelete, "/products/3?confirm=true", nil)
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/products")
	if _, ok := catalog.Get(3); ok {
		t.Error("expected product 3 to be deleted")
	}
}

func TestRoutes_ExportNotShadowedByID(t *testing.T) {
	mux := newTestMux(t, testhelpers.NewTestCatalog(t))

	rec := serve(mux, http.MethodGet, "/products/export/excel", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != services.ExcelContentType {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRoutes_NavMiddlewareSetsTab(t *testing.T) {
	mux := newTestMux(t, testhelpers.NewTestCatalog(t))

	req := httptest.NewRequest(http.MethodGet, "/products/new", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	testhelpers.AssertHTMLContains(t, rec.Body.String(), `href="/products" class="active"`)
}

func TestRoutes_HomeRedirect(t *testing.T) {
	mux := newTestMux(t, testhelpers.NewTestCatalog(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/calculator" {
		t.Errorf("expected redirect to /calculator, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}
