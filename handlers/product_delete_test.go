package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"margincalc/testhelpers"
)

func TestHandleProductDeleteDialog(t *testing.T) {
	catalog := testhelpers.NewTestCatalog(t)

	req := httptest.NewRequest(http.MethodGet, "/products/2/delete", nil)
	req.SetPathValue("id", "2")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(req, rec)

	if err := HandleProductDeleteDialog(catalog)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Tem certeza que deseja excluir este produto?",
		"LUVA DE PROCEDIMENTO (M)",
		`hx-delete="/products/2?confirm=true"`,
		`hx-delete="/products/2"`)
	if catalog.Len() != 2 {
		t.Error("showing the dialog must not delete anything")
	}
}

func TestHandleProductDelete(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantLen   int
		wantToast string
	}{
		{"confirmed", "/products/1?confirm=true", 1, "Produto excluído com sucesso"},
		{"declined", "/products/1", 2, "Exclusão cancelada"},
		{"explicit decline", "/products/1?confirm=false", 2, "Exclusão cancelada"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := testhelpers.NewTestCatalog(t)

			req := httptest.NewRequest(http.MethodDelete, tt.target, nil)
			req.SetPathValue("id", "1")
			req.Header.Set("HX-Request", "true")
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(req, rec)

			if err := HandleProductDelete(catalog)(e); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/products")
			if catalog.Len() != tt.wantLen {
				t.Errorf("expected %d products, got %d", tt.wantLen, catalog.Len())
			}
			if !strings.Contains(rec.Header().Get("HX-Trigger"), tt.wantToast) {
				t.Errorf("expected toast %q, got %s", tt.wantToast, rec.Header().Get("HX-Trigger"))
			}
			if _, ok := catalog.Get(2); !ok {
				t.Error("unrelated product was removed")
			}
		})
	}
}

func TestHandleProductDelete_NotFound(t *testing.T) {
	catalog := testhelpers.NewTestCatalog(t)

	req := httptest.NewRequest(http.MethodDelete, "/products/99?confirm=true", nil)
	req.SetPathValue("id", "99")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(req, rec)

	if err := HandleProductDelete(catalog)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
	if catalog.Len() != 2 {
		t.Errorf("expected 2 products, got %d", catalog.Len())
	}
}

func TestHandleProductDelete_BadID(t *testing.T) {
	catalog := testhelpers.NewTestCatalog(t)

	req := httptest.NewRequest(http.MethodDelete, "/products/abc", nil)
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(req, rec)

	if err := HandleProductDelete(catalog)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}
