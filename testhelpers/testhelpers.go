// Package testhelpers provides utilities for testing the catalog handlers.
package testhelpers

import (
	"strings"
	"testing"

	"margincalc/collections"
	"margincalc/services"
)

// NewTestCatalog creates a catalog holding the seed products.
func NewTestCatalog(t *testing.T) *services.Catalog {
	t.Helper()

	catalog := services.NewCatalog()
	if err := collections.SeedProducts(catalog); err != nil {
		t.Fatalf("failed to seed test catalog: %v", err)
	}

	return catalog
}

// CreateTestProduct adds a product with the given name and manufacturer and returns it.
// A non-empty ipi marks the tax as applicable.
func CreateTestProduct(t *testing.T, catalog *services.Catalog, name, manufacturer, cost, ipi string) services.Product {
	t.Helper()

	p, err := catalog.Add(services.ProductInput{
		Name:         name,
		Manufacturer: manufacturer,
		Cost:         cost,
		Date:         "2025-12-10",
		HasIPI:       ipi != "",
		IPI:          ipi,
	})
	if err != nil {
		t.Fatalf("failed to add test product: %v", err)
	}

	return p
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the specified fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q", frag)
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
