package collections_test

import (
	"testing"

	"margincalc/collections"
	"margincalc/services"
	"margincalc/testhelpers"
)

func TestSeedProducts_CreatesData(t *testing.T) {
	catalog := services.NewCatalog()

	if err := collections.SeedProducts(catalog); err != nil {
		t.Fatalf("SeedProducts() error: %v", err)
	}

	products := catalog.All()
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	first := products[0]
	if first.Name != "SERINGA DESCARTÁVEL 5ML" {
		t.Errorf("name = %q, want %q", first.Name, "SERINGA DESCARTÁVEL 5ML")
	}
	if first.Manufacturer != "DESCARPACK" {
		t.Errorf("manufacturer = %q, want DESCARPACK", first.Manufacturer)
	}
	if first.IPIText() != "5" {
		t.Errorf("IPI = %q, want 5", first.IPIText())
	}
	if first.DateISO() != "2025-12-01" {
		t.Errorf("date = %q, want 2025-12-01", first.DateISO())
	}

	second := products[1]
	if second.IPI.Valid {
		t.Errorf("expected absent IPI on %q, got %s", second.Name, second.IPI.Decimal)
	}
	if second.CostText() != "0.25" {
		t.Errorf("cost = %q, want 0.25", second.CostText())
	}
	if first.ID == second.ID {
		t.Errorf("seeded products share ID %d", first.ID)
	}
}

func TestSeedProducts_Idempotent(t *testing.T) {
	catalog := testhelpers.NewTestCatalog(t)
	before := catalog.Len()

	if err := collections.SeedProducts(catalog); err != nil {
		t.Fatalf("second SeedProducts() error: %v", err)
	}
	if catalog.Len() != before {
		t.Errorf("expected %d products after reseed, got %d", before, catalog.Len())
	}
}
