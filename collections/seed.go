package collections

import (
	"fmt"
	"log"

	"margincalc/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type productDef struct {
	name         string
	manufacturer string
	cost         string
	date         string
	ipi          string // empty when IPI does not apply
}

// ── Seed data ────────────────────────────────────────────────────────────

var seedProducts = []productDef{
	{
		name:         "Seringa Descartável 5ml",
		manufacturer: "Descarpack",
		cost:         "0.80",
		date:         "2025-12-01",
		ipi:          "5",
	},
	{
		name:         "Luva de Procedimento (M)",
		manufacturer: "Talge",
		cost:         "0.25",
		date:         "2025-12-02",
	},
}

// SeedProducts adds the sample products to an empty catalog. It is a no-op
// when the catalog already holds records.
func SeedProducts(catalog *services.Catalog) error {
	if catalog.Len() > 0 {
		return nil // already seeded
	}

	log.Println("seed: catalog is empty – inserting sample products …")

	for _, def := range seedProducts {
		p, err := catalog.Add(services.ProductInput{
			Name:         def.name,
			Manufacturer: def.manufacturer,
			Cost:         def.cost,
			Date:         def.date,
			HasIPI:       def.ipi != "",
			IPI:          def.ipi,
		})
		if err != nil {
			return fmt.Errorf("seed: could not add %q: %w", def.name, err)
		}
		log.Printf("seed: added product %d (%s)", p.ID, p.Name)
	}

	return nil
}
