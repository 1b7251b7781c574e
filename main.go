package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"margincalc/collections"
	"margincalc/handlers"
	"margincalc/services"
)

func main() {
	app := pocketbase.New()

	// The catalog lives in memory for the lifetime of the process.
	catalog := services.NewCatalog()
	if err := collections.SeedProducts(catalog); err != nil {
		log.Printf("Warning: seed data failed: %v", err)
	}

	app.RootCmd.AddCommand(newCalcCommand(), newExportCommand(catalog))

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		handlers.RegisterRoutes(se.Router, catalog)
		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
