package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"margincalc/services"
)

// newCalcCommand prints the calculator results for one set of inputs.
func newCalcCommand() *cobra.Command {
	var cost, margin, salePrice, freight string

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the sale price or margin for a cost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			driver := services.DriverMargin
			if cmd.Flags().Changed("sale-price") {
				driver = services.DriverSalePrice
			}

			state := services.ParseCalculatorState(cost, margin, salePrice, string(driver), freight)
			state, res := services.Reconcile(state)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Valor de custo:       %s\n", services.FormatBRL(res.Cost))
			fmt.Fprintf(out, "Preço de venda:       %s\n", services.FormatBRL(res.SalePrice))
			fmt.Fprintf(out, "Margem:               %s\n", services.FormatPercent(res.MarginPercent))
			fmt.Fprintf(out, "Margem sobre a venda: %s\n", services.FormatPercent(res.MarginOnSale))
			fmt.Fprintf(out, "Frete:                %s\n", state.Freight.Label())
			return nil
		},
	}

	cmd.Flags().StringVar(&cost, "cost", "", "received cost")
	cmd.Flags().StringVar(&margin, "margin", "", "desired margin in percent")
	cmd.Flags().StringVar(&salePrice, "sale-price", "", "desired sale price; derives the margin instead")
	cmd.Flags().StringVar(&freight, "freight", string(services.FreightCIF), "freight type (CIF or FOB)")
	cmd.MarkFlagsMutuallyExclusive("margin", "sale-price")
	_ = cmd.MarkFlagRequired("cost")

	return cmd
}

// newExportCommand writes a view of the seeded catalog to a file.
func newExportCommand(catalog *services.Catalog) *cobra.Command {
	var (
		out, format, sortKey string
		desc                 bool
		filter               services.FieldFilterSet
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the product catalog to xlsx or pdf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(out), ".")
			}

			var sort *services.SortSpec
			if sortKey != "" {
				key, ok := services.ParseSortKey(sortKey)
				if !ok {
					return fmt.Errorf("unknown sort column %q", sortKey)
				}
				sort = &services.SortSpec{Key: key, Order: services.SortAsc}
				if desc {
					sort.Order = services.SortDesc
				}
			}

			data := services.BuildExportData(catalog.View(filter, sort), time.Now())

			var (
				body []byte
				err  error
			)
			switch format {
			case "xlsx":
				body, err = services.GenerateExcel(data)
			case "pdf":
				body, err = services.GeneratePDF(data)
			default:
				return fmt.Errorf("unsupported format %q (want xlsx or pdf)", format)
			}
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			if err := os.WriteFile(out, body, 0o644); err != nil {
				return fmt.Errorf("export: write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d produtos exportados para %s\n", len(data.Rows), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", services.ExcelFileName, "output file")
	cmd.Flags().StringVar(&format, "format", "", "xlsx or pdf (default: from the output extension)")
	cmd.Flags().StringVar(&sortKey, "sort", "", "sort column: name, manufacturer, cost, ipi or date")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().StringVar(&filter.Name, "name", "", "filter by name")
	cmd.Flags().StringVar(&filter.Manufacturer, "manufacturer", "", "filter by manufacturer")
	cmd.Flags().StringVar(&filter.Cost, "cost", "", "filter by cost")
	cmd.Flags().StringVar(&filter.IPI, "ipi", "", "filter by IPI (N/A matches products without IPI)")
	cmd.Flags().StringVar(&filter.Date, "date", "", "filter by date (yyyy-mm-dd or dd/mm/yyyy)")

	return cmd
}
