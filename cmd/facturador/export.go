package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/infrastructure/spreadsheet"
)

func newExportCmd(env *cliEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta inventario o ventas (xlsx o CSV)",
		Long: `Exporta una planilla. El formato sale de la extensión de --out (.csv o .xlsx)
o de --formato; sin --out se escribe CSV en stdout.`,
		Example: `  facturador export inventario --out inventario.xlsx
  facturador export ventas --desde 2025-01-01 --hasta 2025-01-31 --out ventas.csv`,
	}

	inv := &cobra.Command{
		Use:   "inventario",
		Short: "Exporta el inventario con precio de venta calculado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := env.services(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			rows, err := svc.Ledger.ExportRows(cmd.Context())
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			w, done, err := output(cmd)
			if err != nil {
				return err
			}
			if err := spreadsheet.WriteInventory(w, format, rows); err != nil {
				_ = done()
				return err
			}
			return done()
		},
	}
	inv.Flags().String("out", "", "archivo de salida (por defecto stdout)")
	inv.Flags().String("formato", "", "xlsx o csv (por defecto según --out)")

	ventas := &cobra.Command{
		Use:   "ventas",
		Short: "Exporta las ventas del rango de fechas (inclusivo)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := dateRangeFlags(cmd)
			if err != nil {
				return err
			}
			svc, closeFn, err := env.services(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			rows, err := svc.Reports.ExportRows(cmd.Context(), r)
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			w, done, err := output(cmd)
			if err != nil {
				return err
			}
			if err := spreadsheet.WriteSales(w, format, rows); err != nil {
				_ = done()
				return err
			}
			return done()
		},
	}
	ventas.Flags().String("out", "", "archivo de salida (por defecto stdout)")
	ventas.Flags().String("formato", "", "xlsx o csv (por defecto según --out)")
	ventas.Flags().String("desde", "", "fecha inicial YYYY-MM-DD")
	ventas.Flags().String("hasta", "", "fecha final YYYY-MM-DD")

	cmd.AddCommand(inv, ventas)
	return cmd
}

// outputFormat --formato manda; si no, la extensión de --out. En stdout, CSV.
func outputFormat(cmd *cobra.Command) (spreadsheet.Format, error) {
	if name, _ := cmd.Flags().GetString("formato"); name != "" {
		f, ok := spreadsheet.ParseFormat(name)
		if !ok {
			return f, fmt.Errorf("formato no soportado %q, usa xlsx o csv", name)
		}
		return f, nil
	}
	path, _ := cmd.Flags().GetString("out")
	if path == "" || path == "-" {
		return spreadsheet.FormatCSV, nil
	}
	return spreadsheet.FormatFromName(path), nil
}

func dateRangeFlags(cmd *cobra.Command) (dto.DateRange, error) {
	from, _ := cmd.Flags().GetString("desde")
	to, _ := cmd.Flags().GetString("hasta")
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return dto.DateRange{}, fmt.Errorf("fecha inválida %q, usa YYYY-MM-DD", d)
		}
	}
	return dto.DateRange{From: from, To: to}, nil
}
