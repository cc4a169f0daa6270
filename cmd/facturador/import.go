package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/infrastructure/spreadsheet"
)

func newImportCmd(env *cliEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Importa planillas .xlsx o .csv (proveedores o compras)",
		Example: `  facturador import proveedores proveedores.xlsx
  facturador import compras compras.csv`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "proveedores <planilla>",
			Short: "Importa proveedores (tipo_comprobante, n_documento, razon_social)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				rows, err := spreadsheet.ParseSuppliers(f)
				if err != nil {
					return err
				}
				svc, closeFn, err := env.services(cmd.Context())
				if err != nil {
					return err
				}
				defer closeFn()
				res, err := svc.Suppliers.Import(cmd.Context(), rows)
				if err != nil {
					return err
				}
				printImport(cmd, "Proveedores importados", res)
				return nil
			},
		},
		&cobra.Command{
			Use:   "compras <planilla>",
			Short: "Importa compras agrupadas por fecha y actualiza el inventario",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				rows, err := spreadsheet.ParsePurchases(f)
				if err != nil {
					return err
				}
				svc, closeFn, err := env.services(cmd.Context())
				if err != nil {
					return err
				}
				defer closeFn()
				res, err := svc.Purchases.Import(cmd.Context(), rows)
				if err != nil {
					return err
				}
				printImport(cmd, "Compras importadas (resúmenes)", res)
				return nil
			},
		},
	)
	return cmd
}

func printImport(cmd *cobra.Command, label string, res *dto.ImportResult) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d (omitidas: %d)\n", label, res.Added, res.Skipped)
}
