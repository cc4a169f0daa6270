package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/sistema-facturador/internal/bootstrap"
	"github.com/jhoicas/sistema-facturador/pkg/config"
	"github.com/jhoicas/sistema-facturador/pkg/logger"
)

var version = "1.0.0"

// cliEnv configuración y logger resueltos antes de cada subcomando.
type cliEnv struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	env := &cliEnv{}
	root := &cobra.Command{
		Use:   "facturador",
		Short: "Facturador SUNAT - importación, exportación y servidor HTTP",
		Long: `Herramienta de línea de comandos del sistema facturador.

Lee la configuración de .env / config.env y variables de entorno
(STORE_DRIVER, STORE_KEY, STORE_FILE_DIR, DATABASE_URL, REDIS_URL, ...)
y opera sobre el mismo documento que usa el servidor HTTP.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			env.cfg = cfg
			env.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: cmd.ErrOrStderr()})
			return nil
		},
	}
	root.AddCommand(newImportCmd(env), newExportCmd(env), newServeCmd(env))
	return root
}

// services abre el store configurado; el llamador debe invocar closeFn.
func (e *cliEnv) services(ctx context.Context) (*bootstrap.Services, func(), error) {
	return bootstrap.NewServices(ctx, e.cfg, e.log)
}

func newServeCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return bootstrap.Serve(env.cfg, env.log)
		},
	}
}

// output devuelve el destino de una exportación: archivo si --out está definido, si no stdout.
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	path, _ := cmd.Flags().GetString("out")
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
