package main

import (
	"github.com/jhoicas/sistema-facturador/internal/bootstrap"
	"github.com/jhoicas/sistema-facturador/pkg/config"
	"github.com/jhoicas/sistema-facturador/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := bootstrap.Serve(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("servidor HTTP finalizado")
	}
}
