package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/sistema-facturador/pkg/config"
	"github.com/jhoicas/sistema-facturador/pkg/logger"
)

// Serve levanta el servidor HTTP y lo apaga ordenadamente con SIGINT/SIGTERM.
func Serve(cfg *config.Config, log *logger.Logger) error {
	ctx := context.Background()
	svc, closeRepo, err := NewServices(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	app := NewHTTPApp(cfg, svc)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Str("store", cfg.Store.Driver).Msg("servidor HTTP escuchando")
		errCh <- app.Listen(cfg.HTTP.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	log.Info().Msg("aplicación detenida")
	return nil
}
