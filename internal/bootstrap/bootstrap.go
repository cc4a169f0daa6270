// Package bootstrap arma las dependencias compartidas por el servidor HTTP y la CLI.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/sistema-facturador/internal/application/analytics"
	"github.com/jhoicas/sistema-facturador/internal/application/auth"
	"github.com/jhoicas/sistema-facturador/internal/application/billing"
	"github.com/jhoicas/sistema-facturador/internal/application/inventory"
	"github.com/jhoicas/sistema-facturador/internal/application/state"
	"github.com/jhoicas/sistema-facturador/internal/application/usecase"
	"github.com/jhoicas/sistema-facturador/internal/domain/repository"
	"github.com/jhoicas/sistema-facturador/internal/infrastructure/metrics"
	"github.com/jhoicas/sistema-facturador/internal/infrastructure/pdf"
	"github.com/jhoicas/sistema-facturador/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/sistema-facturador/internal/infrastructure/redis"
	"github.com/jhoicas/sistema-facturador/internal/infrastructure/storage"
	"github.com/jhoicas/sistema-facturador/internal/infrastructure/sunat"
	httpRouter "github.com/jhoicas/sistema-facturador/internal/interfaces/http"
	"github.com/jhoicas/sistema-facturador/pkg/config"
	"github.com/jhoicas/sistema-facturador/pkg/logger"
)

// devJWTSecret solo se usa en development cuando JWT_SECRET no está definido.
const devJWTSecret = "dev-only-secret-change-me"

// Services casos de uso conectados al store configurado.
type Services struct {
	Store     *state.Store
	Auth      *auth.AuthUseCase
	Settings  *usecase.SettingsUseCase
	Users     *usecase.UserUseCase
	Suppliers *usecase.SupplierUseCase
	Customers *usecase.CustomerUseCase
	Purchases *inventory.PurchaseUseCase
	Ledger    *inventory.LedgerUseCase
	IssueSale *billing.IssueSaleUseCase
	Sunat     *billing.SunatUseCase
	Reports   *analytics.ReportUseCase
	Metrics   *metrics.Recorder
	JWTSecret string
}

// OpenRepository abre el backend del documento según STORE_DRIVER.
// close libera conexiones; nunca es nil.
func OpenRepository(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.DocumentRepository, func(), error) {
	noop := func() {}
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		return storage.NewMemoryRepository(), noop, nil
	case config.StoreDriverFile:
		repo, err := storage.NewFileRepository(cfg.Store.FileDir)
		if err != nil {
			return nil, noop, err
		}
		return repo, noop, nil
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, noop, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		repo := postgres.NewDocumentRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("esquema PostgreSQL: %w", err)
		}
		return repo, pool.Close, nil
	case config.StoreDriverRedis:
		repo, err := infraredis.NewDocumentRepository(cfg.Redis.URL)
		if err != nil {
			return nil, noop, err
		}
		if err := repo.Ping(ctx); err != nil {
			_ = repo.Close()
			return nil, noop, fmt.Errorf("conexión a Redis: %w", err)
		}
		return repo, func() { _ = repo.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("STORE_DRIVER desconocido %q", cfg.Store.Driver)
	}
}

// NewServices abre el store y construye todos los casos de uso.
func NewServices(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Services, func(), error) {
	repo, closeRepo, err := OpenRepository(ctx, cfg, log)
	if err != nil {
		return nil, closeRepo, err
	}

	hash, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		closeRepo()
		return nil, func() {}, err
	}
	store, err := state.NewStore(repo, cfg.Store.Key, state.NewSkeleton(hash), log)
	if err != nil {
		closeRepo()
		return nil, func() {}, err
	}
	if _, err := store.Load(ctx); err != nil {
		closeRepo()
		return nil, func() {}, fmt.Errorf("cargar documento: %w", err)
	}

	secret := cfg.JWT.Secret
	if secret == "" {
		if cfg.App.Env != "development" {
			closeRepo()
			return nil, func() {}, fmt.Errorf("JWT_SECRET es obligatorio fuera de development")
		}
		log.Warn().Msg("JWT_SECRET vacío: usando secreto de desarrollo")
		secret = devJWTSecret
	}

	xmlBuilder := sunat.NewXMLBuilderService()
	recorder := metrics.NewRecorder()
	collaborator := sunat.NewCollaboratorClient(cfg.Collaborator.BaseURL, cfg.Collaborator.Timeout())
	if cfg.Collaborator.BaseURL == "" {
		log.Warn().Msg("COLLABORATOR_BASE_URL vacío: validación y envío a SUNAT no configurados")
	}

	svc := &Services{
		Store: store,
		Auth: auth.NewAuthUseCase(store, auth.JWTConfig{
			Secret:     secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}, log),
		Settings:  usecase.NewSettingsUseCase(store, log),
		Users:     usecase.NewUserUseCase(store, log),
		Suppliers: usecase.NewSupplierUseCase(store, log),
		Customers: usecase.NewCustomerUseCase(store, log),
		Purchases: inventory.NewPurchaseUseCase(store, log),
		Ledger:    inventory.NewLedgerUseCase(store, log),
		IssueSale: billing.NewIssueSaleUseCase(store, pdf.NewMarotoRenderer(), xmlBuilder, recorder, log),
		Sunat:     billing.NewSunatUseCase(store, collaborator, recorder, log),
		Reports:   analytics.NewReportUseCase(store, xmlBuilder, log),
		Metrics:   recorder,
		JWTSecret: secret,
	}
	return svc, closeRepo, nil
}

// NewHTTPApp construye la app Fiber con todas las rutas.
func NewHTTPApp(cfg *config.Config, svc *Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    12 * 1024 * 1024,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      svc.Auth,
		SettingsUC:  svc.Settings,
		UserUC:      svc.Users,
		SupplierUC:  svc.Suppliers,
		CustomerUC:  svc.Customers,
		PurchaseUC:  svc.Purchases,
		LedgerUC:    svc.Ledger,
		IssueSaleUC: svc.IssueSale,
		SunatUC:     svc.Sunat,
		ReportUC:    svc.Reports,
		JWTSecret:   svc.JWTSecret,
		MetricsHTTP: svc.Metrics.Handler(),
	})
	return app
}
