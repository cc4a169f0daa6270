package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sistema-facturador/internal/infrastructure/storage"
	"github.com/jhoicas/sistema-facturador/pkg/config"
	"github.com/jhoicas/sistema-facturador/pkg/logger"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		App:   config.AppConfig{Env: "development", Name: "test"},
		JWT:   config.JWTConfig{Expiration: 60, Issuer: "test"},
		Store: config.StoreConfig{Driver: driver, Key: "sf_demo_v1"},
		Seed:  config.SeedConfig{AdminPassword: "admin123"},
	}
}

func TestOpenRepository_Drivers(t *testing.T) {
	log := logger.Nop()

	repo, closeFn, err := OpenRepository(t.Context(), testConfig(config.StoreDriverMemory), log)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &storage.MemoryRepository{}, repo)

	cfg := testConfig(config.StoreDriverFile)
	cfg.Store.FileDir = t.TempDir()
	repo, closeFn2, err := OpenRepository(t.Context(), cfg, log)
	require.NoError(t, err)
	defer closeFn2()
	assert.IsType(t, &storage.FileRepository{}, repo)

	_, closeFn3, err := OpenRepository(t.Context(), testConfig("s3"), log)
	assert.Error(t, err)
	closeFn3()
}

func TestNewServices_SecretoObligatorioEnProduccion(t *testing.T) {
	cfg := testConfig(config.StoreDriverMemory)
	cfg.App.Env = "production"
	_, closeFn, err := NewServices(t.Context(), cfg, logger.Nop())
	closeFn()
	assert.Error(t, err)
}

func TestNewHTTPApp_Health(t *testing.T) {
	cfg := testConfig(config.StoreDriverMemory)
	svc, closeFn, err := NewServices(t.Context(), cfg, logger.Nop())
	require.NoError(t, err)
	defer closeFn()
	assert.Equal(t, devJWTSecret, svc.JWTSecret)

	app := NewHTTPApp(cfg, svc)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
