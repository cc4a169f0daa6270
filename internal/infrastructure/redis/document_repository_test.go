package redis_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sistema-facturador/internal/domain"
	"github.com/jhoicas/sistema-facturador/internal/infrastructure/redis"
)

func TestNewDocumentRepository_URLInvalida(t *testing.T) {
	_, err := redis.NewDocumentRepository("http://no-es-redis")
	assert.Error(t, err)
}

// Requiere un redis real: REDIS_TEST_URL=redis://localhost:6379/15
func TestDocumentRepository_Integracion(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL no definido")
	}
	repo, err := redis.NewDocumentRepository(url)
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.Ping(ctx))

	key := "test_" + uuid.NewString()
	_, err = repo.Get(ctx, key)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, repo.Put(ctx, key, []byte(`{"ok":true}`)))
	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(got))
}
