// Package redis implementa el driver de almacenamiento redis para el documento raíz.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/sistema-facturador/internal/domain"
	"github.com/jhoicas/sistema-facturador/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepository)(nil)

// DocumentRepository guarda el blob bajo la clave tal cual, sin TTL.
type DocumentRepository struct {
	client *goredis.Client
}

// NewDocumentRepository crea el cliente a partir de una URL redis://.
func NewDocumentRepository(url string) (*DocumentRepository, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	return &DocumentRepository{client: goredis.NewClient(opts)}, nil
}

func (r *DocumentRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *DocumentRepository) Close() error {
	return r.client.Close()
}

func (r *DocumentRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get %s: %w", key, err)
	}
	return val, nil
}

func (r *DocumentRepository) Put(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}
