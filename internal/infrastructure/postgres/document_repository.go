package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sistema-facturador/internal/domain"
	"github.com/jhoicas/sistema-facturador/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const schemaDocuments = `
	CREATE TABLE IF NOT EXISTS app_documents (
		key        TEXT PRIMARY KEY,
		data       BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// DocumentRepo implementación de DocumentRepository sobre la tabla app_documents (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// EnsureSchema crea la tabla si no existe.
func (r *DocumentRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, schemaDocuments); err != nil {
		return fmt.Errorf("create app_documents: %w", err)
	}
	return nil
}

// Get obtiene el blob de la clave.
func (r *DocumentRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := r.q.QueryRow(ctx, `SELECT data FROM app_documents WHERE key = $1`, key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUndefinedTable(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return data, nil
}

// Put inserta o reemplaza el blob de la clave. Si la tabla no existe la crea y reintenta una vez.
func (r *DocumentRepo) Put(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO app_documents (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, key, data)
	if err != nil && isUndefinedTable(err) {
		if err := r.EnsureSchema(ctx); err != nil {
			return err
		}
		_, err = r.q.Exec(ctx, query, key, data)
	}
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}
