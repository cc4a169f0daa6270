package repository

import "context"

// DocumentRepository define el puerto de persistencia del documento raíz: un blob serializado
// bajo una clave fija. Get devuelve domain.ErrNotFound si la clave no existe.
type DocumentRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}
