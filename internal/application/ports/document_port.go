package ports

import (
	"context"

	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
)

// DocumentRunner da acceso al documento raíz del negocio.
// View entrega una copia de solo lectura; Update ejecuta fn sobre una copia y solo la persiste
// si fn no devuelve error (todo o nada: un error deja el estado guardado intacto).
type DocumentRunner interface {
	View(ctx context.Context, fn func(doc *entity.Document) error) error
	Update(ctx context.Context, fn func(doc *entity.Document) error) error
}
