package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/application/ports"
	"github.com/jhoicas/sistema-facturador/internal/domain"
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
	"github.com/jhoicas/sistema-facturador/pkg/logger"
)

// SupplierUseCase alta, baja e importación de proveedores.
type SupplierUseCase struct {
	docs ports.DocumentRunner
	log  *logger.Logger
}

func NewSupplierUseCase(docs ports.DocumentRunner, log *logger.Logger) *SupplierUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SupplierUseCase{docs: docs, log: log.Component("proveedores")}
}

// List devuelve los proveedores en orden de alta.
func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	var out []dto.SupplierResponse
	err := uc.docs.View(ctx, func(doc *entity.Document) error {
		out = make([]dto.SupplierResponse, 0, len(doc.Proveedores))
		for _, p := range doc.Proveedores {
			out = append(out, toSupplierResponse(p))
		}
		return nil
	})
	return out, err
}

// Create registra un proveedor. Tipo, documento y razón social son obligatorios.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	s := entity.Supplier{
		ID:    uuid.New().String(),
		Tipo:  strings.TrimSpace(in.Tipo),
		Doc:   strings.TrimSpace(in.Doc),
		Razon: strings.TrimSpace(in.Razon),
	}
	if s.Tipo == "" {
		return nil, domain.Invalid("tipo", "Tipo de comprobante requerido.")
	}
	if s.Doc == "" || s.Razon == "" {
		return nil, domain.Invalid("doc", "Documento y razón social son obligatorios.")
	}
	if err := uc.docs.Update(ctx, func(doc *entity.Document) error {
		doc.Proveedores = append(doc.Proveedores, s)
		return nil
	}); err != nil {
		return nil, err
	}
	uc.log.Info().Str("id", s.ID).Str("doc", s.Doc).Msg("proveedor creado")
	resp := toSupplierResponse(s)
	return &resp, nil
}

// Import agrega las filas completas; las filas con algún campo vacío se omiten.
func (uc *SupplierUseCase) Import(ctx context.Context, rows []dto.SupplierRow) (*dto.ImportResult, error) {
	res := &dto.ImportResult{}
	var batch []entity.Supplier
	for _, r := range rows {
		s := entity.Supplier{
			Tipo:  strings.TrimSpace(r.TipoComprobante),
			Doc:   strings.TrimSpace(r.NDocumento),
			Razon: strings.TrimSpace(r.RazonSocial),
		}
		if s.Tipo == "" || s.Doc == "" || s.Razon == "" {
			res.Skipped++
			continue
		}
		s.ID = uuid.New().String()
		batch = append(batch, s)
	}
	if len(batch) > 0 {
		if err := uc.docs.Update(ctx, func(doc *entity.Document) error {
			doc.Proveedores = append(doc.Proveedores, batch...)
			return nil
		}); err != nil {
			return nil, err
		}
	}
	res.Added = len(batch)
	uc.log.Info().Int("added", res.Added).Int("skipped", res.Skipped).Msg("proveedores importados")
	return res, nil
}

// Delete elimina el proveedor. Las compras que lo referencian conservan el id.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	return uc.docs.Update(ctx, func(doc *entity.Document) error {
		for i := range doc.Proveedores {
			if doc.Proveedores[i].ID == id {
				doc.Proveedores = append(doc.Proveedores[:i], doc.Proveedores[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func toSupplierResponse(s entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{ID: s.ID, Tipo: s.Tipo, Doc: s.Doc, Razon: s.Razon}
}
