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
	"github.com/jhoicas/sistema-facturador/pkg/sunat"
)

// CustomerUseCase catálogo de clientes.
type CustomerUseCase struct {
	docs ports.DocumentRunner
	log  *logger.Logger
}

func NewCustomerUseCase(docs ports.DocumentRunner, log *logger.Logger) *CustomerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerUseCase{docs: docs, log: log.Component("clientes")}
}

// List devuelve los clientes en orden de alta.
func (uc *CustomerUseCase) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	var out []dto.CustomerResponse
	err := uc.docs.View(ctx, func(doc *entity.Document) error {
		out = make([]dto.CustomerResponse, 0, len(doc.Clientes))
		for _, c := range doc.Clientes {
			out = append(out, toCustomerResponse(c))
		}
		return nil
	})
	return out, err
}

// Create registra un cliente: documento RUC (11) o DNI (8) y nombre obligatorios.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := entity.Customer{
		ID:      uuid.New().String(),
		DocType: strings.ToUpper(strings.TrimSpace(in.DocType)),
		DocNum:  strings.TrimSpace(in.DocNum),
		Razon:   strings.TrimSpace(in.Razon),
		Phone:   strings.TrimSpace(in.Phone),
	}
	if c.DocType == "" {
		c.DocType = sunat.IdentityRUC
	}
	if !sunat.ValidDoc(c.DocType, c.DocNum) {
		return nil, domain.Invalid("doc_num", "Documento inválido (RUC 11, DNI 8).")
	}
	if c.Razon == "" {
		return nil, domain.Invalid("razon", "Nombre/razón requerida.")
	}
	if err := uc.docs.Update(ctx, func(doc *entity.Document) error {
		doc.Clientes = append(doc.Clientes, c)
		return nil
	}); err != nil {
		return nil, err
	}
	uc.log.Info().Str("id", c.ID).Str("doc_type", c.DocType).Msg("cliente creado")
	resp := toCustomerResponse(c)
	return &resp, nil
}

// Buyer ficha de comprador a partir de un cliente (prellenado de la venta).
func (uc *CustomerUseCase) Buyer(ctx context.Context, id string) (*dto.BuyerRequest, error) {
	var out *dto.BuyerRequest
	err := uc.docs.View(ctx, func(doc *entity.Document) error {
		for _, c := range doc.Clientes {
			if c.ID == id {
				b := c.Buyer()
				out = &dto.BuyerRequest{DocType: b.DocType, DocNum: b.DocNum, Razon: b.Razon}
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return out, err
}

// Delete elimina el cliente; las ventas guardan su propia copia del comprador.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	return uc.docs.Update(ctx, func(doc *entity.Document) error {
		for i := range doc.Clientes {
			if doc.Clientes[i].ID == id {
				doc.Clientes = append(doc.Clientes[:i], doc.Clientes[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func toCustomerResponse(c entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{ID: c.ID, DocType: c.DocType, DocNum: c.DocNum, Razon: c.Razon, Phone: c.Phone}
}
