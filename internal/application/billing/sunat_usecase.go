package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/application/ports"
	"github.com/jhoicas/sistema-facturador/internal/domain"
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
	"github.com/jhoicas/sistema-facturador/pkg/logger"
	"github.com/jhoicas/sistema-facturador/pkg/sunat"
)

// Operaciones del colaborador (etiqueta de métricas).
const (
	OpValidate = "validate"
	OpSend     = "send"
)

// SunatUseCase integra el colaborador externo: validación del comprador (solo prellenado,
// nunca bloquea la emisión) y envío del último comprobante. Un fallo externo no modifica el estado.
type SunatUseCase struct {
	docs    ports.DocumentRunner
	client  Collaborator
	metrics Metrics
	log     *logger.Logger
}

// NewSunatUseCase construye el caso de uso. metrics puede ser nil.
func NewSunatUseCase(docs ports.DocumentRunner, client Collaborator, metrics Metrics, log *logger.Logger) *SunatUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SunatUseCase{docs: docs, client: client, metrics: metrics, log: log.Component("sunat")}
}

// ValidateBuyer valida el formato y consulta al colaborador. Siempre devuelve un resultado inerte.
func (uc *SunatUseCase) ValidateBuyer(ctx context.Context, docType, docNum string) dto.ValidateBuyerResponse {
	docType = strings.ToUpper(strings.TrimSpace(docType))
	docNum = strings.TrimSpace(docNum)
	if !sunat.ValidDoc(docType, docNum) {
		return dto.ValidateBuyerResponse{Status: dto.ValidationBadFormat, Message: "Formato inválido (RUC 11 / DNI 8)."}
	}

	res, err := uc.client.ValidateDocument(ctx, docType, docNum)
	if err != nil {
		uc.metrics.CollaboratorCall(OpValidate, dto.ValidationUnavailable)
		uc.log.Warn().Err(err).Str("doc_type", docType).Msg("validación no disponible")
		return dto.ValidateBuyerResponse{
			Status:  dto.ValidationUnavailable,
			Message: "Servicio de validación no configurado. Se permitirá continuar (no validado).",
		}
	}
	if res != nil && res.OK && strings.TrimSpace(res.Razon) != "" {
		uc.metrics.CollaboratorCall(OpValidate, dto.ValidationValidated)
		return dto.ValidateBuyerResponse{Status: dto.ValidationValidated, Razon: strings.TrimSpace(res.Razon), Message: "Validado."}
	}
	uc.metrics.CollaboratorCall(OpValidate, dto.ValidationNotFound)
	return dto.ValidateBuyerResponse{Status: dto.ValidationNotFound, Message: "No encontrado: se permitirá continuar (no validado)."}
}

// SubmitLast envía el último comprobante emitido y adjunta la respuesta tal cual como sunatStatus.
func (uc *SunatUseCase) SubmitLast(ctx context.Context) (*dto.SubmitResponse, error) {
	var last *entity.Sale
	if err := uc.docs.View(ctx, func(doc *entity.Document) error {
		if len(doc.Ventas) == 0 {
			return domain.Invalid("ventas", "No hay comprobantes emitidos.")
		}
		s := doc.Ventas[len(doc.Ventas)-1]
		last = &s
		return nil
	}); err != nil {
		return nil, err
	}
	return uc.submit(ctx, last.ID, last.FileName, last.XMLText)
}

// Submit envía un comprobante concreto.
func (uc *SunatUseCase) Submit(ctx context.Context, saleID string) (*dto.SubmitResponse, error) {
	var fileName, xmlText string
	if err := uc.docs.View(ctx, func(doc *entity.Document) error {
		idx := doc.FindSale(saleID)
		if idx < 0 {
			return domain.ErrNotFound
		}
		fileName, xmlText = doc.Ventas[idx].FileName, doc.Ventas[idx].XMLText
		return nil
	}); err != nil {
		return nil, err
	}
	return uc.submit(ctx, saleID, fileName, xmlText)
}

func (uc *SunatUseCase) submit(ctx context.Context, saleID, fileName, xmlText string) (*dto.SubmitResponse, error) {
	raw, err := uc.client.SendDocument(ctx, fileName, xmlText)
	if err != nil {
		uc.metrics.CollaboratorCall(OpSend, "error")
		uc.log.Warn().Err(err).Str("file", fileName).Msg("envío a SUNAT fallido")
		return nil, fmt.Errorf("%w: no se pudo enviar, verifica que el backend esté levantado y configurado", domain.ErrExternalService)
	}
	if !json.Valid(raw) {
		uc.metrics.CollaboratorCall(OpSend, "error")
		return nil, fmt.Errorf("%w: respuesta no es JSON", domain.ErrExternalService)
	}

	status := append(json.RawMessage(nil), raw...)
	if err := uc.docs.Update(ctx, func(doc *entity.Document) error {
		idx := doc.FindSale(saleID)
		if idx < 0 {
			return domain.ErrNotFound
		}
		doc.Ventas[idx].SunatStatus = status
		return nil
	}); err != nil {
		return nil, err
	}
	uc.metrics.CollaboratorCall(OpSend, "ok")
	uc.log.Info().Str("id", saleID).Str("file", fileName).Msg("respuesta SUNAT adjuntada")
	return &dto.SubmitResponse{SaleID: saleID, FileName: fileName, SunatStatus: status}, nil
}
