package billing_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sistema-facturador/internal/application/billing"
	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/domain"
)

type fakeCollaborator struct {
	result   *billing.ValidationResult
	validErr error
	sendResp json.RawMessage
	sendErr  error

	validCalls int
	sentFile   string
	sentXML    string
}

func (f *fakeCollaborator) ValidateDocument(_ context.Context, _, _ string) (*billing.ValidationResult, error) {
	f.validCalls++
	return f.result, f.validErr
}

func (f *fakeCollaborator) SendDocument(_ context.Context, fileName, xmlText string) (json.RawMessage, error) {
	f.sentFile, f.sentXML = fileName, xmlText
	return f.sendResp, f.sendErr
}

func TestValidateBuyer_Resultados(t *testing.T) {
	f := newFixture(t)
	unavailable := fmt.Errorf("%w: caído", domain.ErrExternalService)

	cases := []struct {
		name    string
		docType string
		docNum  string
		collab  *fakeCollaborator
		status  string
		calls   int
	}{
		{"formato", "RUC", "123", &fakeCollaborator{}, dto.ValidationBadFormat, 0},
		{"validado", "ruc", "20123456789", &fakeCollaborator{result: &billing.ValidationResult{OK: true, Razon: " ACME SAC "}}, dto.ValidationValidated, 1},
		{"no encontrado", "DNI", "12345678", &fakeCollaborator{result: &billing.ValidationResult{OK: false}}, dto.ValidationNotFound, 1},
		{"ok sin razón", "DNI", "12345678", &fakeCollaborator{result: &billing.ValidationResult{OK: true}}, dto.ValidationNotFound, 1},
		{"no disponible", "DNI", "12345678", &fakeCollaborator{validErr: unavailable}, dto.ValidationUnavailable, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := billing.NewSunatUseCase(f.store, tc.collab, f.metrics, nil)
			res := uc.ValidateBuyer(context.Background(), tc.docType, tc.docNum)
			assert.Equal(t, tc.status, res.Status)
			assert.NotEmpty(t, res.Message)
			assert.Equal(t, tc.calls, tc.collab.validCalls)
			if tc.status == dto.ValidationValidated {
				assert.Equal(t, "ACME SAC", res.Razon)
			}
		})
	}
}

func TestSubmitLast_AdjuntaRespuesta(t *testing.T) {
	f := newFixture(t, martillo(5))
	ctx := context.Background()
	_, err := f.uc.Issue(ctx, request("01", dto.SaleItemRequest{ProductID: "p1", Qty: 1}))
	require.NoError(t, err)
	second, err := f.uc.Issue(ctx, request("03", dto.SaleItemRequest{ProductID: "p1", Qty: 1}))
	require.NoError(t, err)

	collab := &fakeCollaborator{sendResp: json.RawMessage(`{"estado":"ACEPTADO"}`)}
	uc := billing.NewSunatUseCase(f.store, collab, f.metrics, nil)

	out, err := uc.SubmitLast(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, out.SaleID)
	assert.Equal(t, second.FileName, collab.sentFile)
	assert.Contains(t, collab.sentXML, "B001")

	doc := f.doc(t)
	idx := doc.FindSale(second.ID)
	assert.JSONEq(t, `{"estado":"ACEPTADO"}`, string(doc.Ventas[idx].SunatStatus))
	assert.True(t, noStatus(doc.Ventas[0].SunatStatus))
	assert.Equal(t, 1, f.metrics.calls["send:ok"])
}

func TestSubmit_FalloNoModificaDocumento(t *testing.T) {
	f := newFixture(t, martillo(5))
	ctx := context.Background()
	sale, err := f.uc.Issue(ctx, request("01", dto.SaleItemRequest{ProductID: "p1", Qty: 1}))
	require.NoError(t, err)
	before := f.blob(t)

	uc := billing.NewSunatUseCase(f.store, &fakeCollaborator{sendErr: errors.New("connection refused")}, f.metrics, nil)
	_, err = uc.Submit(ctx, sale.ID)
	assert.ErrorIs(t, err, domain.ErrExternalService)
	assert.Equal(t, before, f.blob(t))

	uc = billing.NewSunatUseCase(f.store, &fakeCollaborator{sendResp: json.RawMessage("no json")}, f.metrics, nil)
	_, err = uc.Submit(ctx, sale.ID)
	assert.ErrorIs(t, err, domain.ErrExternalService)
	assert.Equal(t, before, f.blob(t))

	_, err = uc.Submit(ctx, "inexistente")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmitLast_SinVentas(t *testing.T) {
	f := newFixture(t)
	uc := billing.NewSunatUseCase(f.store, &fakeCollaborator{}, nil, nil)
	_, err := uc.SubmitLast(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
