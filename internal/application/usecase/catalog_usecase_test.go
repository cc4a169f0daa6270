package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/application/usecase"
	"github.com/jhoicas/sistema-facturador/internal/domain"
)

func TestSuppliers(t *testing.T) {
	st := newStore(t)
	uc := usecase.NewSupplierUseCase(st, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateSupplierRequest{Doc: "20100070970", Razon: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateSupplierRequest{Tipo: "Factura", Doc: "20100070970"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	s, err := uc.Create(ctx, dto.CreateSupplierRequest{Tipo: " Factura ", Doc: "20100070970", Razon: "SUPERMERCADOS PERUANOS"})
	require.NoError(t, err)
	assert.Equal(t, "Factura", s.Tipo)

	res, err := uc.Import(ctx, []dto.SupplierRow{
		{TipoComprobante: "Factura", NDocumento: "20111111111", RazonSocial: "A"},
		{TipoComprobante: "Factura", NDocumento: "", RazonSocial: "B"},
		{TipoComprobante: "Boleta", NDocumento: "12345678", RazonSocial: "C"},
	})
	require.NoError(t, err)
	assert.Equal(t, dto.ImportResult{Added: 2, Skipped: 1}, *res)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "SUPERMERCADOS PERUANOS", list[0].Razon)

	require.NoError(t, uc.Delete(ctx, s.ID))
	assert.ErrorIs(t, uc.Delete(ctx, s.ID), domain.ErrNotFound)
	assert.Len(t, load(t, st).Proveedores, 2)
}

func TestSuppliers_ImportVacioNoEscribe(t *testing.T) {
	uc := usecase.NewSupplierUseCase(newStore(t), nil)
	res, err := uc.Import(context.Background(), []dto.SupplierRow{{TipoComprobante: "Factura"}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Added)
	assert.Equal(t, 1, res.Skipped)
}

func TestCustomers(t *testing.T) {
	st := newStore(t)
	uc := usecase.NewCustomerUseCase(st, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateCustomerRequest{DocType: "DNI", DocNum: "1234567", Razon: "Ana"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateCustomerRequest{DocNum: "20999999999"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c, err := uc.Create(ctx, dto.CreateCustomerRequest{DocNum: "20999999999", Razon: "CLIENTE SAC", Phone: "999"})
	require.NoError(t, err)
	assert.Equal(t, "RUC", c.DocType)

	b, err := uc.Buyer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.BuyerRequest{DocType: "RUC", DocNum: "20999999999", Razon: "CLIENTE SAC"}, *b)

	require.NoError(t, uc.Delete(ctx, c.ID))
	_, err = uc.Buyer(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, load(t, st).Clientes)
}
