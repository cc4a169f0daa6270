package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sistema-facturador/internal/domain"
)

func TestValidationError_UnwrapsInvalidInput(t *testing.T) {
	err := fmt.Errorf("crear cliente: %w", domain.Invalid("docNum", "Documento inválido"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, "Documento inválido", domain.UserMessage(err))
	assert.Contains(t, err.Error(), "docNum")
}

func TestDuplicateError_UnwrapsDuplicate(t *testing.T) {
	err := fmt.Errorf("crear usuario: %w", domain.Duplicate("username", "Ese usuario ya existe."))
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	assert.False(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, "Ese usuario ya existe.", domain.UserMessage(err))
}

func TestStockError_UnwrapsInsufficientStock(t *testing.T) {
	err := fmt.Errorf("emitir: %w", &domain.StockError{ProductID: "p1", Name: "Jabón", Available: 1, Requested: 3})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.False(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, domain.UserMessage(err), "Jabón")
}
