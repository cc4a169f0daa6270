package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrExternalService   = errors.New("servicio externo no disponible")
)

// ValidationError error de validación con el mensaje que se muestra al usuario.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// DuplicateError el valor ya existe; errors.Is(err, ErrDuplicate) es verdadero.
type DuplicateError struct {
	Field   string
	Message string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// Duplicate construye un DuplicateError.
func Duplicate(field, message string) error {
	return &DuplicateError{Field: field, Message: message}
}

// StockError indica el producto sin stock suficiente para una línea de venta.
type StockError struct {
	ProductID string
	Name      string
	Available int
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s (disponible %d, solicitado %d)", e.Name, e.Available, e.Requested)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// UserMessage extrae el mensaje para el usuario de un error de dominio.
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var de *DuplicateError
	if errors.As(err, &de) {
		return de.Message
	}
	var se *StockError
	if errors.As(err, &se) {
		return se.Error()
	}
	return err.Error()
}
