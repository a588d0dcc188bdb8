package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidQuantity     = errors.New("la cantidad debe ser mayor que cero y tener a lo sumo 3 decimales")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrDuplicateInvoice    = errors.New("la builty ya tiene una e-bill")
	ErrCapacityExceeded    = errors.New("la entrada excede la cantidad de la builty")
	ErrInsufficientBalance = errors.New("saldo insuficiente en bodega")
	ErrAlreadyReversed     = errors.New("el movimiento ya fue revertido")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrLockTimeout         = errors.New("no se obtuvo el bloqueo a tiempo")
)

// UniquenessError violación de unicidad (código de rake, número de builty, número de e-bill...).
type UniquenessError struct {
	Entity string
	Field  string
	Value  string
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("%s: %s %q ya existe", e.Entity, e.Field, e.Value)
}

func (e *UniquenessError) Unwrap() error { return ErrDuplicate }

// CapacityExceededError rechazo de una entrada; Remaining es lo que aún admite la builty (nunca negativo).
type CapacityExceededError struct {
	DocumentID string
	Requested  decimal.Decimal
	Remaining  decimal.Decimal
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("builty %s: solicitado %s MT, restante %s MT", e.DocumentID, e.Requested, e.Remaining)
}

func (e *CapacityExceededError) Unwrap() error { return ErrCapacityExceeded }

// InsufficientBalanceError rechazo de una salida; Available es el saldo vigente.
// RakeCode vacío indica que el saldo evaluado es el de toda la bodega.
type InsufficientBalanceError struct {
	WarehouseID string
	RakeCode    string
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	if e.RakeCode != "" {
		return fmt.Sprintf("bodega %s (rake %s): solicitado %s MT, disponible %s MT",
			e.WarehouseID, e.RakeCode, e.Requested, e.Available)
	}
	return fmt.Sprintf("bodega %s: solicitado %s MT, disponible %s MT", e.WarehouseID, e.Requested, e.Available)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }
