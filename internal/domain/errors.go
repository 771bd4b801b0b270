package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Taxonomía del motor de movimientos. Todos son errores de entrada
	// corregibles por el caller; ninguno es fatal.
	ErrInvalidMovement    = errors.New("movimiento inválido")
	ErrInvalidQuantity    = errors.New("la cantidad debe ser mayor que cero")
	ErrNoStockAvailable   = errors.New("no hay stock del producto en la bodega seleccionada")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrDuplicateReference = errors.New("el número de referencia ya existe")
)

// InsufficientStockError lleva el diagnóstico de una salida rechazada:
// qué stockard se resolvió y cuánto había disponible. Desenvuelve a
// ErrInsufficientStock para que errors.Is siga funcionando.
type InsufficientStockError struct {
	StockardID   string
	StockardName string
	Available    int64
	Requested    int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: solo %d unidades disponibles en el stockard %s (solicitadas %d)",
		e.Available, e.StockardName, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
