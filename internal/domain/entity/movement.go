package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/Bodegas-api/internal/domain"
)

// MovementType es el tipo de un movimiento de inventario. Variante etiquetada:
// el switch sobre los tres casos obliga al compilador (y a exhaustive en CI)
// a cubrir IN/OUT/TRANSFER en vez de comparar strings sueltos.
type MovementType string

const (
	MovementTypeIn       MovementType = "IN"       // entrada (recepción)
	MovementTypeOut      MovementType = "OUT"      // salida (despacho)
	MovementTypeTransfer MovementType = "TRANSFER" // traslado entre bodegas
)

// Valid indica si el tipo es uno de los tres conocidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeTransfer:
		return true
	}
	return false
}

// RequiresSource indica si el tipo exige bodega de origen.
func (t MovementType) RequiresSource() bool {
	return t == MovementTypeOut || t == MovementTypeTransfer
}

// RequiresDestination indica si el tipo exige bodega de destino.
func (t MovementType) RequiresDestination() bool {
	return t == MovementTypeIn || t == MovementTypeTransfer
}

// StockMovement es el registro de auditoría de un cambio de inventario.
// Una vez persistido con sus items es historia inmutable: no hay ruta de
// actualización ni de borrado. ReferenceNumber es único.
type StockMovement struct {
	ID              string
	Type            MovementType
	FromWarehouseID *string
	ToWarehouseID   *string
	ReferenceNumber string
	Notes           string
	CreatedAt       time.Time
	CreatedBy       *string // nil si el usuario fue eliminado
	Items           []StockMovementItem
}

// StockMovementItem es una línea de un movimiento. FromStockardID y
// ToStockardID los resuelve el motor, nunca el caller.
type StockMovementItem struct {
	ID             string
	MovementID     string
	ProductID      string
	FromStockardID *string
	ToStockardID   *string
	Quantity       int64
}

// Validate verifica las invariantes de nivel movimiento antes de tocar
// cualquier item. Devuelve domain.ErrInvalidMovement envuelto con el motivo.
func (m *StockMovement) Validate() error {
	if !m.Type.Valid() {
		return fmt.Errorf("%w: tipo de movimiento desconocido %q", domain.ErrInvalidMovement, string(m.Type))
	}
	switch m.Type {
	case MovementTypeIn:
		if m.ToWarehouseID == nil {
			return fmt.Errorf("%w: la bodega de destino es requerida para entradas", domain.ErrInvalidMovement)
		}
	case MovementTypeOut:
		if m.FromWarehouseID == nil {
			return fmt.Errorf("%w: la bodega de origen es requerida para salidas", domain.ErrInvalidMovement)
		}
	case MovementTypeTransfer:
		if m.FromWarehouseID == nil || m.ToWarehouseID == nil {
			return fmt.Errorf("%w: los traslados requieren bodega de origen y de destino", domain.ErrInvalidMovement)
		}
	}
	if m.FromWarehouseID != nil && m.ToWarehouseID != nil && *m.FromWarehouseID == *m.ToWarehouseID {
		return fmt.Errorf("%w: la bodega de origen y la de destino deben ser distintas", domain.ErrInvalidMovement)
	}
	return nil
}
