package dto

import "time"

// MovementItemRequest una línea del movimiento. Los stockards de origen y
// destino los resuelve el motor, nunca el caller.
type MovementItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// CreateMovementRequest body para POST /api/inventory/movements.
// La identidad del actor viene de la sesión, no del payload.
type CreateMovementRequest struct {
	MovementType    string                `json:"movement_type" validate:"required,oneof=IN OUT TRANSFER"`
	FromWarehouseID *string               `json:"from_warehouse_id,omitempty" validate:"omitempty,uuid4"`
	ToWarehouseID   *string               `json:"to_warehouse_id,omitempty" validate:"omitempty,uuid4"`
	ReferenceNumber string                `json:"reference_number,omitempty" validate:"omitempty,max=50"`
	Notes           string                `json:"notes,omitempty"`
	Items           []MovementItemRequest `json:"items" validate:"required,min=1,dive"`
}

// MovementItemResponse una línea persistida con sus stockards resueltos.
type MovementItemResponse struct {
	ID             string  `json:"id"`
	ProductID      string  `json:"product_id"`
	FromStockardID *string `json:"from_stockard_id,omitempty"`
	ToStockardID   *string `json:"to_stockard_id,omitempty"`
	Quantity       int64   `json:"quantity"`
}

// MovementResponse un movimiento persistido con sus items.
type MovementResponse struct {
	ID              string                 `json:"id"`
	MovementType    string                 `json:"movement_type"`
	FromWarehouseID *string                `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   *string                `json:"to_warehouse_id,omitempty"`
	ReferenceNumber string                 `json:"reference_number"`
	Notes           string                 `json:"notes,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	CreatedBy       *string                `json:"created_by,omitempty"`
	Items           []MovementItemResponse `json:"items"`
}

// MovementListResponse lista paginada de movimientos, del más reciente al
// más antiguo.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
