package dto

import "time"

// CreateStockardRequest entrada para crear un stockard en una bodega.
type CreateStockardRequest struct {
	WarehouseID string `json:"warehouse_id" validate:"required,uuid4"`
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
}

// StockardResponse salida de un stockard.
type StockardResponse struct {
	ID          string    `json:"id"`
	WarehouseID string    `json:"warehouse_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// StockardListResponse lista paginada de stockards de una bodega.
type StockardListResponse struct {
	Items []StockardResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
