package dto

import "time"

// StockLevelResponse una fila del libro de existencias con nombres resueltos.
type StockLevelResponse struct {
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	StockardID    string    `json:"stockard_id"`
	StockardName  string    `json:"stockard_name"`
	WarehouseID   string    `json:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name"`
	Quantity      int64     `json:"quantity"`
	IsInStock     bool      `json:"is_in_stock"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StockListResponse lista paginada del libro de existencias.
type StockListResponse struct {
	Items []StockLevelResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
