package entity

import "time"

// Stock es la fila del libro de existencias: cantidad de un producto en un
// stockard. El par (ProductID, StockardID) es único. Se crea con el primer
// movimiento que lo afecta y a partir de ahí solo se ajusta la cantidad:
// nunca se reemplaza ni se elimina (las filas persisten en cero).
type Stock struct {
	ID         string
	ProductID  string
	StockardID string
	Quantity   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StockLevel es la vista de una fila de stock con los nombres resueltos,
// para listados (no se persiste).
type StockLevel struct {
	ProductID     string
	ProductName   string
	StockardID    string
	StockardName  string
	WarehouseID   string
	WarehouseName string
	Quantity      int64
	UpdatedAt     time.Time
}

// IsInStock indica si hay existencias disponibles.
func (lv *StockLevel) IsInStock() bool {
	return lv.Quantity > 0
}
