package repository

import "github.com/jhoicas/Bodegas-api/internal/domain/entity"

// StockardRepository puerto de persistencia para stockards.
type StockardRepository interface {
	Create(stockard *entity.Stockard) error
	GetByID(id string) (*entity.Stockard, error)
	// GetOrCreate devuelve el stockard (warehouseID, name) creándolo si no
	// existe. Idempotente: dos llamadas devuelven el mismo registro gracias
	// a la constraint única sobre (warehouse_id, name).
	GetOrCreate(warehouseID, name string) (*entity.Stockard, error)
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stockard, error)
	// FirstHoldingProduct devuelve el stockard de la bodega con una fila de
	// stock existente para el producto, el primero por nombre ascendente.
	// Solo importa la existencia de la fila, no su cantidad. nil si ninguno.
	FirstHoldingProduct(productID, warehouseID string) (*entity.Stockard, error)
	Delete(id string) error
}
