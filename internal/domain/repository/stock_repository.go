package repository

import "github.com/jhoicas/Bodegas-api/internal/domain/entity"

// StockRepository puerto de persistencia para el libro de existencias.
type StockRepository interface {
	// GetForUpdate obtiene la fila bloqueándola para update (SELECT FOR
	// UPDATE) dentro de la transacción en curso; nil si no existe.
	GetForUpdate(productID, stockardID string) (*entity.Stock, error)
	// AdjustQuantity aplica un delta a la fila (product, stockard):
	// Quantity es el ajuste, no el total. Si la fila no existe se inserta
	// con el delta como cantidad inicial; si existe, el almacén suma el
	// delta sobre la cantidad vigente en una sola operación. La suma la
	// hace el almacén y no el caller, de modo que dos ajustes concurrentes
	// sobre un par todavía sin fila no se pisan entre sí. Nunca elimina
	// filas: las existencias en cero persisten.
	AdjustQuantity(stock *entity.Stock) error
	// List devuelve la vista del libro con nombres resueltos. warehouseID
	// y productID vacíos no filtran.
	List(warehouseID, productID string, limit, offset int) ([]*entity.StockLevel, error)
}
