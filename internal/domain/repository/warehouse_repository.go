package repository

import "github.com/jhoicas/Bodegas-api/internal/domain/entity"

// WarehouseRepository puerto de persistencia para bodegas.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	List(limit, offset int) ([]*entity.Warehouse, error)
	// Delete elimina la bodega y, en cascada, sus stockards.
	Delete(id string) error
}
