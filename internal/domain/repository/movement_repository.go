package repository

import "github.com/jhoicas/Bodegas-api/internal/domain/entity"

// StockMovementRepository puerto de persistencia para movimientos.
// Los movimientos son historial inmutable: no hay Update ni Delete.
type StockMovementRepository interface {
	// Create persiste la cabecera del movimiento. Devuelve
	// domain.ErrDuplicateReference si reference_number ya existe.
	Create(movement *entity.StockMovement) error
	// CreateItem persiste una línea con sus stockards ya resueltos.
	CreateItem(item *entity.StockMovementItem) error
	// GetByID obtiene un movimiento con sus items; nil si no existe.
	GetByID(id string) (*entity.StockMovement, error)
	// List devuelve movimientos del más reciente al más antiguo.
	List(limit, offset int) ([]*entity.StockMovement, error)
	ExistsByReference(reference string) (bool, error)
}
