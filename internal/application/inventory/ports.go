package inventory

import (
	"context"

	"github.com/jhoicas/Bodegas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del movimiento
// completo: o se aplican todas las mutaciones del libro junto con la
// cabecera y sus items, o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockardRepo repository.StockardRepository,
		stockRepo repository.StockRepository,
	) error) error
}
