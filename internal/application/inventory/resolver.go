package inventory

import (
	"fmt"

	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/internal/domain/repository"
)

// ResolvedLocations stockards de origen y/o destino de una línea, decididos
// por tipo de movimiento. Cada puntero es nil cuando el tipo no lo usa.
type ResolvedLocations struct {
	From *entity.Stockard
	To   *entity.Stockard
}

// ResolveLocations decide qué stockard sirve de origen y/o destino para un
// producto según el tipo de movimiento. Determinista por tipo:
//
//   - IN: destino = get-or-create "<producto> Stock" en la bodega destino.
//   - OUT: origen = el stockard de la bodega origen con fila de stock para
//     el producto, primero por nombre ascendente; solo existencia, la
//     suficiencia se verifica después contra la fila bloqueada.
//   - TRANSFER: origen como OUT; destino = get-or-create
//     "<producto> Transfer Stock" en la bodega destino.
//
// La creación del stockard destino es un efecto persistente y visible:
// resolver dos veces el mismo (producto, bodega) reutiliza el mismo
// stockard gracias a la constraint única sobre (warehouse_id, name).
func ResolveLocations(
	stockards repository.StockardRepository,
	movementType entity.MovementType,
	product *entity.Product,
	fromWarehouseID, toWarehouseID *string,
) (ResolvedLocations, error) {
	var loc ResolvedLocations
	switch movementType {
	case entity.MovementTypeIn:
		to, err := stockards.GetOrCreate(*toWarehouseID, product.Name+" Stock")
		if err != nil {
			return loc, fmt.Errorf("resolver stockard destino: %w", err)
		}
		loc.To = to
	case entity.MovementTypeOut:
		from, err := resolveSource(stockards, product, *fromWarehouseID)
		if err != nil {
			return loc, err
		}
		loc.From = from
	case entity.MovementTypeTransfer:
		from, err := resolveSource(stockards, product, *fromWarehouseID)
		if err != nil {
			return loc, err
		}
		to, err := stockards.GetOrCreate(*toWarehouseID, product.Name+" Transfer Stock")
		if err != nil {
			return loc, fmt.Errorf("resolver stockard destino: %w", err)
		}
		loc.From = from
		loc.To = to
	default:
		return loc, domain.ErrInvalidMovement
	}
	return loc, nil
}

func resolveSource(stockards repository.StockardRepository, product *entity.Product, fromWarehouseID string) (*entity.Stockard, error) {
	from, err := stockards.FirstHoldingProduct(product.ID, fromWarehouseID)
	if err != nil {
		return nil, fmt.Errorf("resolver stockard origen: %w", err)
	}
	if from == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNoStockAvailable, product.Name)
	}
	return from, nil
}
