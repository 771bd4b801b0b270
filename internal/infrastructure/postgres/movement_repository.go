package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// Los movimientos son historial inmutable: solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste la cabecera del movimiento. La constraint única sobre
// reference_number es el guardián definitivo de unicidad: una violación se
// devuelve como domain.ErrDuplicateReference.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, movement_type, from_warehouse_id, to_warehouse_id, reference_number, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, string(movement.Type), movement.FromWarehouseID, movement.ToWarehouseID,
		movement.ReferenceNumber, movement.Notes, movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReference
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// CreateItem persiste una línea con sus stockards resueltos.
func (r *StockMovementRepo) CreateItem(item *entity.StockMovementItem) error {
	query := `
		INSERT INTO stock_movement_items (id, movement_id, product_id, from_stockard_id, to_stockard_id, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.MovementID, item.ProductID, item.FromStockardID, item.ToStockardID, item.Quantity,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement item: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento con sus items; nil si no existe.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `
		SELECT id, movement_type, from_warehouse_id, to_warehouse_id, reference_number, notes, created_at, created_by
		FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	var movementType string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &movementType, &m.FromWarehouseID, &m.ToWarehouseID,
		&m.ReferenceNumber, &m.Notes, &m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	m.Type = entity.MovementType(movementType)
	if m.Items, err = r.loadItems(m.ID); err != nil {
		return nil, err
	}
	return &m, nil
}

// List devuelve movimientos con sus items, del más reciente al más antiguo.
func (r *StockMovementRepo) List(limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, movement_type, from_warehouse_id, to_warehouse_id, reference_number, notes, created_at, created_by
		FROM stock_movements ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var movementType string
		if err := rows.Scan(&m.ID, &movementType, &m.FromWarehouseID, &m.ToWarehouseID,
			&m.ReferenceNumber, &m.Notes, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.Type = entity.MovementType(movementType)
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, m := range list {
		if m.Items, err = r.loadItems(m.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// ExistsByReference verifica si una referencia ya fue emitida.
func (r *StockMovementRepo) ExistsByReference(reference string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM stock_movements WHERE reference_number = $1)`,
		reference,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by reference: %w", err)
	}
	return exists, nil
}

func (r *StockMovementRepo) loadItems(movementID string) ([]entity.StockMovementItem, error) {
	query := `
		SELECT i.id, i.movement_id, i.product_id, i.from_stockard_id, i.to_stockard_id, i.quantity
		FROM stock_movement_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.movement_id = $1
		ORDER BY p.name`
	rows, err := r.q.Query(context.Background(), query, movementID)
	if err != nil {
		return nil, fmt.Errorf("list movement items: %w", err)
	}
	defer rows.Close()
	var items []entity.StockMovementItem
	for rows.Next() {
		var it entity.StockMovementItem
		if err := rows.Scan(&it.ID, &it.MovementID, &it.ProductID, &it.FromStockardID, &it.ToStockardID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan movement item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
