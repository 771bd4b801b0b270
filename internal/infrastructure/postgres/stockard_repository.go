package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodegas-api/internal/domain"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/internal/domain/repository"
)

var _ repository.StockardRepository = (*StockardRepo)(nil)

// StockardRepo implementación del puerto StockardRepository sobre
// PostgreSQL (usable con pool o tx).
type StockardRepo struct {
	q Querier
}

// NewStockardRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockardRepository(q Querier) *StockardRepo {
	return &StockardRepo{q: q}
}

// Create persiste un nuevo stockard. El par (warehouse_id, name) es único.
func (r *StockardRepo) Create(stockard *entity.Stockard) error {
	query := `
		INSERT INTO stockards (id, warehouse_id, name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		stockard.ID, stockard.WarehouseID, stockard.Name, stockard.Description, stockard.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stockard: %w", err)
	}
	return nil
}

// GetByID obtiene un stockard por ID.
func (r *StockardRepo) GetByID(id string) (*entity.Stockard, error) {
	query := `
		SELECT id, warehouse_id, name, description, created_at
		FROM stockards WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetOrCreate devuelve el stockard (warehouseID, name), creándolo si no
// existe. El INSERT usa ON CONFLICT DO NOTHING sobre la constraint única y
// reselecciona, de modo que dos llamadas concurrentes convergen en la misma
// fila en lugar de duplicarla.
func (r *StockardRepo) GetOrCreate(warehouseID, name string) (*entity.Stockard, error) {
	existing, err := r.getByWarehouseAndName(warehouseID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	query := `
		INSERT INTO stockards (id, warehouse_id, name, description, created_at)
		VALUES ($1, $2, $3, '', $4)
		ON CONFLICT (warehouse_id, name) DO NOTHING`
	_, err = r.q.Exec(context.Background(), query, uuid.New().String(), warehouseID, name, time.Now())
	if err != nil {
		return nil, fmt.Errorf("get-or-create stockard: %w", err)
	}
	created, err := r.getByWarehouseAndName(warehouseID, name)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("get-or-create stockard: la fila no existe tras el insert")
	}
	return created, nil
}

// ListByWarehouse lista los stockards de una bodega ordenados por nombre.
func (r *StockardRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stockard, error) {
	query := `
		SELECT id, warehouse_id, name, description, created_at
		FROM stockards WHERE warehouse_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stockards: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stockard
	for rows.Next() {
		var s entity.Stockard
		if err := rows.Scan(&s.ID, &s.WarehouseID, &s.Name, &s.Description, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stockard: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// FirstHoldingProduct devuelve el stockard de la bodega con alguna fila de
// stock para el producto, el primero por nombre ascendente. Solo exige la
// existencia de la fila, no que su cantidad alcance.
func (r *StockardRepo) FirstHoldingProduct(productID, warehouseID string) (*entity.Stockard, error) {
	query := `
		SELECT sk.id, sk.warehouse_id, sk.name, sk.description, sk.created_at
		FROM stockards sk
		JOIN stocks st ON st.stockard_id = sk.id
		WHERE st.product_id = $1 AND sk.warehouse_id = $2
		ORDER BY sk.name ASC
		LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, warehouseID))
}

// Delete elimina un stockard por ID.
func (r *StockardRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stockards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stockard: %w", err)
	}
	return nil
}

func (r *StockardRepo) getByWarehouseAndName(warehouseID, name string) (*entity.Stockard, error) {
	query := `
		SELECT id, warehouse_id, name, description, created_at
		FROM stockards WHERE warehouse_id = $1 AND name = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, warehouseID, name))
}

func (r *StockardRepo) scanOne(row pgx.Row) (*entity.Stockard, error) {
	var s entity.Stockard
	err := row.Scan(&s.ID, &s.WarehouseID, &s.Name, &s.Description, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stockard: %w", err)
	}
	return &s, nil
}
