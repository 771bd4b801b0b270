package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetForUpdate obtiene la fila bloqueándola para update (SELECT FOR UPDATE)
// dentro de la transacción en curso, para que movimientos concurrentes
// sobre el mismo par queden serializados por el bloqueo de fila; nil si no
// existe.
func (r *StockRepo) GetForUpdate(productID, stockardID string) (*entity.Stock, error) {
	query := `
		SELECT id, product_id, stockard_id, quantity, created_at, updated_at
		FROM stocks WHERE product_id = $1 AND stockard_id = $2
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, stockardID))
}

// AdjustQuantity aplica el delta stock.Quantity a la fila (product,
// stockard). La suma del conflicto la hace PostgreSQL sobre la fila ya
// comprometida: si dos transacciones insertan el mismo par a la vez, la
// segunda espera en el índice único y su rama DO UPDATE suma sobre la
// cantidad ganadora en vez de pisarla. Nunca elimina: las filas en cero
// persisten.
func (r *StockRepo) AdjustQuantity(stock *entity.Stock) error {
	query := `
		INSERT INTO stocks (id, product_id, stockard_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (product_id, stockard_id)
		DO UPDATE SET quantity = stocks.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.ProductID, stock.StockardID, stock.Quantity,
	)
	if err != nil {
		return fmt.Errorf("ajustar stock: %w", err)
	}
	return nil
}

// List devuelve la vista del libro con nombres resueltos, ordenada como el
// libro físico: bodega, stockard, producto.
func (r *StockRepo) List(warehouseID, productID string, limit, offset int) ([]*entity.StockLevel, error) {
	query := `
		SELECT st.product_id, p.name, st.stockard_id, sk.name, w.id, w.name, st.quantity, st.updated_at
		FROM stocks st
		JOIN products p ON p.id = st.product_id
		JOIN stockards sk ON sk.id = st.stockard_id
		JOIN warehouses w ON w.id = sk.warehouse_id`
	args := []any{}
	pos := 1
	where := ""
	if warehouseID != "" {
		where += fmt.Sprintf(" WHERE w.id = $%d", pos)
		args = append(args, warehouseID)
		pos++
	}
	if productID != "" {
		if where == "" {
			where = fmt.Sprintf(" WHERE st.product_id = $%d", pos)
		} else {
			where += fmt.Sprintf(" AND st.product_id = $%d", pos)
		}
		args = append(args, productID)
		pos++
	}
	query += where + fmt.Sprintf(" ORDER BY w.name, sk.name, p.name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		var lv entity.StockLevel
		if err := rows.Scan(&lv.ProductID, &lv.ProductName, &lv.StockardID, &lv.StockardName,
			&lv.WarehouseID, &lv.WarehouseName, &lv.Quantity, &lv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &lv)
	}
	return list, rows.Err()
}

func (r *StockRepo) scanOne(row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	err := row.Scan(&s.ID, &s.ProductID, &s.StockardID, &s.Quantity, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}
