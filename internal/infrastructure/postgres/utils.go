package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation detecta la violación de una constraint única (SQLSTATE
// 23505). Es el guardián definitivo de unicidad del esquema: el nombre de
// bodega, el par (bodega, nombre) de stockard, la referencia de movimiento
// y el email de usuario se resuelven con esta señal, no con chequeos
// previos al insert.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}
