package entity

import "time"

// Stockard representa una sububicación de almacenamiento dentro de una bodega.
// Pertenece a exactamente una bodega; el par (WarehouseID, Name) es único.
// Puede crearla un operador o el resolver de ubicaciones al procesar un movimiento.
type Stockard struct {
	ID          string
	WarehouseID string
	Name        string
	Description string
	CreatedAt   time.Time
}
