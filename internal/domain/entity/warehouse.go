package entity

import "time"

// Warehouse representa una bodega física (sitio raíz del inventario).
// Name es único a nivel global; eliminar una bodega elimina en cascada sus stockards.
type Warehouse struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
