package entity

import "time"

// Product representa un producto del catálogo, independiente de su ubicación.
type Product struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
