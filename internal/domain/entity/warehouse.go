package entity

import "time"

// Warehouse representa una bodega. Un producto pertenece a una sola bodega;
// los traslados mueven cantidades entre productos del mismo SKU.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
