package entity

import "time"

// Supplier representa un proveedor (solo referenciado por órdenes de compra).
type Supplier struct {
	ID           string
	Name         string
	ContactEmail string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
