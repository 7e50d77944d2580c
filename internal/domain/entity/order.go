package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de orden.
const (
	OrderTypePurchase = "purchase"
	OrderTypeSale     = "sale"
)

// Estados de orden. Las transiciones no están restringidas: cualquier estado
// puede suceder a cualquier otro (override administrativo).
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order representa una orden de compra o de venta. Se crea de forma atómica
// junto con sus ítems y los efectos de stock; nunca se elimina.
type Order struct {
	ID          string
	Type        string // purchase, sale
	Status      string // pending por defecto
	SupplierID  string // obligatorio en compras, vacío en ventas
	UserID      string
	TotalAmount decimal.Decimal // Σ cantidad × precio unitario, calculado al crear
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderItem es una línea de orden, inmutable una vez creada. UnitPrice es una
// instantánea del precio pactado, independiente del precio actual del producto.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	CreatedAt time.Time
}

// OrderSummary es una orden con los nombres de proveedor y usuario resueltos.
type OrderSummary struct {
	Order
	SupplierName string
	UserName     string
}

// OrderItemDetail es una línea con el nombre del producto resuelto.
type OrderItemDetail struct {
	OrderItem
	ProductName string
}
