package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de una orden nueva.
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest body para POST /api/orders.
// SupplierID es obligatorio si Type es purchase; se ignora en ventas.
type CreateOrderRequest struct {
	Type       string             `json:"type"`
	SupplierID string             `json:"supplier_id,omitempty"`
	Items      []OrderItemRequest `json:"items"`
}

// UpdateOrderRequest body para PUT /api/orders/:id (solo estado).
type UpdateOrderRequest struct {
	Status string `json:"status"`
}

// OrderResponse salida de una orden (sin líneas).
type OrderResponse struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	Status       string          `json:"status"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
	UserID       string          `json:"user_id"`
	UserName     string          `json:"user_name,omitempty"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// OrderItemResponse línea de orden con nombre de producto.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// OrderDetailResponse orden con líneas anidadas.
type OrderDetailResponse struct {
	OrderResponse
	Items []OrderItemResponse `json:"items"`
}

// OrderListResponse listado de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
