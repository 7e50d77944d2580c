package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Si Quantity > 0 se
// registra un asiento inicial en el libro de movimientos.
type CreateProductRequest struct {
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Quantity          int             `json:"quantity"`
	LowStockThreshold *int            `json:"low_stock_threshold"`
	Price             decimal.Decimal `json:"price"`
	Cost              decimal.Decimal `json:"cost"`
	CategoryID        string          `json:"category_id"`
	WarehouseID       string          `json:"warehouse_id"`
}

// UpdateProductRequest entrada para actualizar un producto (reemplazo completo
// de campos; el SKU no cambia). Si la cantidad difiere de la actual se genera
// un asiento de ajuste en la misma transacción.
type UpdateProductRequest struct {
	Name              string          `json:"name"`
	Quantity          int             `json:"quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	Price             decimal.Decimal `json:"price"`
	Cost              decimal.Decimal `json:"cost"`
	CategoryID        string          `json:"category_id"`
	WarehouseID       string          `json:"warehouse_id"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string          `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Quantity          int             `json:"quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	Price             decimal.Decimal `json:"price"`
	Cost              decimal.Decimal `json:"cost"`
	CategoryID        string          `json:"category_id"`
	WarehouseID       string          `json:"warehouse_id"`
	IsLowStock        bool            `json:"is_low_stock"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}
