package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto almacenado en una bodega concreta.
// La identidad primaria es el ID opaco; el SKU es la clave documentada de
// fusión entre bodegas: un traslado busca el producto destino por
// (SKU, bodega destino). Quantity se mantiene de forma incremental y cada
// cambio genera un StockMovement en la misma transacción.
type Product struct {
	ID                string
	SKU               string
	Name              string
	Quantity          int
	LowStockThreshold int // por defecto 5
	Price             decimal.Decimal // precio de venta
	Cost              decimal.Decimal // costo de última compra
	CategoryID        string
	WarehouseID       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si el producto está en o por debajo de su umbral.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}
