package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual de cantidad
)

// Razones fijas registradas por el flujo de mutación de stock.
const (
	ReasonInitialStock  = "creación inicial"
	ReasonPurchaseOrder = "orden de compra"
	ReasonSale          = "venta"
	ReasonAdjustmentIn  = "ajuste de stock (entrada)"
	ReasonAdjustmentOut = "ajuste de stock (salida)"
	ReasonTransferOut   = "traslado a otra bodega"
	ReasonTransferIn    = "traslado desde otra bodega"
)

// StockMovement es un asiento inmutable del libro de movimientos: cada cambio
// de cantidad de un producto produce exactamente un asiento en la misma
// transacción. Nunca se actualiza ni se borra; si el producto referenciado se
// elimina, el asiento queda huérfano a propósito (se conserva la auditoría).
type StockMovement struct {
	ID        string
	ProductID string
	UserID    string
	Type      string // IN, OUT, ADJUSTMENT
	Quantity  int    // magnitud del cambio, siempre positiva
	Reason    string
	CreatedAt time.Time
}

// StockMovementDetail es un asiento con los nombres de producto y usuario
// resueltos, para el listado de historial.
type StockMovementDetail struct {
	StockMovement
	ProductName string
	UserName    string
}
