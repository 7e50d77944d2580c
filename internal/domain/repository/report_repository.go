package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ReportRepository define el puerto de consultas agregadas sobre productos
// (read-only). Los valores se recalculan desde cero en cada llamada; no hay
// caché ni mantenimiento incremental.
type ReportRepository interface {
	TotalStock(ctx context.Context) (int64, error)
	LowStockCount(ctx context.Context) (int64, error)
	StockValue(ctx context.Context) (decimal.Decimal, error)
}
