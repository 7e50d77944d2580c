package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Fitahiana66/GestionStock/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas sobre la tabla de productos (read-only).
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// TotalStock suma las cantidades de todos los productos.
func (r *ReportRepo) TotalStock(ctx context.Context) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM products`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total stock: %w", err)
	}
	return total, nil
}

// LowStockCount cuenta los productos en o por debajo de su umbral de stock bajo.
func (r *ReportRepo) LowStockCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE quantity <= low_stock_threshold`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("low stock count: %w", err)
	}
	return count, nil
}

// StockValue calcula el valor total del inventario (cantidad * precio de venta).
func (r *ReportRepo) StockValue(ctx context.Context) (decimal.Decimal, error) {
	var value decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity * price), 0) FROM products`).Scan(&value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("stock value: %w", err)
	}
	return value, nil
}
