// Package report contiene el agregador de cifras derivadas del inventario.
package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Fitahiana66/GestionStock/internal/application/dto"
	"github.com/Fitahiana66/GestionStock/internal/domain/repository"
)

// UseCase calcula el reporte de stock bajo demanda. Las tres cifras se
// recalculan desde cero en cada llamada consultando la tabla de productos;
// no hay caché ni mantenimiento incremental.
type UseCase struct {
	reportRepo repository.ReportRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(reportRepo repository.ReportRepository) *UseCase {
	return &UseCase{reportRepo: reportRepo}
}

// GetStockReport construye el reporte:
//  1. TotalStock     → Σ cantidad sobre todos los productos
//  2. LowStockCount  → productos con cantidad <= su propio umbral
//  3. StockValue     → Σ (cantidad × precio), redondeado a dos decimales
//
// Las tres consultas van en goroutines paralelas.
func (uc *UseCase) GetStockReport(ctx context.Context) (*dto.StockReportResponse, error) {
	type intResult struct {
		n   int64
		err error
	}
	type valueResult struct {
		v   decimal.Decimal
		err error
	}

	totalCh := make(chan intResult, 1)
	lowCh := make(chan intResult, 1)
	valueCh := make(chan valueResult, 1)

	go func() {
		n, err := uc.reportRepo.TotalStock(ctx)
		totalCh <- intResult{n, err}
	}()
	go func() {
		n, err := uc.reportRepo.LowStockCount(ctx)
		lowCh <- intResult{n, err}
	}()
	go func() {
		v, err := uc.reportRepo.StockValue(ctx)
		valueCh <- valueResult{v, err}
	}()

	total := <-totalCh
	low := <-lowCh
	value := <-valueCh

	if total.err != nil {
		return nil, fmt.Errorf("reporte: stock total: %w", total.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("reporte: productos en alerta: %w", low.err)
	}
	if value.err != nil {
		return nil, fmt.Errorf("reporte: valor de stock: %w", value.err)
	}

	return &dto.StockReportResponse{
		TotalStock:       total.n,
		LowStockProducts: low.n,
		StockValue:       value.v.StringFixed(2),
	}, nil
}
