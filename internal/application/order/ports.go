package order

import (
	"context"

	"github.com/Fitahiana66/GestionStock/internal/domain/entity"
	"github.com/Fitahiana66/GestionStock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de órdenes, productos y movimientos atados a esa tx. La orden,
// sus líneas, los cambios de cantidad y los asientos se confirman o se
// revierten como una unidad.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// PDFGenerator genera el documento imprimible de una orden.
type PDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.OrderSummary, items []*entity.OrderItemDetail) ([]byte, error)
}
