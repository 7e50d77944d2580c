package stock

import (
	"context"

	"github.com/Fitahiana66/GestionStock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que cada cambio de cantidad y su
// asiento en el libro de movimientos se confirmen o se reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
