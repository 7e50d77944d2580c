package repository

import "github.com/Fitahiana66/GestionStock/internal/domain/entity"

// StockMovementRepository define el puerto del libro de movimientos.
// Solo inserta: no existen operaciones de actualización ni borrado; un fallo
// del insert se propaga y aborta la transacción que lo envuelve.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListDetails(limit, offset int) ([]*entity.StockMovementDetail, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
}
