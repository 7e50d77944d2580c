package postgres

import (
	"context"
	"fmt"

	"github.com/Fitahiana66/GestionStock/internal/domain/entity"
	"github.com/Fitahiana66/GestionStock/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del puerto StockMovementRepository sobre PostgreSQL.
// El libro de movimientos es append-only: solo existe INSERT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento en el libro.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, user_id, type, quantity, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.UserID, movement.Type,
		movement.Quantity, movement.Reason, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListDetails lista movimientos recientes con nombre de producto y de usuario.
func (r *StockMovementRepo) ListDetails(limit, offset int) ([]*entity.StockMovementDetail, error) {
	query := `
		SELECT m.id, m.product_id, m.user_id, m.type, m.quantity, m.reason, m.created_at,
		       COALESCE(p.name, ''), COALESCE(u.name, '')
		FROM stock_movements m
		LEFT JOIN products p ON p.id = m.product_id
		LEFT JOIN users u ON u.id = m.user_id
		ORDER BY m.created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovementDetail
	for rows.Next() {
		var m entity.StockMovementDetail
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.UserID, &m.Type, &m.Quantity, &m.Reason, &m.CreatedAt,
			&m.ProductName, &m.UserName,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}

// ListByProduct lista los movimientos de un producto, del más reciente al más antiguo.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, user_id, type, quantity, reason, created_at
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.UserID, &m.Type, &m.Quantity, &m.Reason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}
