package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Fitahiana66/GestionStock/internal/domain"
	"github.com/Fitahiana66/GestionStock/internal/domain/entity"
	"github.com/Fitahiana66/GestionStock/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera de una orden. SupplierID vacío se guarda como NULL.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, type, status, supplier_id, user_id, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Type, order.Status, order.SupplierID, order.UserID,
		order.TotalAmount, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de orden.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una orden por ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `
		SELECT id, type, status, COALESCE(supplier_id::text, ''), user_id, total_amount, created_at, updated_at
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Type, &o.Status, &o.SupplierID, &o.UserID, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// Update actualiza el estado de una orden.
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, order.ID, order.Status, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista órdenes recientes con nombre del proveedor y del usuario.
func (r *OrderRepo) List(limit, offset int) ([]*entity.OrderSummary, error) {
	query := `
		SELECT o.id, o.type, o.status, COALESCE(o.supplier_id::text, ''), o.user_id, o.total_amount,
		       o.created_at, o.updated_at, COALESCE(s.name, ''), COALESCE(u.name, '')
		FROM orders o
		LEFT JOIN suppliers s ON s.id = o.supplier_id
		LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.OrderSummary
	for rows.Next() {
		var o entity.OrderSummary
		if err := rows.Scan(
			&o.ID, &o.Type, &o.Status, &o.SupplierID, &o.UserID, &o.TotalAmount,
			&o.CreatedAt, &o.UpdatedAt, &o.SupplierName, &o.UserName,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}

// ListItems lista las líneas de una orden con el nombre del producto.
func (r *OrderRepo) ListItems(orderID string) ([]*entity.OrderItemDetail, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, i.quantity, i.unit_price, i.created_at,
		       COALESCE(p.name, '')
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY i.created_at ASC`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.OrderItemDetail
	for rows.Next() {
		var it entity.OrderItemDetail
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.CreatedAt,
			&it.ProductName,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
