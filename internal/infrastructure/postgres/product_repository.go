package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Fitahiana66/GestionStock/internal/domain"
	"github.com/Fitahiana66/GestionStock/internal/domain/entity"
	"github.com/Fitahiana66/GestionStock/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// category_id es NULL en BD cuando el producto no tiene categoría; hacia el
// dominio viaja como string vacío.
const productColumns = `id, sku, name, quantity, low_stock_threshold, price, cost, COALESCE(category_id::text, ''), warehouse_id, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, quantity, low_stock_threshold, price, cost, category_id, warehouse_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Quantity, product.LowStockThreshold,
		product.Price, product.Cost, product.CategoryID, product.WarehouseID,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene un producto por ID bloqueando la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetBySKUAndWarehouse obtiene un producto por SKU dentro de una bodega.
func (r *ProductRepo) GetBySKUAndWarehouse(sku, warehouseID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1 AND warehouse_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku, warehouseID))
}

// GetBySKUAndWarehouseForUpdate igual que GetBySKUAndWarehouse pero bloqueando la fila.
func (r *ProductRepo) GetBySKUAndWarehouseForUpdate(sku, warehouseID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1 AND warehouse_id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku, warehouseID))
}

// Update actualiza todos los campos mutables de un producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, quantity = $3, low_stock_threshold = $4, price = $5, cost = $6,
		    category_id = NULLIF($7, ''), warehouse_id = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Quantity, product.LowStockThreshold,
		product.Price, product.Cost, product.CategoryID, product.WarehouseID, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con filtros opcionales, ordenados por nombre.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + productColumns + ` FROM products`)

	var conds []string
	var args []any
	if filter.WarehouseID != "" {
		args = append(args, filter.WarehouseID)
		conds = append(conds, fmt.Sprintf("warehouse_id = $%d", len(args)))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.MaxQuantity != nil {
		args = append(args, *filter.MaxQuantity)
		conds = append(conds, fmt.Sprintf("quantity <= $%d", len(args)))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY name ASC")

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Quantity, &p.LowStockThreshold,
			&p.Price, &p.Cost, &p.CategoryID, &p.WarehouseID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Quantity, &p.LowStockThreshold,
		&p.Price, &p.Cost, &p.CategoryID, &p.WarehouseID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
