package repository

import "github.com/Fitahiana66/GestionStock/internal/domain/entity"

// ProductFilter filtros opcionales para el listado de productos.
// MaxQuantity filtra productos con cantidad <= al valor dado.
type ProductFilter struct {
	WarehouseID string
	CategoryID  string
	MaxQuantity *int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las variantes ForUpdate bloquean la fila (SELECT FOR UPDATE) y solo tienen
// sentido dentro de una transacción: la fila de producto es el único recurso
// en disputa entre órdenes, ajustes y traslados.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	GetBySKUAndWarehouse(sku, warehouseID string) (*entity.Product, error)
	GetBySKUAndWarehouseForUpdate(sku, warehouseID string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(filter ProductFilter) ([]*entity.Product, error)
	Delete(id string) error
}
