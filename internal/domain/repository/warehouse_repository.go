package repository

import "github.com/Fitahiana66/GestionStock/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	List() ([]*entity.Warehouse, error)
	Delete(id string) error
}
