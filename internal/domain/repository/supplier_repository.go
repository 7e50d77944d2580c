package repository

import "github.com/Fitahiana66/GestionStock/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	List() ([]*entity.Supplier, error)
	Delete(id string) error
}
