package repository

import "github.com/Fitahiana66/GestionStock/internal/domain/entity"

// OrderRepository define el puerto de persistencia para órdenes y sus líneas.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	Update(order *entity.Order) error
	List(limit, offset int) ([]*entity.OrderSummary, error)
	ListItems(orderID string) ([]*entity.OrderItemDetail, error)
}
