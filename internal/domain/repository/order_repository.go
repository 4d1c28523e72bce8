package repository

import "github.com/jhoicas/rutastock-api/internal/domain/entity"

// OrderRepository persiste pedidos con sus líneas.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	ListByDriver(driverID string, limit, offset int) ([]*entity.Order, error)
}
