package repository

import "github.com/jhoicas/rutastock-api/internal/domain/entity"

// DriverRepository define el puerto de persistencia para conductores.
// Archive en lugar de borrado físico: los eventos históricos conservan su referente.
type DriverRepository interface {
	Create(driver *entity.Driver) error
	GetByID(id string) (*entity.Driver, error)
	Update(driver *entity.Driver) error
	List(limit, offset int) ([]*entity.Driver, error)
	Archive(id string) error
}
