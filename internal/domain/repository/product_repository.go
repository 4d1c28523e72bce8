package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rutastock-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para productos.
// TotalQuantity (bodega central) solo se modifica vía el ledger, dentro de
// una transacción y con la fila bloqueada (GetByIDForUpdate).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	GetByIDForUpdate(id string) (*entity.Product, error)
	UpdateTotalQuantity(id string, quantity decimal.Decimal) error
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	Archive(id string) error
}
