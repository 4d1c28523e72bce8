package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Product y Driver. El "borrado" es un archivado lógico:
// los eventos históricos siempre conservan su referente.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Product representa un producto del catálogo de distribución.
// TotalQuantity es la cantidad en la bodega central (sin asignar a conductores);
// solo el ledger la modifica después de la creación.
type Product struct {
	ID            string
	SKU           string // código único del producto
	Name          string
	Description   string
	Price         decimal.Decimal // precio de venta unitario
	TotalQuantity decimal.Decimal // bodega central, nunca negativa
	Status        string          // active, archived
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive indica si el producto puede participar en nuevos eventos de inventario.
func (p *Product) IsActive() bool {
	return p != nil && p.Status == StatusActive
}
