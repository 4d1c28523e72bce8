package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es el evento que consume stock del inventario de un conductor (vendido,
// no devuelto). No toca la bodega central: ese stock ya salió al asignarse.
// Inmutable una vez creado.
type Sale struct {
	ID        string
	DriverID  string
	ProductID string
	Quantity  decimal.Decimal
	OrderID   *string // pedido que originó la venta, si aplica
	SoldAt    time.Time
	CreatedBy string
}
