package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Order.
const (
	OrderStatusFulfilled = "fulfilled"
	OrderStatusRejected  = "rejected"
)

// Order es un pedido de un vendedor contra el inventario de un conductor.
// Al cumplirse genera un evento Sale por línea, todo en una sola transacción.
type Order struct {
	ID           string
	DriverID     string
	CustomerName string
	Status       string // fulfilled, rejected
	Total        decimal.Decimal
	CreatedAt    time.Time
	CreatedBy    string
	Lines        []OrderLine
}

// OrderLine es una línea del pedido: producto, cantidad y precio al momento de la venta.
type OrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
