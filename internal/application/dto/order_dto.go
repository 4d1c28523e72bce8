package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders. Todas las líneas se validan y
// registran en una sola transacción: o entra el pedido completo o nada.
type CreateOrderRequest struct {
	DriverID     string             `json:"driver_id"`
	CustomerName string             `json:"customer_name,omitempty"`
	Lines        []OrderLineRequest `json:"lines"`
}

// OrderLineRequest línea del pedido.
type OrderLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// OrderLineResponse línea del pedido persistida.
type OrderLineResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse pedido cumplido con sus líneas.
type OrderResponse struct {
	ID           string              `json:"id"`
	DriverID     string              `json:"driver_id"`
	CustomerName string              `json:"customer_name,omitempty"`
	Status       string              `json:"status"`
	Total        decimal.Decimal     `json:"total"`
	Lines        []OrderLineResponse `json:"lines"`
	CreatedAt    time.Time           `json:"created_at"`
}

// OrderListResponse listado paginado de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
