package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAssignmentRequest body para POST /api/assignments.
type CreateAssignmentRequest struct {
	DriverID  string          `json:"driver_id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateTransferRequest body para POST /api/transfers.
// ToDriverID vacío u omitido = retorno a la bodega central (collect).
type CreateTransferRequest struct {
	FromDriverID string          `json:"from_driver_id"`
	ToDriverID   string          `json:"to_driver_id,omitempty"`
	ProductID    string          `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// CreateSaleRequest body para POST /api/sales (venta directa, sin pedido).
type CreateSaleRequest struct {
	DriverID  string          `json:"driver_id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// AssignmentResponse respuesta de una asignación registrada.
type AssignmentResponse struct {
	ID         string          `json:"id"`
	DriverID   string          `json:"driver_id"`
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	AssignedAt time.Time       `json:"assigned_at"`
}

// TransferResponse respuesta de un traslado registrado.
type TransferResponse struct {
	ID            string          `json:"id"`
	FromDriverID  string          `json:"from_driver_id"`
	ToDriverID    *string         `json:"to_driver_id"` // null = bodega central
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	TransferType  string          `json:"transfer_type"`
	TransferredAt time.Time       `json:"transferred_at"`
}

// SaleResponse respuesta de una venta registrada.
type SaleResponse struct {
	ID        string          `json:"id"`
	DriverID  string          `json:"driver_id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	OrderID   *string         `json:"order_id,omitempty"`
	SoldAt    time.Time       `json:"sold_at"`
}

// InventoryLineResponse línea derivada del inventario de un conductor.
type InventoryLineResponse struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	Assigned    decimal.Decimal `json:"assigned"`
	Sold        decimal.Decimal `json:"sold"`
	Remaining   decimal.Decimal `json:"remaining"`
	AlertLevel  string          `json:"alert_level"`
}

// DriverInventoryResponse inventario completo de un conductor.
type DriverInventoryResponse struct {
	DriverID string                  `json:"driver_id"`
	Lines    []InventoryLineResponse `json:"lines"`
}
