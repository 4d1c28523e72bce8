package ledger

import "github.com/shopspring/decimal"

// DriverInventoryLine es la vista derivada del inventario de un conductor para un producto:
//
//	assigned  = asignaciones + traslados entrantes - traslados salientes
//	sold      = ventas del conductor para el producto
//	remaining = assigned - sold
//
// Se calcula agregando el log de eventos; AlertLevel se clasifica contra el umbral del caller.
type DriverInventoryLine struct {
	ProductID   string
	SKU         string
	ProductName string
	Assigned    decimal.Decimal
	Sold        decimal.Decimal
	Remaining   decimal.Decimal
	AlertLevel  string
}
