package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de traslado de stock.
const (
	TransferTypeTransfer = "transfer" // entre conductores
	TransferTypeCollect  = "collect"  // retorno a la bodega central
)

// StockTransfer es el evento que mueve stock entre conductores o de un conductor
// de vuelta a la bodega central. ToDriverID es nil cuando el destino es la bodega
// central (TransferType = collect). Inmutable una vez creado.
type StockTransfer struct {
	ID            string
	FromDriverID  string
	ToDriverID    *string // nil = bodega central
	ProductID     string
	Quantity      decimal.Decimal
	TransferType  string // transfer, collect
	TransferredAt time.Time
	CreatedBy     string
}

// Destination es el destino de un traslado: otro conductor o la bodega central.
// Reemplaza el centinela textual "main-inventory" por una variante etiquetada.
type Destination struct {
	driverID string
	pool     bool
}

// ToDriver construye el destino "otro conductor".
func ToDriver(driverID string) Destination {
	return Destination{driverID: driverID}
}

// ToPool construye el destino "bodega central".
func ToPool() Destination {
	return Destination{pool: true}
}

// IsPool indica si el destino es la bodega central.
func (d Destination) IsPool() bool { return d.pool }

// DriverID devuelve el conductor destino; vacío si el destino es la bodega central.
func (d Destination) DriverID() string { return d.driverID }
