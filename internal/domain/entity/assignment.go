package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Assignment es el evento que mueve stock de la bodega central a un conductor.
// Es inmutable una vez creado: el log de eventos es append-only.
type Assignment struct {
	ID         string
	DriverID   string
	ProductID  string
	Quantity   decimal.Decimal
	AssignedAt time.Time
	CreatedBy  string // usuario que registró la asignación
}
