package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DriverStock es el contador materializado de stock restante por (conductor, producto).
// Se actualiza en la misma transacción que cada evento del ledger, por lo que nunca
// diverge del log; es la fila que se bloquea (FOR UPDATE) para validar movimientos.
type DriverStock struct {
	DriverID  string
	ProductID string
	Quantity  decimal.Decimal // remaining = assigned - sold, nunca negativa
	UpdatedAt time.Time
}
