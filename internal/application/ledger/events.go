package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento publicados tras confirmar una mutación del ledger.
const (
	EventAssignmentCreated = "assignment.created"
	EventStockTransferred  = "stock.transferred"
	EventSaleRecorded      = "sale.recorded"
)

// Event es la notificación que se publica a consumidores externos (alertas,
// dashboards) después de que la mutación quedó confirmada en la base de datos.
type Event struct {
	Type         string          `json:"type"`
	DriverID     string          `json:"driver_id"`
	ToDriverID   string          `json:"to_driver_id,omitempty"`
	ProductID    string          `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	TransferType string          `json:"transfer_type,omitempty"`
	OrderID      string          `json:"order_id,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// EventPublisher publica eventos del ledger. Best-effort: un error de publicación
// se registra pero nunca falla la operación ya confirmada.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
