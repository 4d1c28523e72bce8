package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rutastock-api/internal/domain/entity"
	"github.com/jhoicas/rutastock-api/internal/domain/ledger"
)

// AssignmentRepository persiste eventos de asignación (append-only).
type AssignmentRepository interface {
	Create(assignment *entity.Assignment) error
	ListByDriver(driverID string, limit, offset int) ([]*entity.Assignment, error)
}

// StockTransferRepository persiste eventos de traslado (append-only).
type StockTransferRepository interface {
	Create(transfer *entity.StockTransfer) error
	// ListByDriver lista traslados donde el conductor es origen o destino.
	ListByDriver(driverID string, limit, offset int) ([]*entity.StockTransfer, error)
}

// SaleRepository persiste eventos de venta (append-only).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	ListByDriver(driverID string, limit, offset int) ([]*entity.Sale, error)
}

// DriverStockRepository mantiene el contador materializado por (conductor, producto).
// Se usa dentro de transacciones: GetForUpdate bloquea la fila para serializar
// el ciclo leer-validar-escribir por par. Los débitos (traslado saliente, venta)
// usan GetForUpdate + Upsert sobre una fila que ya existe; los créditos usan
// AddQuantity, que suma directamente en la base. SELECT FOR UPDATE sobre un par
// sin fila no bloquea nada, así que un crédito leer-sumar-escribir perdería
// actualizaciones concurrentes sobre pares nuevos.
type DriverStockRepository interface {
	Get(driverID, productID string) (*entity.DriverStock, error)
	GetForUpdate(driverID, productID string) (*entity.DriverStock, error)
	Upsert(stock *entity.DriverStock) error
	AddQuantity(driverID, productID string, delta decimal.Decimal) error
}

// InventoryQueryRepository calcula las líneas derivadas de inventario de un conductor
// agregando el log de eventos. Lectura pura; AlertLevel lo llena el caso de uso.
type InventoryQueryRepository interface {
	LinesByDriver(driverID string) ([]ledger.DriverInventoryLine, error)
}
