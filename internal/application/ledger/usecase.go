package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rutastock-api/internal/domain"
	"github.com/jhoicas/rutastock-api/internal/domain/entity"
	domledger "github.com/jhoicas/rutastock-api/internal/domain/ledger"
	"github.com/jhoicas/rutastock-api/internal/domain/repository"
)

// maxConflictRetries acota los reintentos automáticos cuando la transacción
// pierde una carrera (deadlock o falla de serialización).
const maxConflictRetries = 3

// LedgerUseCase es el libro de inventario: valida y registra asignaciones,
// traslados y ventas de forma transaccional (fila bloqueada con SELECT FOR UPDATE)
// y responde las consultas de inventario derivado por conductor.
//
// Cada mutación es un ciclo leer-validar-escribir dentro de una sola transacción;
// el contador materializado DriverStock y el evento append-only se actualizan juntos.
type LedgerUseCase struct {
	txRunner      TxRunner
	driverRepo    repository.DriverRepository
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryQueryRepository
	publisher     EventPublisher // opcional; nil = sin publicación
}

// NewLedgerUseCase construye el caso de uso. publisher puede ser nil.
func NewLedgerUseCase(
	txRunner TxRunner,
	driverRepo repository.DriverRepository,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryQueryRepository,
	publisher EventPublisher,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:      txRunner,
		driverRepo:    driverRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		publisher:     publisher,
	}
}

// GetDriverInventory devuelve las líneas derivadas del conductor con el umbral
// de alerta por defecto. Lectura pura: dos llamadas sin mutación intermedia
// devuelven lo mismo.
func (uc *LedgerUseCase) GetDriverInventory(ctx context.Context, driverID string) ([]domledger.DriverInventoryLine, error) {
	return uc.GetDriverInventoryWithAlerts(ctx, driverID, decimal.NewFromInt(domledger.DefaultAlertThreshold))
}

// GetDriverInventoryWithAlerts devuelve las líneas derivadas clasificando AlertLevel
// contra el umbral del caller. El umbral es un parámetro, no estado del ledger.
func (uc *LedgerUseCase) GetDriverInventoryWithAlerts(ctx context.Context, driverID string, threshold decimal.Decimal) ([]domledger.DriverInventoryLine, error) {
	if driverID == "" {
		return nil, domain.ErrInvalidInput
	}
	driver, err := uc.driverRepo.GetByID(driverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.inventoryRepo.LinesByDriver(driverID)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].AlertLevel = domledger.ClassifyRemaining(lines[i].Remaining, threshold)
	}
	return lines, nil
}

// AddAssignment mueve stock de la bodega central a un conductor. Es la única vía
// por la que stock central pasa a ser stock de conductor.
func (uc *LedgerUseCase) AddAssignment(ctx context.Context, driverID, productID string, quantity decimal.Decimal, createdBy string) (*entity.Assignment, error) {
	if driverID == "" || productID == "" || !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	driver, err := uc.driverRepo.GetByID(driverID)
	if err != nil {
		return nil, err
	}
	if !driver.IsActive() {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	assignment := &entity.Assignment{
		ID:         uuid.New().String(),
		DriverID:   driverID,
		ProductID:  productID,
		Quantity:   quantity,
		AssignedAt: now,
		CreatedBy:  createdBy,
	}

	err = uc.runWithRetry(ctx, func(r TxRepos) error {
		product, err := r.Products.GetByIDForUpdate(productID)
		if err != nil {
			return err
		}
		if !product.IsActive() {
			return domain.ErrNotFound
		}
		if product.TotalQuantity.LessThan(quantity) {
			return domain.NewInsufficientStock(product.TotalQuantity, quantity)
		}
		if err := r.Products.UpdateTotalQuantity(productID, product.TotalQuantity.Sub(quantity)); err != nil {
			return err
		}
		if err := r.DriverStock.AddQuantity(driverID, productID, quantity); err != nil {
			return err
		}
		return r.Assignments.Create(assignment)
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, Event{
		Type:       EventAssignmentCreated,
		DriverID:   driverID,
		ProductID:  productID,
		Quantity:   quantity,
		OccurredAt: now,
	})
	return assignment, nil
}

// TransferStock mueve stock de un conductor a otro (transfer) o de vuelta a la
// bodega central (collect). Los traslados mueven unidades, nunca las crean ni
// destruyen.
func (uc *LedgerUseCase) TransferStock(ctx context.Context, fromDriverID string, dest entity.Destination, productID string, quantity decimal.Decimal, createdBy string) (*entity.StockTransfer, error) {
	if fromDriverID == "" || productID == "" || !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !dest.IsPool() && (dest.DriverID() == "" || dest.DriverID() == fromDriverID) {
		return nil, domain.ErrInvalidInput
	}

	from, err := uc.driverRepo.GetByID(fromDriverID)
	if err != nil {
		return nil, err
	}
	if !from.IsActive() {
		return nil, domain.ErrNotFound
	}
	if !dest.IsPool() {
		to, err := uc.driverRepo.GetByID(dest.DriverID())
		if err != nil {
			return nil, err
		}
		if !to.IsActive() {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	transfer := &entity.StockTransfer{
		ID:            uuid.New().String(),
		FromDriverID:  fromDriverID,
		ProductID:     productID,
		Quantity:      quantity,
		TransferredAt: now,
		CreatedBy:     createdBy,
	}
	if dest.IsPool() {
		transfer.TransferType = entity.TransferTypeCollect
	} else {
		toID := dest.DriverID()
		transfer.ToDriverID = &toID
		transfer.TransferType = entity.TransferTypeTransfer
	}

	// Dos traslados cruzados entre los mismos conductores pueden bloquearse
	// mutuamente; PostgreSQL mata uno (40P01), se mapea a ErrConcurrencyConflict
	// y runWithRetry repite el ciclo completo.
	err = uc.runWithRetry(ctx, func(r TxRepos) error {
		source, err := r.DriverStock.GetForUpdate(fromDriverID, productID)
		if err != nil {
			return err
		}
		if source.Quantity.LessThan(quantity) {
			return domain.NewInsufficientStock(source.Quantity, quantity)
		}
		source.Quantity = source.Quantity.Sub(quantity)
		source.UpdatedAt = now
		if err := r.DriverStock.Upsert(source); err != nil {
			return err
		}

		if dest.IsPool() {
			product, err := r.Products.GetByIDForUpdate(productID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if err := r.Products.UpdateTotalQuantity(productID, product.TotalQuantity.Add(quantity)); err != nil {
				return err
			}
		} else {
			product, err := r.Products.GetByID(productID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			// El destino puede no tener fila todavía; el crédito suma en la
			// base en vez de leer-sumar-escribir, que sin fila no bloquea nada.
			if err := r.DriverStock.AddQuantity(dest.DriverID(), productID, quantity); err != nil {
				return err
			}
		}
		return r.Transfers.Create(transfer)
	})
	if err != nil {
		return nil, err
	}

	ev := Event{
		Type:         EventStockTransferred,
		DriverID:     fromDriverID,
		ProductID:    productID,
		Quantity:     quantity,
		TransferType: transfer.TransferType,
		OccurredAt:   now,
	}
	if transfer.ToDriverID != nil {
		ev.ToDriverID = *transfer.ToDriverID
	}
	uc.publish(ctx, ev)
	return transfer, nil
}

// RecordSale consume stock del conductor (vendido, no devuelto). No toca la
// bodega central: esas unidades salieron del pool al asignarse.
func (uc *LedgerUseCase) RecordSale(ctx context.Context, driverID, productID string, quantity decimal.Decimal, orderID *string, createdBy string) (*entity.Sale, error) {
	if driverID == "" || productID == "" || !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	driver, err := uc.driverRepo.GetByID(driverID)
	if err != nil {
		return nil, err
	}
	if !driver.IsActive() {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		DriverID:  driverID,
		ProductID: productID,
		Quantity:  quantity,
		OrderID:   orderID,
		SoldAt:    now,
		CreatedBy: createdBy,
	}

	err = uc.runWithRetry(ctx, func(r TxRepos) error {
		return uc.recordSaleInTx(r, sale)
	})
	if err != nil {
		return nil, err
	}

	uc.PublishSaleRecorded(ctx, sale)
	return sale, nil
}

// PublishSaleRecorded publica el evento de una venta ya confirmada. Lo usa
// RecordSale y el caso de uso de pedidos después de confirmar su transacción:
// toda mutación confirmada del ledger se publica, venga de donde venga.
func (uc *LedgerUseCase) PublishSaleRecorded(ctx context.Context, sale *entity.Sale) {
	ev := Event{
		Type:       EventSaleRecorded,
		DriverID:   sale.DriverID,
		ProductID:  sale.ProductID,
		Quantity:   sale.Quantity,
		OccurredAt: sale.SoldAt,
	}
	if sale.OrderID != nil {
		ev.OrderID = *sale.OrderID
	}
	uc.publish(ctx, ev)
}

// RecordSaleInTx registra una venta usando los repositorios de una transacción
// abierta por el caller (integración pedidos-inventario: todas las líneas de un
// pedido se confirman o revierten juntas).
func (uc *LedgerUseCase) RecordSaleInTx(r TxRepos, driverID, productID string, quantity decimal.Decimal, orderID *string, createdBy string) (*entity.Sale, error) {
	if driverID == "" || productID == "" || !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		DriverID:  driverID,
		ProductID: productID,
		Quantity:  quantity,
		OrderID:   orderID,
		SoldAt:    time.Now(),
		CreatedBy: createdBy,
	}
	if err := uc.recordSaleInTx(r, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// recordSaleInTx: bloquea la fila de stock, verifica remaining >= cantidad,
// descuenta y agrega el evento de venta.
func (uc *LedgerUseCase) recordSaleInTx(r TxRepos, sale *entity.Sale) error {
	product, err := r.Products.GetByID(sale.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	stock, err := r.DriverStock.GetForUpdate(sale.DriverID, sale.ProductID)
	if err != nil {
		return err
	}
	if stock.Quantity.LessThan(sale.Quantity) {
		return domain.NewInsufficientStock(stock.Quantity, sale.Quantity)
	}
	stock.Quantity = stock.Quantity.Sub(sale.Quantity)
	stock.UpdatedAt = sale.SoldAt
	if err := r.DriverStock.Upsert(stock); err != nil {
		return err
	}
	return r.Sales.Create(sale)
}

// runWithRetry repite el ciclo completo leer-validar-escribir ante conflictos de
// concurrencia, hasta maxConflictRetries; cualquier otro error corta de inmediato.
func (uc *LedgerUseCase) runWithRetry(ctx context.Context, fn func(r TxRepos) error) error {
	var err error
	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		err = uc.txRunner.Run(ctx, fn)
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			return err
		}
	}
	return err
}

// publish envía el evento si hay publisher configurado. Best-effort: la mutación
// ya quedó confirmada, un fallo de publicación no la revierte.
func (uc *LedgerUseCase) publish(ctx context.Context, ev Event) {
	if uc.publisher == nil {
		return
	}
	_ = uc.publisher.Publish(ctx, ev)
}
