package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rutastock-api/internal/application/dto"
	"github.com/jhoicas/rutastock-api/internal/application/ledger"
	"github.com/jhoicas/rutastock-api/internal/domain"
	"github.com/jhoicas/rutastock-api/internal/domain/entity"
	"github.com/jhoicas/rutastock-api/internal/domain/repository"
)

const maxConflictRetries = 3

// OrderUseCase registra pedidos de vendedores contra el inventario de un conductor.
// Cada línea se valida y descuenta vía el ledger dentro de una sola transacción:
// si una línea no tiene stock suficiente, el pedido completo se revierte.
type OrderUseCase struct {
	txRunner   ledger.TxRunner
	ledgerUC   *ledger.LedgerUseCase
	driverRepo repository.DriverRepository
	orderRepo  repository.OrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner ledger.TxRunner,
	ledgerUC *ledger.LedgerUseCase,
	driverRepo repository.DriverRepository,
	orderRepo repository.OrderRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:   txRunner,
		ledgerUC:   ledgerUC,
		driverRepo: driverRepo,
		orderRepo:  orderRepo,
	}
}

// PlaceOrder valida el pedido, registra una venta por línea y persiste el pedido,
// todo o nada.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, in dto.CreateOrderRequest, createdBy string) (*dto.OrderResponse, error) {
	if in.DriverID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	driver, err := uc.driverRepo.GetByID(in.DriverID)
	if err != nil {
		return nil, err
	}
	if !driver.IsActive() {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	orderID := uuid.New().String()
	var order *entity.Order
	var sales []*entity.Sale

	run := func(r ledger.TxRepos) error {
		total := decimal.Zero
		lines := make([]entity.OrderLine, 0, len(in.Lines))
		sales = sales[:0] // un reintento repite el ciclo completo
		for _, line := range in.Lines {
			product, err := r.Products.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			sale, err := uc.ledgerUC.RecordSaleInTx(r, in.DriverID, line.ProductID, line.Quantity, &orderID, createdBy)
			if err != nil {
				return err
			}
			sales = append(sales, sale)
			subtotal := product.Price.Mul(line.Quantity)
			total = total.Add(subtotal)
			lines = append(lines, entity.OrderLine{
				ID:        uuid.New().String(),
				OrderID:   orderID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
				Subtotal:  subtotal,
			})
		}
		order = &entity.Order{
			ID:           orderID,
			DriverID:     in.DriverID,
			CustomerName: in.CustomerName,
			Status:       entity.OrderStatusFulfilled,
			Total:        total,
			CreatedAt:    now,
			CreatedBy:    createdBy,
			Lines:        lines,
		}
		return r.Orders.Create(order)
	}

	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		err = uc.txRunner.Run(ctx, run)
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	// Las ventas ya quedaron confirmadas; se publica una por línea, best-effort.
	for _, sale := range sales {
		uc.ledgerUC.PublishSaleRecorded(ctx, sale)
	}
	return toOrderResponse(order), nil
}

// GetByID obtiene un pedido con sus líneas.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// ListByDriver lista pedidos cumplidos contra el inventario de un conductor.
func (uc *OrderUseCase) ListByDriver(ctx context.Context, driverID string, limit, offset int) (*dto.OrderListResponse, error) {
	list, err := uc.orderRepo.ListByDriver(driverID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return &dto.OrderResponse{
		ID:           o.ID,
		DriverID:     o.DriverID,
		CustomerName: o.CustomerName,
		Status:       o.Status,
		Total:        o.Total,
		Lines:        lines,
		CreatedAt:    o.CreatedAt,
	}
}
