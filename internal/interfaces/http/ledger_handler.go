package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rutastock-api/internal/application/dto"
	"github.com/jhoicas/rutastock-api/internal/domain/entity"
	domledger "github.com/jhoicas/rutastock-api/internal/domain/ledger"
	"github.com/jhoicas/rutastock-api/internal/domain/repository"
)

// LedgerService son las operaciones del ledger que consume la capa HTTP.
type LedgerService interface {
	GetDriverInventoryWithAlerts(ctx context.Context, driverID string, threshold decimal.Decimal) ([]domledger.DriverInventoryLine, error)
	AddAssignment(ctx context.Context, driverID, productID string, quantity decimal.Decimal, createdBy string) (*entity.Assignment, error)
	TransferStock(ctx context.Context, fromDriverID string, dest entity.Destination, productID string, quantity decimal.Decimal, createdBy string) (*entity.StockTransfer, error)
	RecordSale(ctx context.Context, driverID, productID string, quantity decimal.Decimal, orderID *string, createdBy string) (*entity.Sale, error)
}

// LedgerHandler maneja las peticiones HTTP del ledger de inventario (protegido).
type LedgerHandler struct {
	svc            LedgerService
	assignments    repository.AssignmentRepository
	transfers      repository.StockTransferRepository
	sales          repository.SaleRepository
	alertThreshold int
}

// NewLedgerHandler construye el handler. alertThreshold es el umbral por defecto
// cuando la petición no trae query param threshold.
func NewLedgerHandler(
	svc LedgerService,
	assignments repository.AssignmentRepository,
	transfers repository.StockTransferRepository,
	sales repository.SaleRepository,
	alertThreshold int,
) *LedgerHandler {
	if alertThreshold <= 0 {
		alertThreshold = domledger.DefaultAlertThreshold
	}
	return &LedgerHandler{
		svc:            svc,
		assignments:    assignments,
		transfers:      transfers,
		sales:          sales,
		alertThreshold: alertThreshold,
	}
}

// GetDriverInventory godoc
// @Summary      Inventario derivado de un conductor
// @Description  Una línea por producto con asignado, vendido, restante y nivel de alerta.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id         path   string  true   "ID del conductor"
// @Param        threshold  query  int     false  "Umbral de stock bajo (default configurado)"
// @Success      200  {object}  dto.DriverInventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drivers/{id}/inventory [get]
func (h *LedgerHandler) GetDriverInventory(c *fiber.Ctx) error {
	driverID := c.Params("id")
	threshold := c.QueryInt("threshold", h.alertThreshold)
	lines, err := h.svc.GetDriverInventoryWithAlerts(c.Context(), driverID, decimal.NewFromInt(int64(threshold)))
	if err != nil {
		return respondError(c, err)
	}
	out := dto.DriverInventoryResponse{DriverID: driverID, Lines: make([]dto.InventoryLineResponse, 0, len(lines))}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.InventoryLineResponse{
			ProductID:   l.ProductID,
			SKU:         l.SKU,
			ProductName: l.ProductName,
			Assigned:    l.Assigned,
			Sold:        l.Sold,
			Remaining:   l.Remaining,
			AlertLevel:  l.AlertLevel,
		})
	}
	return c.JSON(out)
}

// CreateAssignment godoc
// @Summary      Asignar stock de la bodega central a un conductor
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssignmentRequest  true  "driver_id, product_id, quantity"
// @Success      201   {object}  dto.AssignmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assignments [post]
func (h *LedgerHandler) CreateAssignment(c *fiber.Ctx) error {
	var in dto.CreateAssignmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	assignment, err := h.svc.AddAssignment(c.Context(), in.DriverID, in.ProductID, in.Quantity, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AssignmentResponse{
		ID:         assignment.ID,
		DriverID:   assignment.DriverID,
		ProductID:  assignment.ProductID,
		Quantity:   assignment.Quantity,
		AssignedAt: assignment.AssignedAt,
	})
}

// CreateTransfer godoc
// @Summary      Trasladar stock entre conductores o de vuelta a la bodega central
// @Description  to_driver_id vacío u omitido = retorno a la bodega central (collect).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "from_driver_id, to_driver_id (opcional), product_id, quantity"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *LedgerHandler) CreateTransfer(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	dest := entity.ToPool()
	if in.ToDriverID != "" {
		dest = entity.ToDriver(in.ToDriverID)
	}
	transfer, err := h.svc.TransferStock(c.Context(), in.FromDriverID, dest, in.ProductID, in.Quantity, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransferResponse{
		ID:            transfer.ID,
		FromDriverID:  transfer.FromDriverID,
		ToDriverID:    transfer.ToDriverID,
		ProductID:     transfer.ProductID,
		Quantity:      transfer.Quantity,
		TransferType:  transfer.TransferType,
		TransferredAt: transfer.TransferredAt,
	})
}

// CreateSale godoc
// @Summary      Registrar una venta directa contra el inventario de un conductor
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "driver_id, product_id, quantity"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *LedgerHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.svc.RecordSale(c.Context(), in.DriverID, in.ProductID, in.Quantity, nil, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaleResponse{
		ID:        sale.ID,
		DriverID:  sale.DriverID,
		ProductID: sale.ProductID,
		Quantity:  sale.Quantity,
		OrderID:   sale.OrderID,
		SoldAt:    sale.SoldAt,
	})
}

// ListAssignments godoc
// @Summary      Historial de asignaciones de un conductor
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del conductor"
// @Success      200  {array}  dto.AssignmentResponse
// @Router       /api/drivers/{id}/assignments [get]
func (h *LedgerHandler) ListAssignments(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	list, err := h.assignments.ListByDriver(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AssignmentResponse{
			ID:         a.ID,
			DriverID:   a.DriverID,
			ProductID:  a.ProductID,
			Quantity:   a.Quantity,
			AssignedAt: a.AssignedAt,
		})
	}
	return c.JSON(out)
}

// ListTransfers godoc
// @Summary      Historial de traslados de un conductor (origen o destino)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del conductor"
// @Success      200  {array}  dto.TransferResponse
// @Router       /api/drivers/{id}/transfers [get]
func (h *LedgerHandler) ListTransfers(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	list, err := h.transfers.ListByDriver(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.TransferResponse{
			ID:            t.ID,
			FromDriverID:  t.FromDriverID,
			ToDriverID:    t.ToDriverID,
			ProductID:     t.ProductID,
			Quantity:      t.Quantity,
			TransferType:  t.TransferType,
			TransferredAt: t.TransferredAt,
		})
	}
	return c.JSON(out)
}

// ListSales godoc
// @Summary      Historial de ventas de un conductor
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del conductor"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/drivers/{id}/sales [get]
func (h *LedgerHandler) ListSales(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	list, err := h.sales.ListByDriver(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SaleResponse{
			ID:        s.ID,
			DriverID:  s.DriverID,
			ProductID: s.ProductID,
			Quantity:  s.Quantity,
			OrderID:   s.OrderID,
			SoldAt:    s.SoldAt,
		})
	}
	return c.JSON(out)
}
