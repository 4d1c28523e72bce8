package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rutastock-api/internal/application/reports"
	domledger "github.com/jhoicas/rutastock-api/internal/domain/ledger"
)

// ReportHandler genera documentos derivados del ledger.
type ReportHandler struct {
	loadSheets     *reports.LoadSheetUseCase
	alertThreshold int
}

func NewReportHandler(loadSheets *reports.LoadSheetUseCase, alertThreshold int) *ReportHandler {
	if alertThreshold <= 0 {
		alertThreshold = domledger.DefaultAlertThreshold
	}
	return &ReportHandler{loadSheets: loadSheets, alertThreshold: alertThreshold}
}

// LoadSheet godoc
// @Summary      Hoja de carga del conductor en PDF
// @Description  Inventario actual del conductor listo para imprimir antes de la ruta.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id         path   string  true   "ID del conductor"
// @Param        threshold  query  int     false  "Umbral de stock bajo"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drivers/{id}/load-sheet [get]
func (h *ReportHandler) LoadSheet(c *fiber.Ctx) error {
	driverID := c.Params("id")
	threshold := c.QueryInt("threshold", h.alertThreshold)
	pdf, err := h.loadSheets.GenerateForDriver(c.Context(), driverID, decimal.NewFromInt(int64(threshold)))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="hoja-carga-%s.pdf"`, driverID))
	return c.Send(pdf)
}
