package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rutastock-api/internal/application/dto"
	"github.com/jhoicas/rutastock-api/internal/application/usecase"
)

// DriverHandler maneja el directorio de conductores.
type DriverHandler struct {
	uc *usecase.DriverUseCase
}

func NewDriverHandler(uc *usecase.DriverUseCase) *DriverHandler {
	return &DriverHandler{uc: uc}
}

// Create godoc
// @Summary      Crear conductor
// @Tags         drivers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDriverRequest  true  "Conductor"
// @Success      201   {object}  dto.DriverResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/drivers [post]
func (h *DriverHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDriverRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener conductor por ID
// @Tags         drivers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del conductor"
// @Success      200  {object}  dto.DriverResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drivers/{id} [get]
func (h *DriverHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar conductores
// @Tags         drivers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.DriverListResponse
// @Router       /api/drivers [get]
func (h *DriverHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	out, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar conductor
// @Tags         drivers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del conductor"
// @Param        body  body  dto.UpdateDriverRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.DriverResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/drivers/{id} [put]
func (h *DriverHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDriverRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Archivar conductor
// @Description  Soft delete: no recibe más stock ni ventas; su historial sigue consultable.
// @Tags         drivers
// @Security     Bearer
// @Param        id  path  string  true  "ID del conductor"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drivers/{id} [delete]
func (h *DriverHandler) Archive(c *fiber.Ctx) error {
	if err := h.uc.Archive(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
