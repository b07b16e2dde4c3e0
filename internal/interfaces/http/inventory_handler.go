package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/litethinking/gestion-api/internal/application/dto"
	"github.com/litethinking/gestion-api/internal/application/inventory"
	"github.com/litethinking/gestion-api/internal/application/usecase"
)

// InventoryHandler expone el stock y el ledger de movimientos.
// Toda mutación de cantidades pasa por un movimiento; no hay PUT de stock.
type InventoryHandler struct {
	uc       *inventory.UseCase
	reportUC *usecase.ReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase, reportUC *usecase.ReportUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, reportUC: reportUC}
}

// List godoc
// @Summary      Listar inventarios con su producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de filas (1-100)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	res, err := h.uc.List(GetActor(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Get godoc
// @Summary      Consultar inventario por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del inventario"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	res, err := h.uc.GetByID(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// UpdateLocation godoc
// @Summary      Actualizar la ubicación física
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del inventario"
// @Param        body  body  dto.UpdateInventoryRequest  true  "ubicación"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [patch]
func (h *InventoryHandler) UpdateLocation(c *fiber.Ctx) error {
	var in dto.UpdateInventoryRequest
	if !parseBody(c, &in) {
		return nil
	}
	res, err := h.uc.UpdateLocation(GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// ApplyMovement godoc
// @Summary      Registrar un movimiento de stock
// @Description  Aplica el delta sobre la cantidad y deja el movimiento en el ledger, todo en una transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del inventario"
// @Param        body  body  dto.ApplyMovementRequest  true  "delta con signo, tipo y motivo"
// @Success      201   {object}  dto.ApplyMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/movements [post]
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if !parseBody(c, &in) {
		return nil
	}
	res, err := h.uc.ApplyMovement(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// ListMovements godoc
// @Summary      Consultar el ledger de un inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del inventario"
// @Param        limit   query  int     false  "máximo de filas (1-100)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	res, err := h.uc.ListMovements(GetActor(c), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Reserve godoc
// @Summary      Reservar unidades disponibles
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del inventario"
// @Param        body  body  dto.ReserveRequest  true  "cantidad a reservar"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/reserve [post]
func (h *InventoryHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReserveRequest
	if !parseBody(c, &in) {
		return nil
	}
	res, err := h.uc.Reserve(c.UserContext(), GetActor(c), c.Params("id"), in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Release godoc
// @Summary      Liberar unidades reservadas
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del inventario"
// @Param        body  body  dto.ReserveRequest  true  "cantidad a liberar"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/release [post]
func (h *InventoryHandler) Release(c *fiber.Ctx) error {
	var in dto.ReserveRequest
	if !parseBody(c, &in) {
		return nil
	}
	res, err := h.uc.Release(c.UserContext(), GetActor(c), c.Params("id"), in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Report godoc
// @Summary      Descargar el reporte de inventario en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        company_id  query  string  false  "empresa a reportar (admins; vacío = todas)"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/report.pdf [get]
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	pdf, err := h.reportUC.InventoryPDF(GetActor(c), c.Query("company_id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventario.pdf"`)
	return c.Send(pdf)
}
