package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodegas-api/internal/application/dto"
	"github.com/jhoicas/Bodegas-api/internal/application/usecase"
	"github.com/jhoicas/Bodegas-api/internal/domain"
)

// StockardHandler maneja las peticiones HTTP para stockards (protegido).
type StockardHandler struct {
	uc *usecase.StockardUseCase
}

// NewStockardHandler construye el handler.
func NewStockardHandler(uc *usecase.StockardUseCase) *StockardHandler {
	return &StockardHandler{uc: uc}
}

// Create godoc
// @Summary      Crear stockard en una bodega
// @Tags         stockards
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockardRequest  true  "warehouse_id, name, description"
// @Success      201   {object}  dto.StockardResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stockards [post]
func (h *StockardHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockardRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if msg := validateStruct(in); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la bodega no existe"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un stockard con ese nombre en la bodega"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener stockard por ID
// @Tags         stockards
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del stockard"
// @Success      200  {object}  dto.StockardResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stockards/{id} [get]
func (h *StockardHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "stockard no encontrado"})
	}
	return c.JSON(out)
}

// ListByWarehouse godoc
// @Summary      Listar stockards de una bodega
// @Tags         stockards
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true   "ID de la bodega"
// @Param        limit         query  int     false  "Límite"   default(20)
// @Param        offset        query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.StockardListResponse
// @Router       /api/stockards [get]
func (h *StockardHandler) ListByWarehouse(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListByWarehouse(warehouseID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar stockard
// @Tags         stockards
// @Security     Bearer
// @Param        id  path  string  true  "ID del stockard"
// @Success      204
// @Router       /api/stockards/{id} [delete]
func (h *StockardHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
