package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodegas-api/internal/application/dto"
	"github.com/jhoicas/Bodegas-api/internal/application/usecase"
)

// StockHandler expone el libro de existencias en solo lectura. Los niveles
// solo cambian a través del motor de movimientos.
type StockHandler struct {
	uc *usecase.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockQueryUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Consultar el libro de existencias
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega (UUID)"
// @Param        product_id    query  string  false  "Filtrar por producto (UUID)"
// @Param        limit         query  int     false  "Límite"   default(20)
// @Param        offset        query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	productID := c.Query("product_id")
	limit, offset := pageParams(c)
	out, err := h.uc.List(warehouseID, productID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
