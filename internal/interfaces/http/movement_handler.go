package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
)

// MovementHandler maneja entradas, salidas y transacciones recientes (protegido).
type MovementHandler struct {
	uc     *inventory.RegisterMovementUseCase
	ledger *inventory.LedgerUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.RegisterMovementUseCase, ledger *inventory.LedgerUseCase) *MovementHandler {
	return &MovementHandler{uc: uc, ledger: ledger}
}

// StockIn godoc
// @Summary      Registrar entrada de stock (Barang Masuk)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "item_id, quantity, condition (Layak Pakai por defecto)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/in [post]
func (h *MovementHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.StockIn(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// StockOut godoc
// @Summary      Registrar salida de stock (Barang Keluar)
// @Description  No valida stock suficiente: la cantidad puede quedar negativa.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOutRequest  true  "item_id, quantity, reason (Pemakaian Normal por defecto)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/out [post]
func (h *MovementHandler) StockOut(c *fiber.Ctx) error {
	var in dto.StockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.StockOut(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Recent godoc
// @Summary      Transacciones recientes
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de filas (10 por defecto, tope 100)"
// @Success      200  {array}   dto.RecentTransactionDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/movements/recent [get]
func (h *MovementHandler) Recent(c *fiber.Ctx) error {
	list, err := h.ledger.Recent(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
