package http

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	appinventory "github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
)

// ItemHandler maneja artículos, la vista de inventario y el import/export CSV (protegido).
type ItemHandler struct {
	items      *appinventory.ItemUseCase
	projection *appinventory.ProjectionUseCase
	exporter   *appinventory.CSVExportUseCase
	importer   *appinventory.CSVImportUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(
	items *appinventory.ItemUseCase,
	projection *appinventory.ProjectionUseCase,
	exporter *appinventory.CSVExportUseCase,
	importer *appinventory.CSVImportUseCase,
) *ItemHandler {
	return &ItemHandler{items: items, projection: projection, exporter: exporter, importer: importer}
}

// itemIDParam valida el parámetro :id antes de llegar al store.
func itemIDParam(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("id %q: %w", id, domain.ErrInvalidInput)
	}
	return id, nil
}

// parseProjectionQuery lee q, category_id, status, sort y order.
func parseProjectionQuery(c *fiber.Ctx) (inventory.ProjectionQuery, error) {
	q := inventory.ProjectionQuery{
		Search:     strings.TrimSpace(c.Query("q")),
		CategoryID: c.Query("category_id"),
	}
	if s := c.Query("status"); s != "" {
		status, ok := inventory.ParseStatus(s)
		if !ok {
			return q, fmt.Errorf("status %q: %w", s, domain.ErrInvalidInput)
		}
		q.Status = status
	}
	sortBy, ok := inventory.ParseSortField(c.Query("sort"))
	if !ok {
		return q, fmt.Errorf("sort %q: %w", c.Query("sort"), domain.ErrInvalidInput)
	}
	q.SortBy = sortBy
	switch strings.ToLower(c.Query("order", "asc")) {
	case "asc":
	case "desc":
		q.Desc = true
	default:
		return q, fmt.Errorf("order %q: %w", c.Query("order"), domain.ErrInvalidInput)
	}
	return q, nil
}

// List godoc
// @Summary      Vista de inventario
// @Description  Artículos con cantidad derivada del ledger, estado de stock y filtros.
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        q            query  string  false  "Busca en nombre o código (más de 2 caracteres)"
// @Param        category_id  query  string  false  "Filtrar por categoría (UUID)"
// @Param        status       query  string  false  "in_stock | low_stock | out_of_stock"
// @Param        sort         query  string  false  "name | code | category | unit | quantity | reorder_point | is_palindrome | last_updated"
// @Param        order        query  string  false  "asc | desc"
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	q, err := parseProjectionQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.projection.List(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear artículo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "name, code, reorder_point, category_id, unit_id"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.items.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id, err := itemIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.items.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del artículo"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos editables"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, err := itemIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.items.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar artículo
// @Description  Elimina primero sus movimientos y luego el artículo, en una transacción.
// @Tags         items
// @Security     Bearer
// @Param        id   path  string  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, err := itemIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.items.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Movements godoc
// @Summary      Ledger de un artículo
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemLedgerDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/movements [get]
func (h *ItemHandler) Movements(c *fiber.Ctx) error {
	id, err := itemIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.items.Ledger(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar inventario a CSV
// @Description  Acepta los mismos filtros que GET /api/items.
// @Tags         items
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items/export [get]
func (h *ItemHandler) Export(c *fiber.Ctx) error {
	q, err := parseProjectionQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	var buf bytes.Buffer
	n, err := h.exporter.Export(c.Context(), &buf, q)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, appinventory.ExportFileName))
	c.Set("X-Total-Count", fmt.Sprint(n))
	return c.Send(buf.Bytes())
}

// Import godoc
// @Summary      Importar artículos desde CSV
// @Description  Upsert por código. Columnas: code, name, category, unit, reorder_point.
// @Tags         items
// @Security     Bearer
// @Accept       multipart/form-data
// @Accept       text/csv
// @Produce      json
// @Param        file  formData  file  false  "Archivo CSV (o el CSV como cuerpo text/csv)"
// @Success      200   {object}  dto.ImportResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items/import [post]
func (h *ItemHandler) Import(c *fiber.Ctx) error {
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return invalidBody(c)
		}
		defer f.Close()
		res, err := h.importer.Import(c.Context(), f)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}

	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se requiere el archivo CSV"})
	}
	res, err := h.importer.Import(c.Context(), bytes.NewReader(body))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
