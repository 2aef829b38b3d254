package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stock-ledger-api/internal/application/analytics"
)

// ReportHandler reportes de movimientos (protegido).
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Movements godoc
// @Summary      Reporte de movimientos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "hari-ini (defecto) | minggu-ini | bulan-ini"
// @Param        type    query  string  false  "semua (defecto) | masuk | keluar"
// @Success      200  {object}  dto.MovementReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	report, err := h.uc.MovementReport(c.Context(), c.Query("period"), c.Query("type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// MovementsPDF godoc
// @Summary      Reporte de movimientos en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        period  query  string  false  "hari-ini (defecto) | minggu-ini | bulan-ini"
// @Param        type    query  string  false  "semua (defecto) | masuk | keluar"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements.pdf [get]
func (h *ReportHandler) MovementsPDF(c *fiber.Ctx) error {
	period := c.Query("period", appanalytics.PeriodToday)
	pdf, err := h.uc.MovementReportPDF(c.Context(), period, c.Query("type"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="laporan-%s.pdf"`, period))
	return c.Send(pdf)
}
