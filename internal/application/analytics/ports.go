// Package analytics contiene los casos de uso de lectura agregada: dashboard y reportes de movimientos.
package analytics

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
)

// ProjectionSource entrega la proyección completa del inventario y su revisión.
type ProjectionSource interface {
	Snapshot(ctx context.Context) ([]inventory.ProjectedItem, int64, error)
}

// ReportPDFGenerator genera el PDF del reporte de movimientos.
type ReportPDFGenerator interface {
	GenerateMovementReport(report *dto.MovementReportDTO) ([]byte, error)
}
