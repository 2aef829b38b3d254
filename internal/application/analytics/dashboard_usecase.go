package analytics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// shortWeekdays abreviaturas de los días para las etiquetas del gráfico (índice = time.Weekday).
var shortWeekdays = [7]string{"Min", "Sen", "Sel", "Rab", "Kam", "Jum", "Sab"}

// DashboardUseCase genera el resumen del dashboard: KPIs, gráfico de 7 días y tabla de stock bajo.
type DashboardUseCase struct {
	projection ProjectionSource
	movRepo    repository.StockMovementRepository
	loc        *time.Location
	now        func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc es la zona horaria de los buckets diarios.
func NewDashboardUseCase(projection ProjectionSource, movRepo repository.StockMovementRepository, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{projection: projection, movRepo: movRepo, loc: loc, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Dos lecturas en paralelo:
//  1. Snapshot de la proyección → stats + stock bajo
//  2. Movimientos desde hoy−6  → gráfico
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	from := inventory.WindowStart(now, uc.loc)

	// ── Goroutines para paralelizar las consultas ─────────────────────────────
	type snapshotResult struct {
		rows     []inventory.ProjectedItem
		revision int64
		err      error
	}
	type movesResult struct {
		moves []*entity.StockMovement
		err   error
	}
	snapCh := make(chan snapshotResult, 1)
	movesCh := make(chan movesResult, 1)

	go func() {
		rows, rev, err := uc.projection.Snapshot(ctx)
		snapCh <- snapshotResult{rows, rev, err}
	}()
	go func() {
		moves, err := uc.movRepo.List(ctx, repository.MovementFilter{From: &from})
		movesCh <- movesResult{moves, err}
	}()

	snap := <-snapCh
	moves := <-movesCh
	if snap.err != nil {
		return nil, fmt.Errorf("dashboard: proyección: %w", snap.err)
	}
	if moves.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos: %w", moves.err)
	}

	// ── Ensamblado ────────────────────────────────────────────────────────────
	out := &dto.DashboardSummaryDTO{
		Revision: snap.revision,
		Stats:    computeStats(snap.rows),
		LowStock: []dto.LowStockItemDTO{},
	}
	for _, b := range inventory.SummarizeDaily(now, uc.loc, moves.moves) {
		out.Chart = append(out.Chart, dto.ChartPointDTO{
			Date:  b.Date,
			Label: ChartLabel(b.Day),
			In:    b.In,
			Out:   b.Out,
		})
	}
	for _, r := range snap.rows {
		if r.Status != inventory.StatusLowStock {
			continue
		}
		out.LowStock = append(out.LowStock, dto.LowStockItemDTO{
			ID:           r.ID,
			Name:         r.Name,
			Code:         r.Code,
			Quantity:     r.Quantity,
			ReorderPoint: r.ReorderPoint,
			Unit:         r.Unit,
		})
	}
	return out, nil
}

func computeStats(rows []inventory.ProjectedItem) dto.DashboardStatsDTO {
	s := dto.DashboardStatsDTO{TotalItems: len(rows)}
	for _, r := range rows {
		s.TotalStock += r.Quantity
		switch r.Status {
		case inventory.StatusLowStock:
			s.LowStockCount++
		case inventory.StatusOutOfStock:
			s.OutOfStockCount++
		}
	}
	return s
}

// ChartLabel etiqueta corta de un día: "Sen 14".
func ChartLabel(day time.Time) string {
	return shortWeekdays[day.Weekday()] + " " + strconv.Itoa(day.Day())
}
