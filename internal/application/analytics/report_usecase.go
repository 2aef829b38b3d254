package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	appinventory "github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// Periodos del reporte.
const (
	PeriodToday = "hari-ini"
	PeriodWeek  = "minggu-ini"
	PeriodMonth = "bulan-ini"
)

// Filtros de tipo del reporte.
const (
	ReportTypeAll = "semua"
	ReportTypeIn  = "masuk"
	ReportTypeOut = "keluar"
)

var errPDFUnavailable = errors.New("reporte: generador PDF no configurado")

// ReportUseCase genera el reporte de movimientos por periodo.
type ReportUseCase struct {
	movRepo repository.StockMovementRepository
	pdfGen  ReportPDFGenerator
	loc     *time.Location
	now     func() time.Time
}

// NewReportUseCase construye el caso de uso. pdfGen puede ser nil si no se exporta PDF.
func NewReportUseCase(movRepo repository.StockMovementRepository, pdfGen ReportPDFGenerator, loc *time.Location) *ReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportUseCase{movRepo: movRepo, pdfGen: pdfGen, loc: loc, now: time.Now}
}

// PeriodRange devuelve [from, to) del periodo en loc. La semana empieza en domingo.
func PeriodRange(period string, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	tomorrow := today.AddDate(0, 0, 1)
	switch period {
	case PeriodToday:
		return today, tomorrow, nil
	case PeriodWeek:
		return today.AddDate(0, 0, -int(today.Weekday())), tomorrow, nil
	case PeriodMonth:
		return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc), tomorrow, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: periodo %q", domain.ErrInvalidInput, period)
	}
}

func movementTypeFilter(t string) (string, error) {
	switch t {
	case "", ReportTypeAll:
		return "", nil
	case ReportTypeIn:
		return entity.MovementTypeIn, nil
	case ReportTypeOut:
		return entity.MovementTypeOut, nil
	default:
		return "", fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, t)
	}
}

// MovementReport arma el reporte: filas más reciente primero y totales.
func (uc *ReportUseCase) MovementReport(ctx context.Context, period, typ string) (*dto.MovementReportDTO, error) {
	if period == "" {
		period = PeriodToday
	}
	now := uc.now()
	from, to, err := PeriodRange(period, now, uc.loc)
	if err != nil {
		return nil, err
	}
	movType, err := movementTypeFilter(typ)
	if err != nil {
		return nil, err
	}
	if typ == "" {
		typ = ReportTypeAll
	}

	// El store filtra con límite superior inclusivo.
	end := to.Add(-time.Nanosecond)
	moves, err := uc.movRepo.List(ctx, repository.MovementFilter{
		From:        &from,
		To:          &end,
		Type:        movType,
		NewestFirst: true,
	})
	if err != nil {
		return nil, fmt.Errorf("reporte: movimientos: %w", err)
	}

	out := &dto.MovementReportDTO{
		Period:      period,
		Type:        typ,
		From:        from,
		To:          to,
		Rows:        make([]dto.ReportRowDTO, 0, len(moves)),
		GeneratedAt: now.In(uc.loc),
	}
	for _, m := range moves {
		out.Rows = append(out.Rows, dto.ReportRowDTO{
			Date:      m.CreatedAt.In(uc.loc),
			ItemLabel: appinventory.ItemLabel(m),
			Type:      m.Type,
			TypeLabel: appinventory.TypeLabel(m.Type),
			Quantity:  m.Quantity,
			Details:   details(m),
		})
		switch m.Type {
		case entity.MovementTypeIn:
			out.TotalIn += m.Quantity
		case entity.MovementTypeOut:
			out.TotalOut += m.Quantity
		}
	}
	out.Count = len(out.Rows)
	return out, nil
}

// MovementReportPDF genera el reporte y lo renderiza a PDF.
func (uc *ReportUseCase) MovementReportPDF(ctx context.Context, period, typ string) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, errPDFUnavailable
	}
	report, err := uc.MovementReport(ctx, period, typ)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateMovementReport(report)
}

func details(m *entity.StockMovement) string {
	if m.Condition != nil && *m.Condition != "" {
		return *m.Condition
	}
	if m.Reason != nil && *m.Reason != "" {
		return *m.Reason
	}
	return "-"
}
