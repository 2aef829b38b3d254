package analytics_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/analytics"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type stubProjection struct {
	rows []inventory.ProjectedItem
	rev  int64
}

func (s stubProjection) Snapshot(context.Context) ([]inventory.ProjectedItem, int64, error) {
	return s.rows, s.rev, nil
}

type stubMovRepo struct {
	moves []*entity.StockMovement
	last  repository.MovementFilter
}

func (r *stubMovRepo) Create(context.Context, *entity.StockMovement) error { return nil }

func (r *stubMovRepo) DeleteByItem(context.Context, string) (int64, error) { return 0, nil }

func (r *stubMovRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.last = f
	var out []*entity.StockMovement
	for _, m := range r.moves {
		if f.From != nil && m.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.CreatedAt.After(*f.To) {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		out = append(out, m)
	}
	if f.NewestFirst {
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out, nil
}

type stubPDF struct{ got *dto.MovementReportDTO }

func (s *stubPDF) GenerateMovementReport(r *dto.MovementReportDTO) ([]byte, error) {
	s.got = r
	return []byte("%PDF"), nil
}

func wib(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	return loc
}

func strPtr(s string) *string { return &s }

// ── Dashboard ─────────────────────────────────────────────────────────────────

func TestDashboard_StatsGraficoYStockBajo(t *testing.T) {
	loc := wib(t)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, loc) // lunes
	rp := 10
	proj := stubProjection{rev: 4, rows: []inventory.ProjectedItem{
		{ID: "a", Name: "Kertas", Quantity: 5, ReorderPoint: &rp, Unit: "Rim", Status: inventory.StatusLowStock},
		{ID: "b", Name: "Lem", Quantity: 0, Status: inventory.StatusOutOfStock},
		{ID: "c", Name: "Map", Quantity: 20, Status: inventory.StatusInStock},
	}}
	moves := &stubMovRepo{moves: []*entity.StockMovement{
		{ItemID: "a", Type: entity.MovementTypeIn, Quantity: 50, CreatedAt: now.Add(-time.Hour)},
		{ItemID: "a", Type: entity.MovementTypeOut, Quantity: 45, CreatedAt: now.Add(-25 * time.Hour)},
		{Type: entity.MovementTypeIn, Quantity: 3, CreatedAt: now.Add(-2 * time.Hour)},
	}}
	uc := analytics.NewDashboardUseCase(proj, moves, loc)
	uc.SetNow(func() time.Time { return now })

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), got.Revision)
	assert.Equal(t, dto.DashboardStatsDTO{TotalItems: 3, TotalStock: 25, LowStockCount: 1, OutOfStockCount: 1}, got.Stats)
	require.Len(t, got.Chart, 7)
	assert.Equal(t, "2024-01-15", got.Chart[6].Date)
	assert.Equal(t, "Sen 15", got.Chart[6].Label)
	assert.Equal(t, 53, got.Chart[6].In, "los huérfanos cuentan en el gráfico")
	assert.Equal(t, 45, got.Chart[5].Out)
	assert.Equal(t, "Sel 9", got.Chart[0].Label)
	require.Len(t, got.LowStock, 1)
	assert.Equal(t, "Rim", got.LowStock[0].Unit)
	require.NotNil(t, moves.last.From)
	assert.True(t, moves.last.From.Equal(time.Date(2024, 1, 9, 0, 0, 0, 0, loc)))
}

func TestChartLabel(t *testing.T) {
	assert.Equal(t, "Min 14", analytics.ChartLabel(time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Sab 20", analytics.ChartLabel(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)))
}

// ── Reportes ──────────────────────────────────────────────────────────────────

func TestPeriodRange(t *testing.T) {
	loc := wib(t)
	now := time.Date(2024, 1, 17, 9, 30, 0, 0, loc) // miércoles

	from, to, err := analytics.PeriodRange(analytics.PeriodToday, now, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 17, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2024, 1, 18, 0, 0, 0, 0, loc), to)

	from, _, err = analytics.PeriodRange(analytics.PeriodWeek, now, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 14, 0, 0, 0, 0, loc), from, "la semana empieza en domingo")

	from, _, err = analytics.PeriodRange(analytics.PeriodMonth, now, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, loc), from)

	_, _, err = analytics.PeriodRange("tahun-ini", now, loc)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementReport_FilasTotalesYDetalles(t *testing.T) {
	loc := wib(t)
	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	moves := &stubMovRepo{moves: []*entity.StockMovement{
		{ID: "1", ItemID: "a", ItemCode: "K", ItemName: "Kertas", Type: entity.MovementTypeIn, Quantity: 10, Condition: strPtr(entity.ConditionUsable), CreatedAt: today.Add(time.Minute)},
		{ID: "2", ItemID: "a", ItemCode: "K", ItemName: "Kertas", Type: entity.MovementTypeOut, Quantity: 4, Reason: strPtr(entity.ReasonDamaged), CreatedAt: today.Add(2 * time.Minute)},
		{ID: "3", Type: entity.MovementTypeOut, Quantity: 1, CreatedAt: today.Add(3 * time.Minute)},
		{ID: "4", ItemID: "a", Type: entity.MovementTypeIn, Quantity: 99, CreatedAt: today.Add(-time.Minute)},
	}}
	uc := analytics.NewReportUseCase(moves, nil, loc)

	rep, err := uc.MovementReport(context.Background(), analytics.PeriodToday, analytics.ReportTypeAll)
	require.NoError(t, err)

	require.Equal(t, 3, rep.Count)
	assert.Equal(t, 10, rep.TotalIn)
	assert.Equal(t, 5, rep.TotalOut)
	assert.Equal(t, "Barang Tidak Dikenal", rep.Rows[0].ItemLabel, "más reciente primero")
	assert.Equal(t, "-", rep.Rows[0].Details)
	assert.Equal(t, "Rusak", rep.Rows[1].Details)
	assert.Equal(t, "Keluar", rep.Rows[1].TypeLabel)
	assert.Equal(t, "K - Kertas", rep.Rows[2].ItemLabel)
	assert.Equal(t, "Layak Pakai", rep.Rows[2].Details)

	_, err = uc.MovementReport(context.Background(), analytics.PeriodToday, "transfer")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementReport_FiltroPorTipoYPDF(t *testing.T) {
	loc := wib(t)
	now := time.Now()
	moves := &stubMovRepo{moves: []*entity.StockMovement{
		{ID: "1", Type: entity.MovementTypeIn, Quantity: 2, CreatedAt: now},
		{ID: "2", Type: entity.MovementTypeOut, Quantity: 1, CreatedAt: now},
	}}
	pdf := &stubPDF{}
	uc := analytics.NewReportUseCase(moves, pdf, loc)

	out, err := uc.MovementReportPDF(context.Background(), analytics.PeriodMonth, analytics.ReportTypeIn)
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF"), out)
	require.NotNil(t, pdf.got)
	assert.Equal(t, 1, pdf.got.Count)
	assert.Equal(t, entity.MovementTypeIn, moves.last.Type)
}
