// Package pdf genera el reporte de movimientos de stock en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + periodo     │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tanggal | Barang | Jenis | Jumlah | Keterangan       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Masuk / Keluar / Transaksi                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stock-ledger-api/internal/application/analytics"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

var _ analytics.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorIn      = &props.Color{Red: 22, Green: 128, Blue: 61}
	colorOut     = &props.Color{Red: 185, Green: 28, Blue: 28}
)

var periodTitles = map[string]string{
	analytics.PeriodToday: "Hari Ini",
	analytics.PeriodWeek:  "Minggu Ini",
	analytics.PeriodMonth: "Bulan Ini",
}

var typeTitles = map[string]string{
	analytics.ReportTypeAll: "Semua Transaksi",
	analytics.ReportTypeIn:  "Barang Masuk",
	analytics.ReportTypeOut: "Barang Keluar",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa analytics.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	appName string
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator(appName string) *MarotoReportGenerator {
	return &MarotoReportGenerator{appName: appName}
}

// GenerateMovementReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateMovementReport(report *dto.MovementReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Laporan Transaksi Stok", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(report.Rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Tidak ada transaksi pada periode ini.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	for _, r := range tableDetailRows(report.Rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y periodo (izq), rango y fecha de generación (der).
func headerRow(report *dto.MovementReportDTO) core.Row {
	rango := report.From.Format("02/01/2006") + " - " + report.To.AddDate(0, 0, -1).Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("LAPORAN TRANSAKSI STOK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(periodTitles[report.Period], report.Period)+"  |  "+nonEmpty(typeTitles[report.Type], report.Type), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(rango, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New("Dibuat: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tanggal", 2, align.Left),
		h("Barang", 4, align.Left),
		h("Jenis", 2, align.Center),
		h("Jumlah", 1, align.Right),
		h("Keterangan", 3, align.Left),
	)
}

// tableDetailRows: una fila por movimiento.
func tableDetailRows(rows []dto.ReportRowDTO) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		typeColor := colorOut
		if r.TypeLabel == "Masuk" {
			typeColor = colorIn
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				r.Date.Format("02/01/2006 15:04"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				r.ItemLabel,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				r.TypeLabel,
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: typeColor},
			)),
			col.New(1).Add(text.New(
				formatThousands(r.Quantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				r.Details,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(report *dto.MovementReportDTO) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Total Masuk:"),
			label("Total Keluar:"),
			label("Jumlah Transaksi:"),
		),
		col.New(3).Add(
			value(formatThousands(report.TotalIn)),
			value(formatThousands(report.TotalOut)),
			value(formatThousands(report.Count)),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatThousands inserta puntos de miles. Ej: 25000 → "25.000", -1500 → "-1.500".
func formatThousands(v int) string {
	s := strconv.Itoa(v)
	sign := ""
	if v < 0 {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
