package inventory

import (
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// WindowDays días del gráfico de movimientos (hoy incluido).
const WindowDays = 7

// DayLayout clave de fecha local de cada bucket.
const DayLayout = "2006-01-02"

// DailyBucket volumen de entradas y salidas de un día calendario local.
type DailyBucket struct {
	Date string    `json:"date"`
	Day  time.Time `json:"day"` // medianoche local del día
	In   int       `json:"in"`
	Out  int       `json:"out"`
}

// WindowStart devuelve la medianoche local de hoy−6 días. Es el límite inferior
// que debe usar la consulta al store para el gráfico.
func WindowStart(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return today.AddDate(0, 0, -(WindowDays - 1))
}

// SummarizeDaily agrupa movimientos en exactamente WindowDays buckets, de hoy−6 a hoy,
// en orden ascendente. La fecha de cada movimiento se recalcula en loc; los que caen
// fuera de la ventana se descartan sin error aunque la consulta los haya incluido.
func SummarizeDaily(now time.Time, loc *time.Location, moves []*entity.StockMovement) []DailyBucket {
	start := WindowStart(now, loc)

	buckets := make([]DailyBucket, WindowDays)
	index := make(map[string]int, WindowDays)
	for i := range buckets {
		day := start.AddDate(0, 0, i)
		key := day.Format(DayLayout)
		buckets[i] = DailyBucket{Date: key, Day: day}
		index[key] = i
	}

	for _, m := range moves {
		if m == nil {
			continue
		}
		i, ok := index[m.CreatedAt.In(loc).Format(DayLayout)]
		if !ok {
			continue
		}
		switch m.Type {
		case entity.MovementTypeIn:
			buckets[i].In += m.Quantity
		case entity.MovementTypeOut:
			buckets[i].Out += m.Quantity
		}
	}
	return buckets
}
