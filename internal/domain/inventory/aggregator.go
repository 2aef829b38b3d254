// Package inventory contiene los servicios de dominio puros del ledger de stock:
// agregación de cantidades, clasificación por umbral, resumen diario y proyección.
package inventory

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// Quantities cantidad neta por artículo (item_id → Σin − Σout).
// Un artículo sin movimientos no aparece en el mapa; usar Of para leerlo.
type Quantities map[string]int

// Of devuelve la cantidad del artículo, 0 si no tiene movimientos.
func (q Quantities) Of(itemID string) int {
	return q[itemID]
}

// SignedQuantity devuelve +Quantity para entradas y −Quantity para salidas.
// ok es false para tipos desconocidos.
func SignedQuantity(m *entity.StockMovement) (delta int, ok bool) {
	switch m.Type {
	case entity.MovementTypeIn:
		return m.Quantity, true
	case entity.MovementTypeOut:
		return -m.Quantity, true
	}
	return 0, false
}

// Aggregate reduce los movimientos a cantidades netas por artículo.
// Ignora movimientos huérfanos (sin item_id) y de tipo desconocido. El orden de entrada no afecta el resultado.
func Aggregate(moves []*entity.StockMovement) Quantities {
	out := make(Quantities)
	for _, m := range moves {
		if m == nil || m.ItemID == "" {
			continue
		}
		delta, ok := SignedQuantity(m)
		if !ok {
			continue
		}
		out[m.ItemID] += delta
	}
	return out
}
