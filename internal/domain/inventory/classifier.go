package inventory

// StockStatus estado derivado de (cantidad, punto de reorden). Nunca se persiste.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "out_of_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusInStock    StockStatus = "in_stock"
)

// Classify aplica, en orden de prioridad:
//
//	quantity <= 0                               → out_of_stock
//	reorderPoint != nil && quantity <= *rp      → low_stock
//	resto                                       → in_stock
//
// Con reorderPoint = 0 nunca se llega a low_stock: la rama exige quantity > 0,
// así que el artículo pasa directo de in_stock a out_of_stock.
func Classify(quantity int, reorderPoint *int) StockStatus {
	if quantity <= 0 {
		return StatusOutOfStock
	}
	if reorderPoint != nil && quantity <= *reorderPoint {
		return StatusLowStock
	}
	return StatusInStock
}

// NeedsReorder es true para low_stock y out_of_stock.
func (s StockStatus) NeedsReorder() bool {
	return s == StatusLowStock || s == StatusOutOfStock
}

// ParseStatus interpreta el filtro de estado recibido por query string.
// "" y "all" significan sin filtro (status vacío).
func ParseStatus(s string) (StockStatus, bool) {
	switch s {
	case "", "all":
		return "", true
	case string(StatusOutOfStock), string(StatusLowStock), string(StatusInStock):
		return StockStatus(s), true
	}
	return "", false
}
