package entity

import "time"

// Unit unidad de medida de un artículo (pcs, box, kg...).
type Unit struct {
	ID        string
	Name      string
	Symbol    string // opcional
	CreatedAt time.Time
}
