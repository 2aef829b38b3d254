package entity

import "time"

// Item representa un artículo del inventario.
// La cantidad nunca se almacena: siempre se deriva de su ledger de movimientos.
type Item struct {
	ID           string
	Name         string
	Code         string // único
	ReorderPoint *int   // nil = sin umbral de reposición
	CategoryID   *string
	UnitID       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Etiquetas resueltas por JOIN en lectura (nil si no hay referencia).
	CategoryName *string
	UnitName     *string
}
