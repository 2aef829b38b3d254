package entity

import "time"

// Category agrupa artículos para filtrado y reportes.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
