package dto

import "time"

// CreateCategoryRequest body de POST /api/categories.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse respuesta de categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUnitRequest body de POST /api/units.
type CreateUnitRequest struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// UnitResponse respuesta de unidad.
type UnitResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
