package dto

import "time"

// CreateItemRequest body de POST /api/items.
type CreateItemRequest struct {
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	ReorderPoint *int    `json:"reorder_point"`
	CategoryID   *string `json:"category_id"`
	UnitID       *string `json:"unit_id"`
}

// UpdateItemRequest body de PUT /api/items/:id. Reemplaza todos los campos editables.
type UpdateItemRequest struct {
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	ReorderPoint *int    `json:"reorder_point"`
	CategoryID   *string `json:"category_id"`
	UnitID       *string `json:"unit_id"`
}

// ItemResponse artículo con su cantidad derivada del ledger.
type ItemResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	Quantity     int       `json:"quantity"`
	Status       string    `json:"status"`
	ReorderPoint *int      `json:"reorder_point"`
	CategoryID   *string   `json:"category_id"`
	UnitID       *string   `json:"unit_id"`
	Category     string    `json:"category"`
	Unit         string    `json:"unit"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// InventoryListResponse respuesta de GET /api/items.
type InventoryListResponse struct {
	Revision int64                   `json:"revision"`
	Total    int                     `json:"total"`
	Items    []InventoryItemResponse `json:"items"`
}

// InventoryItemResponse fila de la vista de inventario.
type InventoryItemResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	Quantity     int       `json:"quantity"`
	Category     string    `json:"category"`
	Unit         string    `json:"unit"`
	ReorderPoint *int      `json:"reorder_point"`
	CategoryID   *string   `json:"category_id"`
	UnitID       *string   `json:"unit_id"`
	Status       string    `json:"status"`
	IsPalindrome bool      `json:"is_palindrome"`
	LastUpdated  time.Time `json:"last_updated"`
}

// ImportIssueDTO problema detectado en una fila del CSV (Line es 1-based, incluye el header).
type ImportIssueDTO struct {
	Line    int    `json:"line"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// ImportResultDTO resultado de POST /api/items/import.
type ImportResultDTO struct {
	Imported int              `json:"imported"`
	Skipped  []ImportIssueDTO `json:"skipped"`
	Warnings []ImportIssueDTO `json:"warnings"`
}
