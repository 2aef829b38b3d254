package entity

import "time"

// StockAlertTitle título fijo de la alerta de stock bajo.
const StockAlertTitle = "Stok Menipis"

// StockAlert aviso emitido cuando un artículo queda en o por debajo de su punto de reorden.
type StockAlert struct {
	ItemID       string    `json:"item_id"`
	ItemName     string    `json:"item_name"`
	Quantity     int       `json:"quantity"`
	ReorderPoint int       `json:"reorder_point"`
	Status       string    `json:"status"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	MovementID   string    `json:"movement_id"`
	EmittedAt    time.Time `json:"emitted_at"`
}
