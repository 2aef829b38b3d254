package dto

import "time"

// StockInRequest body de POST /api/movements/in.
type StockInRequest struct {
	ItemID    string `json:"item_id"`
	Quantity  int    `json:"quantity"`
	Condition string `json:"condition"` // Layak Pakai (default) | Tidak Layak Pakai
}

// StockOutRequest body de POST /api/movements/out.
type StockOutRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"` // Pemakaian Normal (default) | Rusak | Hilang | Lainnya
}

// MovementResponse movimiento del ledger.
type MovementResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id,omitempty"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Condition *string   `json:"condition,omitempty"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RecentTransactionDTO fila de "transacciones recientes".
type RecentTransactionDTO struct {
	ID        string    `json:"id"`
	ItemLabel string    `json:"item_label"` // "<code> - <name>" o Barang Tidak Dikenal
	Type      string    `json:"type"`
	TypeLabel string    `json:"type_label"` // Masuk | Keluar
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemLedgerDTO ledger completo de un artículo con su cantidad actual.
type ItemLedgerDTO struct {
	ItemID    string             `json:"item_id"`
	Quantity  int                `json:"quantity"`
	Status    string             `json:"status"`
	Movements []MovementResponse `json:"movements"`
}
