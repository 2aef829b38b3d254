package dto

import "time"

// MovementReportDTO respuesta de GET /api/reports/movements.
type MovementReportDTO struct {
	Period      string         `json:"period"` // hari-ini | minggu-ini | bulan-ini
	Type        string         `json:"type"`   // semua | masuk | keluar
	From        time.Time      `json:"from"`
	To          time.Time      `json:"to"`
	Rows        []ReportRowDTO `json:"rows"` // más reciente primero
	TotalIn     int            `json:"total_in"`
	TotalOut    int            `json:"total_out"`
	Count       int            `json:"count"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// ReportRowDTO fila del reporte de movimientos.
type ReportRowDTO struct {
	Date      time.Time `json:"date"`
	ItemLabel string    `json:"item_label"`
	Type      string    `json:"type"`
	TypeLabel string    `json:"type_label"`
	Quantity  int       `json:"quantity"`
	Details   string    `json:"details"` // condition, reason o "-"
}
