package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	Revision int64             `json:"revision"`
	Stats    DashboardStatsDTO `json:"stats"`
	Chart    []ChartPointDTO   `json:"chart"`     // 7 días, ascendente
	LowStock []LowStockItemDTO `json:"low_stock"` // solo estado low_stock
}

// DashboardStatsDTO KPIs de inventario.
type DashboardStatsDTO struct {
	TotalItems      int `json:"total_items"`
	TotalStock      int `json:"total_stock"`
	LowStockCount   int `json:"low_stock_count"`
	OutOfStockCount int `json:"out_of_stock_count"`
}

// ChartPointDTO bucket diario del gráfico de movimientos.
type ChartPointDTO struct {
	Date  string `json:"date"`  // 2006-01-02 en la zona horaria de la app
	Label string `json:"label"` // ej: "Sen 14"
	In    int    `json:"in"`
	Out   int    `json:"out"`
}

// LowStockItemDTO fila de la tabla de stock bajo.
type LowStockItemDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	Quantity     int    `json:"quantity"`
	ReorderPoint *int   `json:"reorder_point"`
	Unit         string `json:"unit"`
}
