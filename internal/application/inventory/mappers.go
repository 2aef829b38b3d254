package inventory

import (
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
)

// UnknownItemLabel etiqueta de movimientos cuyo artículo ya no existe.
const UnknownItemLabel = "Barang Tidak Dikenal"

// ItemLabel devuelve "<code> - <name>" o UnknownItemLabel si el movimiento es huérfano.
func ItemLabel(m *entity.StockMovement) string {
	if m.ItemID == "" || (m.ItemCode == "" && m.ItemName == "") {
		return UnknownItemLabel
	}
	return m.ItemCode + " - " + m.ItemName
}

// TypeLabel etiqueta visible del tipo de movimiento.
func TypeLabel(t string) string {
	if t == entity.MovementTypeIn {
		return "Masuk"
	}
	return "Keluar"
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:        m.ID,
		ItemID:    m.ItemID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Condition: m.Condition,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
	}
}

// toItemResponse proyecta un artículo sobre su propio ledger.
func toItemResponse(it *entity.Item, ledger []*entity.StockMovement) *dto.ItemResponse {
	row := inventory.BuildProjection([]*entity.Item{it}, ledger)[0]
	return &dto.ItemResponse{
		ID:           it.ID,
		Name:         it.Name,
		Code:         it.Code,
		Quantity:     row.Quantity,
		Status:       string(row.Status),
		ReorderPoint: it.ReorderPoint,
		CategoryID:   it.CategoryID,
		UnitID:       it.UnitID,
		Category:     row.Category,
		Unit:         row.Unit,
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}

// ToInventoryItemResponse convierte una fila proyectada al DTO HTTP.
func ToInventoryItemResponse(r inventory.ProjectedItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:           r.ID,
		Name:         r.Name,
		Code:         r.Code,
		Quantity:     r.Quantity,
		Category:     r.Category,
		Unit:         r.Unit,
		ReorderPoint: r.ReorderPoint,
		CategoryID:   r.CategoryID,
		UnitID:       r.UnitID,
		Status:       string(r.Status),
		IsPalindrome: r.IsPalindrome,
		LastUpdated:  r.LastUpdated,
	}
}
