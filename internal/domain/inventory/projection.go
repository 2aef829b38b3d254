package inventory

import (
	"strings"
	"time"
	"unicode"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// NotApplicable etiqueta para categoría o unidad sin referencia.
const NotApplicable = "N/A"

// ProjectedItem fila desnormalizada de un artículo lista para listar, filtrar y ordenar.
type ProjectedItem struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Code         string      `json:"code"`
	Quantity     int         `json:"quantity"`
	Category     string      `json:"category"`
	Unit         string      `json:"unit"`
	ReorderPoint *int        `json:"reorder_point"`
	CategoryID   *string     `json:"category_id"`
	UnitID       *string     `json:"unit_id"`
	Status       StockStatus `json:"status"`
	IsPalindrome bool        `json:"is_palindrome"`
	LastUpdated  time.Time   `json:"last_updated"`
}

// BuildProjection une artículos con su cantidad agregada y etiquetas.
// Función pura: mismas entradas producen las mismas filas, en el orden de items.
func BuildProjection(items []*entity.Item, moves []*entity.StockMovement) []ProjectedItem {
	qty := Aggregate(moves)
	out := make([]ProjectedItem, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		q := qty.Of(it.ID)
		out = append(out, ProjectedItem{
			ID:           it.ID,
			Name:         it.Name,
			Code:         it.Code,
			Quantity:     q,
			Category:     labelOrNA(it.CategoryName),
			Unit:         labelOrNA(it.UnitName),
			ReorderPoint: it.ReorderPoint,
			CategoryID:   it.CategoryID,
			UnitID:       it.UnitID,
			Status:       Classify(q, it.ReorderPoint),
			IsPalindrome: IsPalindrome(it.Name),
			LastUpdated:  it.CreatedAt,
		})
	}
	return out
}

func labelOrNA(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return NotApplicable
	}
	return *s
}

// IsPalindrome compara el nombre en minúsculas, solo letras y dígitos, con su reverso.
func IsPalindrome(s string) bool {
	runes := make([]rune, 0, len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			runes = append(runes, r)
		}
	}
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if runes[i] != runes[j] {
			return false
		}
	}
	return true
}
