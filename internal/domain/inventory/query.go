package inventory

import (
	"cmp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField columna de ordenamiento de la proyección.
type SortField string

const (
	SortByName         SortField = "name"
	SortByCode         SortField = "code"
	SortByCategory     SortField = "category"
	SortByUnit         SortField = "unit"
	SortByQuantity     SortField = "quantity"
	SortByReorderPoint SortField = "reorder_point"
	SortByPalindrome   SortField = "is_palindrome"
	SortByLastUpdated  SortField = "last_updated"
)

// minSearchLen el término de búsqueda se aplica solo si supera esta longitud.
const minSearchLen = 2

// ParseSortField valida el campo recibido; "" equivale a name.
func ParseSortField(s string) (SortField, bool) {
	switch f := SortField(s); f {
	case "":
		return SortByName, true
	case SortByName, SortByCode, SortByCategory, SortByUnit, SortByQuantity,
		SortByReorderPoint, SortByPalindrome, SortByLastUpdated:
		return f, true
	}
	return "", false
}

// ProjectionQuery filtros y orden de la vista de inventario.
type ProjectionQuery struct {
	Search     string      // nombre o código, sin distinguir mayúsculas
	CategoryID string      // vacío = todas
	Status     StockStatus // vacío = todos
	SortBy     SortField   // vacío = name
	Desc       bool
}

// ApplyQuery filtra y ordena una copia de rows. Los valores nulos van siempre al final.
func ApplyQuery(rows []ProjectedItem, q ProjectionQuery) []ProjectedItem {
	term := strings.ToLower(q.Search)
	useSearch := utf8.RuneCountInString(q.Search) > minSearchLen

	out := make([]ProjectedItem, 0, len(rows))
	for _, r := range rows {
		if useSearch && !strings.Contains(strings.ToLower(r.Name), term) &&
			!strings.Contains(strings.ToLower(r.Code), term) {
			continue
		}
		if q.CategoryID != "" && (r.CategoryID == nil || *r.CategoryID != q.CategoryID) {
			continue
		}
		if q.Status != "" && r.Status != q.Status {
			continue
		}
		out = append(out, r)
	}

	field := q.SortBy
	if field == "" {
		field = SortByName
	}
	col := collate.New(language.Indonesian, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if field == SortByReorderPoint && (a.ReorderPoint == nil || b.ReorderPoint == nil) {
			// nulos al final en ambas direcciones
			return a.ReorderPoint != nil && b.ReorderPoint == nil
		}
		c := compare(col, field, a, b)
		if q.Desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func compare(col *collate.Collator, field SortField, a, b ProjectedItem) int {
	switch field {
	case SortByCode:
		return col.CompareString(a.Code, b.Code)
	case SortByCategory:
		return col.CompareString(a.Category, b.Category)
	case SortByUnit:
		return col.CompareString(a.Unit, b.Unit)
	case SortByQuantity:
		return cmp.Compare(a.Quantity, b.Quantity)
	case SortByReorderPoint:
		return cmp.Compare(*a.ReorderPoint, *b.ReorderPoint)
	case SortByPalindrome:
		return cmp.Compare(boolInt(a.IsPalindrome), boolInt(b.IsPalindrome))
	case SortByLastUpdated:
		return a.LastUpdated.Compare(b.LastUpdated)
	default:
		return col.CompareString(a.Name, b.Name)
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
