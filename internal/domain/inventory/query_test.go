package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
)

func queryRows() []inventory.ProjectedItem {
	return []inventory.ProjectedItem{
		{ID: "1", Name: "baut", Code: "B-1", Quantity: 20, Category: "Logam", CategoryID: strPtr("c1"), Status: inventory.StatusInStock},
		{ID: "2", Name: "Amplas", Code: "A-9", Quantity: 2, ReorderPoint: intPtr(5), Category: "Alat", CategoryID: strPtr("c2"), Status: inventory.StatusLowStock},
		{ID: "3", Name: "Cat", Code: "C-3", Quantity: 0, ReorderPoint: intPtr(1), Category: inventory.NotApplicable, Status: inventory.StatusOutOfStock},
	}
}

func ids(rows []inventory.ProjectedItem) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestApplyQuery_OrdenPorDefectoEsNombreSinMayusculas(t *testing.T) {
	got := inventory.ApplyQuery(queryRows(), inventory.ProjectionQuery{})
	assert.Equal(t, []string{"2", "1", "3"}, ids(got))
}

func TestApplyQuery_BusquedaCortaSeIgnora(t *testing.T) {
	got := inventory.ApplyQuery(queryRows(), inventory.ProjectionQuery{Search: "ba"})
	assert.Len(t, got, 3, "términos de 2 caracteres o menos no filtran")

	got = inventory.ApplyQuery(queryRows(), inventory.ProjectionQuery{Search: "BAU"})
	assert.Equal(t, []string{"1"}, ids(got))

	got = inventory.ApplyQuery(queryRows(), inventory.ProjectionQuery{Search: "a-9"})
	assert.Equal(t, []string{"2"}, ids(got), "también busca por código")
}

func TestApplyQuery_FiltrosCategoriaYEstado(t *testing.T) {
	got := inventory.ApplyQuery(queryRows(), inventory.ProjectionQuery{CategoryID: "c1"})
	assert.Equal(t, []string{"1"}, ids(got))

	got = inventory.ApplyQuery(queryRows(), inventory.ProjectionQuery{Status: inventory.StatusOutOfStock})
	assert.Equal(t, []string{"3"}, ids(got))
}

func TestApplyQuery_NulosAlFinalEnAmbasDirecciones(t *testing.T) {
	asc := inventory.ApplyQuery(queryRows(), inventory.ProjectionQuery{SortBy: inventory.SortByReorderPoint})
	assert.Equal(t, []string{"3", "2", "1"}, ids(asc))

	desc := inventory.ApplyQuery(queryRows(), inventory.ProjectionQuery{SortBy: inventory.SortByReorderPoint, Desc: true})
	assert.Equal(t, []string{"2", "3", "1"}, ids(desc))
}

func TestApplyQuery_NoModificaLaEntrada(t *testing.T) {
	rows := queryRows()
	_ = inventory.ApplyQuery(rows, inventory.ProjectionQuery{SortBy: inventory.SortByQuantity, Desc: true})
	require.Equal(t, "1", rows[0].ID)
}

func TestParseSortField(t *testing.T) {
	f, ok := inventory.ParseSortField("")
	assert.True(t, ok)
	assert.Equal(t, inventory.SortByName, f)

	_, ok = inventory.ParseSortField("price")
	assert.False(t, ok)
}
