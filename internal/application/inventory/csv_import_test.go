package inventory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

const catATK = "33333333-3333-3333-3333-333333333333"
const unitPcs = "44444444-4444-4444-4444-444444444444"

func newImportFixture() (*appinventory.CSVImportUseCase, *fakeItemRepo, *fakeTxRunner) {
	items := newFakeItemRepo()
	tx := &fakeTxRunner{items: items, moves: &fakeMovRepo{}}
	cats := &fakeCategoryRepo{list: []*entity.Category{{ID: catATK, Name: "ATK"}}}
	units := &fakeUnitRepo{list: []*entity.Unit{{ID: unitPcs, Name: "Buah", Symbol: "pcs"}}}
	return appinventory.NewCSVImportUseCase(tx, cats, units), items, tx
}

func TestCSVImport_CodigoRepetidoGanaLaUltimaFila(t *testing.T) {
	uc, items, tx := newImportFixture()
	csv := "code,name,category,unit,reorder_point\n" +
		"SKU-1,Pulpen Biru,ATK,pcs,5\n" +
		"SKU-1,Pulpen Hitam,atk,Buah,8\n"

	res, err := uc.Import(context.Background(), strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, tx.runs, "todas las filas en una sola transacción")
	require.Len(t, items.upserted, 1, "un único upsert por código")
	got := items.upserted[0]
	assert.Equal(t, "Pulpen Hitam", got.Name)
	require.NotNil(t, got.ReorderPoint)
	assert.Equal(t, 8, *got.ReorderPoint)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, catATK, *got.CategoryID)
	require.NotNil(t, got.UnitID)
	assert.Equal(t, unitPcs, *got.UnitID)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 3, res.Warnings[0].Line)
}

func TestCSVImport_SinEncabezadoObligatorio(t *testing.T) {
	uc, items, tx := newImportFixture()

	_, err := uc.Import(context.Background(), strings.NewReader("kode,nama\nA,Barang\n"))

	assert.ErrorIs(t, err, domain.ErrInvalidCSV)
	assert.Zero(t, tx.runs)
	assert.Empty(t, items.upserted)
}

func TestCSVImport_ArchivoVacio(t *testing.T) {
	uc, _, _ := newImportFixture()

	_, err := uc.Import(context.Background(), strings.NewReader(""))

	assert.ErrorIs(t, err, domain.ErrInvalidCSV)
}

func TestCSVImport_FilasInvalidasYAdvertencias(t *testing.T) {
	uc, items, _ := newImportFixture()
	csv := "\ufeffCode,Name,Category,Reorder_Point\n" +
		"A-1,Map Plastik,Elektronik,\n" +
		",Tanpa Kode,,\n" +
		"B-2,X,,\n" +
		"C-3,Spidol,,-1\n" +
		",,,\n"

	res, err := uc.Import(context.Background(), strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Len(t, res.Skipped, 3)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Message, "Elektronik")
	require.Len(t, items.upserted, 1)
	assert.Nil(t, items.upserted[0].CategoryID)
	assert.Nil(t, items.upserted[0].ReorderPoint, "reorder_point vacío queda sin umbral")
}

func TestCSVImport_SinFilasValidasNoAbreTransaccion(t *testing.T) {
	uc, _, tx := newImportFixture()

	res, err := uc.Import(context.Background(), strings.NewReader("code,name\n,\n"))

	require.NoError(t, err)
	assert.Zero(t, res.Imported)
	assert.Zero(t, tx.runs)
}

func TestCSVImport_ReorderPointFueraDeRangoSeOmite(t *testing.T) {
	uc, items, _ := newImportFixture()
	csv := "code,name,reorder_point\n" +
		"A-1,Map Plastik,2147483647\n" +
		"B-2,Stapler,2147483648\n"

	res, err := uc.Import(context.Background(), strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "B-2", res.Skipped[0].Code)
	assert.Equal(t, 3, res.Skipped[0].Line)
	require.Len(t, items.upserted, 1)
	require.NotNil(t, items.upserted[0].ReorderPoint)
	assert.Equal(t, entity.MaxQuantity, *items.upserted[0].ReorderPoint)
}
