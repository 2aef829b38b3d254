package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	appinventory "github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

func TestLedgerUseCase_RecentEtiquetasYOrden(t *testing.T) {
	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	moves := &fakeMovRepo{moves: []*entity.StockMovement{
		{ID: "m1", ItemID: itemA, ItemCode: "K-1", ItemName: "Kertas", Type: entity.MovementTypeIn, Quantity: 10, CreatedAt: base},
		{ID: "m2", Type: entity.MovementTypeOut, Quantity: 3, CreatedAt: base.Add(time.Hour)},
	}}
	uc := appinventory.NewLedgerUseCase(moves)

	out, err := uc.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "m2", out[0].ID, "el más reciente va primero")
	assert.Equal(t, appinventory.UnknownItemLabel, out[0].ItemLabel, "movimiento huérfano")
	assert.Equal(t, "Keluar", out[0].TypeLabel)
	assert.Equal(t, "K-1 - Kertas", out[1].ItemLabel)
	assert.Equal(t, "Masuk", out[1].TypeLabel)
}

func TestLedgerUseCase_RecentRespetaLimite(t *testing.T) {
	moves := &fakeMovRepo{moves: ledger(itemA,
		entity.MovementTypeIn, 1, entity.MovementTypeIn, 2, entity.MovementTypeIn, 3)}
	uc := appinventory.NewLedgerUseCase(moves)

	out, err := uc.Recent(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestItemUseCase_LedgerCantidadYEstado(t *testing.T) {
	items := newFakeItemRepo(&entity.Item{ID: itemA, Name: "Tinta", Code: "T-1", ReorderPoint: intPtr(5)})
	moves := &fakeMovRepo{moves: ledger(itemA, entity.MovementTypeIn, 8, entity.MovementTypeOut, 8)}
	uc := appinventory.NewItemUseCase(&fakeTxRunner{items: items, moves: moves}, items, moves)

	out, err := uc.Ledger(context.Background(), itemA)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Quantity)
	assert.Equal(t, "out_of_stock", out.Status)
	assert.Len(t, out.Movements, 2)

	_, err = uc.Ledger(context.Background(), itemB)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogUseCase_CrearYListar(t *testing.T) {
	cats := &fakeCategoryRepo{}
	units := &fakeUnitRepo{}
	uc := appinventory.NewCatalogUseCase(cats, units)
	ctx := context.Background()

	_, err := uc.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre vacío")

	cat, err := uc.CreateCategory(ctx, dto.CreateCategoryRequest{Name: " Alat Tulis "})
	require.NoError(t, err)
	assert.Equal(t, "Alat Tulis", cat.Name)
	assert.NotEmpty(t, cat.ID)

	unit, err := uc.CreateUnit(ctx, dto.CreateUnitRequest{Name: "Rim", Symbol: " rm "})
	require.NoError(t, err)
	assert.Equal(t, "rm", unit.Symbol)

	listC, err := uc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, listC, 1)
	listU, err := uc.ListUnits(ctx)
	require.NoError(t, err)
	assert.Len(t, listU, 1)
}
