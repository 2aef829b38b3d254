package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	appinventory "github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

func TestItemUseCase_DeleteBorraLedgerAntesQueArticulo(t *testing.T) {
	log := &callLog{}
	items := newFakeItemRepo(&entity.Item{ID: itemA, Name: "Kertas", Code: "K"})
	items.log = log
	moves := &fakeMovRepo{moves: ledger(itemA, entity.MovementTypeIn, 4), log: log}
	tx := &fakeTxRunner{items: items, moves: moves}
	uc := appinventory.NewItemUseCase(tx, items, moves)

	require.NoError(t, uc.Delete(context.Background(), itemA))

	assert.Equal(t, []string{"moves.delete", "item.delete"}, log.calls)
	assert.Empty(t, moves.moves)
	assert.Equal(t, 1, tx.runs)
}

func TestItemUseCase_DeleteInexistente(t *testing.T) {
	items := newFakeItemRepo()
	moves := &fakeMovRepo{}
	uc := appinventory.NewItemUseCase(&fakeTxRunner{items: items, moves: moves}, items, moves)

	err := uc.Delete(context.Background(), itemB)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemUseCase_CreateValidaYRechazaDuplicados(t *testing.T) {
	items := newFakeItemRepo(&entity.Item{ID: itemA, Name: "Kertas", Code: "K-1"})
	moves := &fakeMovRepo{}
	uc := appinventory.NewItemUseCase(&fakeTxRunner{items: items, moves: moves}, items, moves)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateItemRequest{Name: "A", Code: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre de un carácter")

	_, err = uc.Create(ctx, dto.CreateItemRequest{Name: "Lem", Code: "X", ReorderPoint: intPtr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "reorder_point negativo")

	_, err = uc.Create(ctx, dto.CreateItemRequest{Name: "Lem", Code: "X", ReorderPoint: intPtr(entity.MaxQuantity + 1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "reorder_point fuera de INTEGER")

	_, err = uc.Create(ctx, dto.CreateItemRequest{Name: "Kertas Lain", Code: "K-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	empty := ""
	resp, err := uc.Create(ctx, dto.CreateItemRequest{Name: "Lem", Code: "L-1", CategoryID: &empty})
	require.NoError(t, err)
	assert.Nil(t, resp.CategoryID, "categoría vacía se guarda como nula")
	assert.Equal(t, 0, resp.Quantity)
	assert.Equal(t, "N/A", resp.Category)
}

func TestItemUseCase_GetByIDCalculaCantidad(t *testing.T) {
	items := newFakeItemRepo(&entity.Item{ID: itemA, Name: "Kertas", Code: "K", ReorderPoint: intPtr(10)})
	moves := &fakeMovRepo{moves: ledger(itemA, entity.MovementTypeIn, 50, entity.MovementTypeOut, 45)}
	uc := appinventory.NewItemUseCase(&fakeTxRunner{items: items, moves: moves}, items, moves)

	resp, err := uc.GetByID(context.Background(), itemA)

	require.NoError(t, err)
	assert.Equal(t, 5, resp.Quantity)
	assert.Equal(t, "low_stock", resp.Status)

	missing, err := uc.GetByID(context.Background(), itemB)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
