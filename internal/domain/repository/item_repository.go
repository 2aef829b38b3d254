package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// Las lecturas resuelven CategoryName y UnitName por JOIN.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	Update(ctx context.Context, item *entity.Item) error
	// Upsert inserta o sobrescribe por code.
	Upsert(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetByCode(ctx context.Context, code string) (*entity.Item, error)
	List(ctx context.Context) ([]*entity.Item, error)
	Delete(ctx context.Context, id string) error
}
