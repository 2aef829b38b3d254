package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// UnitRepository define el puerto de persistencia para Unit (DIP).
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.Unit) error
	List(ctx context.Context) ([]*entity.Unit, error)
}
