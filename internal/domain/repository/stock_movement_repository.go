package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// MovementFilter filtro de consulta del ledger. Los campos vacíos no filtran.
type MovementFilter struct {
	ItemID      string
	From        *time.Time // created_at >= From
	To          *time.Time // created_at <= To
	Type        string     // in, out
	Limit       int        // 0 = sin límite
	NewestFirst bool
}

// StockMovementRepository define el puerto de persistencia del ledger (append-only).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
	// DeleteByItem solo se usa en el borrado en cascada de un artículo.
	DeleteByItem(ctx context.Context, itemID string) (int64, error)
}
