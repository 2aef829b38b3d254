package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

// LedgerUseCase consultas de solo lectura sobre el ledger global.
type LedgerUseCase struct {
	movRepo repository.StockMovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(movRepo repository.StockMovementRepository) *LedgerUseCase {
	return &LedgerUseCase{movRepo: movRepo}
}

// Recent devuelve los últimos movimientos, más reciente primero. limit <= 0 usa 10.
func (uc *LedgerUseCase) Recent(ctx context.Context, limit int) ([]dto.RecentTransactionDTO, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	moves, err := uc.movRepo.List(ctx, repository.MovementFilter{Limit: limit, NewestFirst: true})
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecentTransactionDTO, 0, len(moves))
	for _, m := range moves {
		out = append(out, dto.RecentTransactionDTO{
			ID:        m.ID,
			ItemLabel: ItemLabel(m),
			Type:      m.Type,
			TypeLabel: TypeLabel(m.Type),
			Quantity:  m.Quantity,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}
