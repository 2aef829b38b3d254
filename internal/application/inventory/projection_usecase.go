package inventory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ProjectionUseCase construye la vista de inventario completa a partir del último snapshot del store.
// Si hay caché, la proyección de cada revisión se calcula una sola vez.
type ProjectionUseCase struct {
	itemRepo     repository.ItemRepository
	movRepo      repository.StockMovementRepository
	revisionRepo repository.RevisionRepository
	cache        ProjectionCache // opcional
	log          zerolog.Logger
}

// NewProjectionUseCase construye el caso de uso. cache puede ser nil.
func NewProjectionUseCase(
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
	revisionRepo repository.RevisionRepository,
	cache ProjectionCache,
	log zerolog.Logger,
) *ProjectionUseCase {
	return &ProjectionUseCase{
		itemRepo:     itemRepo,
		movRepo:      movRepo,
		revisionRepo: revisionRepo,
		cache:        cache,
		log:          log,
	}
}

// Snapshot devuelve la proyección completa y la revisión a la que corresponde.
func (uc *ProjectionUseCase) Snapshot(ctx context.Context) ([]inventory.ProjectedItem, int64, error) {
	revision, err := uc.revisionRepo.Current(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("proyección: revisión: %w", err)
	}

	if uc.cache != nil {
		rows, ok, err := uc.cache.Get(ctx, revision)
		if err != nil {
			// Si el caché falla se recalcula desde el ledger.
			uc.log.Warn().Err(err).Int64("revision", revision).Msg("caché de proyección no disponible")
		} else if ok {
			return rows, revision, nil
		}
	}

	// ── Lecturas en paralelo ──────────────────────────────────────────────────
	type itemsResult struct {
		items []*entity.Item
		err   error
	}
	type movesResult struct {
		moves []*entity.StockMovement
		err   error
	}
	itemsCh := make(chan itemsResult, 1)
	movesCh := make(chan movesResult, 1)

	go func() {
		items, err := uc.itemRepo.List(ctx)
		itemsCh <- itemsResult{items, err}
	}()
	go func() {
		moves, err := uc.movRepo.List(ctx, repository.MovementFilter{})
		movesCh <- movesResult{moves, err}
	}()

	items := <-itemsCh
	moves := <-movesCh
	if items.err != nil {
		return nil, 0, fmt.Errorf("proyección: artículos: %w", items.err)
	}
	if moves.err != nil {
		return nil, 0, fmt.Errorf("proyección: movimientos: %w", moves.err)
	}

	rows := inventory.BuildProjection(items.items, moves.moves)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, revision, rows); err != nil {
			uc.log.Warn().Err(err).Int64("revision", revision).Msg("no se pudo guardar la proyección en caché")
		}
	}
	return rows, revision, nil
}

// List aplica filtros y orden sobre la proyección.
func (uc *ProjectionUseCase) List(ctx context.Context, q inventory.ProjectionQuery) (*dto.InventoryListResponse, error) {
	rows, revision, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	filtered := inventory.ApplyQuery(rows, q)
	out := &dto.InventoryListResponse{
		Revision: revision,
		Total:    len(filtered),
		Items:    make([]dto.InventoryItemResponse, 0, len(filtered)),
	}
	for _, r := range filtered {
		out.Items = append(out.Items, ToInventoryItemResponse(r))
	}
	return out, nil
}
