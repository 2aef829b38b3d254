package inventory

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

const minItemNameLen = 2

// ItemUseCase casos de uso CRUD para artículos. La cantidad se maneja solo vía movimientos.
type ItemUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	movRepo  repository.StockMovementRepository
	now      func() time.Time
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner, itemRepo: itemRepo, movRepo: movRepo, now: time.Now}
}

// itemFields campos editables ya validados.
type itemFields struct {
	name         string
	code         string
	reorderPoint *int
	categoryID   *string
	unitID       *string
}

func validateItemFields(name, code string, reorderPoint *int, categoryID, unitID *string) (itemFields, error) {
	f := itemFields{
		name:         strings.TrimSpace(name),
		code:         strings.TrimSpace(code),
		reorderPoint: reorderPoint,
	}
	if utf8.RuneCountInString(f.name) < minItemNameLen || f.code == "" {
		return f, domain.ErrInvalidInput
	}
	if reorderPoint != nil && (*reorderPoint < 0 || *reorderPoint > entity.MaxQuantity) {
		return f, domain.ErrInvalidInput
	}
	var err error
	if f.categoryID, err = optionalUUID(categoryID); err != nil {
		return f, err
	}
	if f.unitID, err = optionalUUID(unitID); err != nil {
		return f, err
	}
	return f, nil
}

// optionalUUID normaliza "" a nil y valida el formato.
func optionalUUID(s *string) (*string, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if _, err := uuid.Parse(v); err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &v, nil
}

// Create crea un artículo. El código debe ser único.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	f, err := validateItemFields(in.Name, in.Code, in.ReorderPoint, in.CategoryID, in.UnitID)
	if err != nil {
		return nil, err
	}
	existing, err := uc.itemRepo.GetByCode(ctx, f.code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.now()
	item := &entity.Item{
		ID:           uuid.New().String(),
		Name:         f.name,
		Code:         f.code,
		ReorderPoint: f.reorderPoint,
		CategoryID:   f.categoryID,
		UnitID:       f.unitID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	// Releer para resolver etiquetas de categoría y unidad.
	saved, err := uc.itemRepo.GetByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		saved = item
	}
	return toItemResponse(saved, nil), nil
}

// GetByID obtiene un artículo con su cantidad actual. Devuelve nil si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	ledger, err := uc.movRepo.List(ctx, repository.MovementFilter{ItemID: id})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item, ledger), nil
}

// Update reemplaza los campos editables. Devuelve nil si no existe.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	f, err := validateItemFields(in.Name, in.Code, in.ReorderPoint, in.CategoryID, in.UnitID)
	if err != nil {
		return nil, err
	}
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if f.code != item.Code {
		other, err := uc.itemRepo.GetByCode(ctx, f.code)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != item.ID {
			return nil, domain.ErrDuplicate
		}
	}
	item.Name = f.name
	item.Code = f.code
	item.ReorderPoint = f.reorderPoint
	item.CategoryID = f.categoryID
	item.UnitID = f.unitID
	item.UpdatedAt = uc.now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete borra el artículo y su ledger en una sola transacción: primero los movimientos, luego el artículo.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.StockMovementRepository) error {
		item, err := itemRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if _, err := movRepo.DeleteByItem(ctx, id); err != nil {
			return err
		}
		return itemRepo.Delete(ctx, id)
	})
}

// Ledger devuelve los movimientos del artículo (más reciente primero) y su cantidad actual.
func (uc *ItemUseCase) Ledger(ctx context.Context, id string) (*dto.ItemLedgerDTO, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	moves, err := uc.movRepo.List(ctx, repository.MovementFilter{ItemID: id, NewestFirst: true})
	if err != nil {
		return nil, err
	}
	qty := inventory.Aggregate(moves).Of(id)
	out := &dto.ItemLedgerDTO{
		ItemID:    id,
		Quantity:  qty,
		Status:    string(inventory.Classify(qty, item.ReorderPoint)),
		Movements: make([]dto.MovementResponse, 0, len(moves)),
	}
	for _, m := range moves {
		out.Movements = append(out.Movements, *toMovementResponse(m))
	}
	return out, nil
}
