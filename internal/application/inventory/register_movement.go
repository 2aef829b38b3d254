package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// RegisterMovementUseCase agrega movimientos al ledger. No verifica suficiencia de stock:
// una salida puede dejar la cantidad negativa y el artículo queda out_of_stock.
type RegisterMovementUseCase struct {
	itemRepo repository.ItemRepository
	movRepo  repository.StockMovementRepository
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{itemRepo: itemRepo, movRepo: movRepo, now: time.Now}
}

// MovementInput entrada para registrar un movimiento.
// Condition aplica a entradas y Reason a salidas; vacío toma el valor por defecto.
type MovementInput struct {
	ItemID    string
	Type      string
	Quantity  int
	Condition string
	Reason    string
}

// Validate revisa la entrada sin tocar el store y normaliza el calificador.
func (in *MovementInput) Validate() error {
	if _, err := uuid.Parse(in.ItemID); err != nil {
		return domain.ErrMissingItem
	}
	if in.Quantity <= 0 || in.Quantity > entity.MaxQuantity {
		return domain.ErrInvalidQuantity
	}
	switch in.Type {
	case entity.MovementTypeIn:
		if in.Condition == "" {
			in.Condition = entity.ConditionUsable
		}
		if !entity.IsValidCondition(in.Condition) {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeOut:
		if in.Reason == "" {
			in.Reason = entity.ReasonNormalUse
		}
		if !entity.IsValidReason(in.Reason) {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidDirection
	}
	return nil
}

// RegisterMovement valida, comprueba que el artículo exista e inserta el movimiento.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInput) (*dto.MovementResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	m := &entity.StockMovement{
		ID:        uuid.New().String(),
		ItemID:    item.ID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		CreatedAt: uc.now(),
	}
	if in.Type == entity.MovementTypeIn {
		m.Condition = &in.Condition
	} else {
		m.Reason = &in.Reason
	}
	if err := uc.movRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMovementResponse(m), nil
}

// StockIn adapta el request HTTP de entrada.
func (uc *RegisterMovementUseCase) StockIn(ctx context.Context, in dto.StockInRequest) (*dto.MovementResponse, error) {
	return uc.RegisterMovement(ctx, MovementInput{
		ItemID:    in.ItemID,
		Type:      entity.MovementTypeIn,
		Quantity:  in.Quantity,
		Condition: in.Condition,
	})
}

// StockOut adapta el request HTTP de salida.
func (uc *RegisterMovementUseCase) StockOut(ctx context.Context, in dto.StockOutRequest) (*dto.MovementResponse, error) {
	return uc.RegisterMovement(ctx, MovementInput{
		ItemID:   in.ItemID,
		Type:     entity.MovementTypeOut,
		Quantity: in.Quantity,
		Reason:   in.Reason,
	})
}
