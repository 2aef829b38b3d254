package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// CatalogUseCase categorías y unidades.
type CatalogUseCase struct {
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(categoryRepo repository.CategoryRepository, unitRepo repository.UnitRepository) *CatalogUseCase {
	return &CatalogUseCase{categoryRepo: categoryRepo, unitRepo: unitRepo}
}

// CreateCategory crea una categoría. El nombre es obligatorio y único.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}, nil
}

// ListCategories lista categorías por nombre.
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
	}
	return out, nil
}

// CreateUnit crea una unidad de medida.
func (uc *CatalogUseCase) CreateUnit(ctx context.Context, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	u := &entity.Unit{ID: uuid.New().String(), Name: name, Symbol: strings.TrimSpace(in.Symbol), CreatedAt: time.Now()}
	if err := uc.unitRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return &dto.UnitResponse{ID: u.ID, Name: u.Name, Symbol: u.Symbol, CreatedAt: u.CreatedAt}, nil
}

// ListUnits lista unidades por nombre.
func (uc *CatalogUseCase) ListUnits(ctx context.Context) ([]dto.UnitResponse, error) {
	list, err := uc.unitRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.UnitResponse{ID: u.ID, Name: u.Name, Symbol: u.Symbol, CreatedAt: u.CreatedAt})
	}
	return out, nil
}
