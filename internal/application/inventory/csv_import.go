package inventory

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// Columnas reconocidas del CSV de importación (case-insensitive).
const (
	csvColCode         = "code"
	csvColName         = "name"
	csvColCategory     = "category"
	csvColUnit         = "unit"
	csvColReorderPoint = "reorder_point"
)

// CSVImportUseCase importa artículos desde CSV con upsert por código.
// Filas con el mismo código se colapsan: gana la última.
type CSVImportUseCase struct {
	txRunner     TxRunner
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
	now          func() time.Time
}

// NewCSVImportUseCase construye el caso de uso.
func NewCSVImportUseCase(
	txRunner TxRunner,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
) *CSVImportUseCase {
	return &CSVImportUseCase{txRunner: txRunner, categoryRepo: categoryRepo, unitRepo: unitRepo, now: time.Now}
}

// Import lee el CSV completo, valida cada fila y aplica todos los upserts en una transacción.
// Un CSV mal formado o sin columnas code/name devuelve domain.ErrInvalidCSV sin escribir nada.
func (uc *CSVImportUseCase) Import(ctx context.Context, r io.Reader) (*dto.ImportResultDTO, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidCSV)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCSV, err)
	}
	cols := indexHeader(header)
	if _, ok := cols[csvColCode]; !ok {
		return nil, fmt.Errorf("%w: falta la columna %q", domain.ErrInvalidCSV, csvColCode)
	}
	if _, ok := cols[csvColName]; !ok {
		return nil, fmt.Errorf("%w: falta la columna %q", domain.ErrInvalidCSV, csvColName)
	}

	categories, units, err := uc.lookups(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResultDTO{Skipped: []dto.ImportIssueDTO{}, Warnings: []dto.ImportIssueDTO{}}
	byCode := make(map[string]*entity.Item)
	var order []string
	now := uc.now()

	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: línea %d: %v", domain.ErrInvalidCSV, line, err)
		}
		if isBlankRecord(rec) {
			continue
		}

		code := field(rec, cols, csvColCode)
		name := field(rec, cols, csvColName)
		if code == "" || utf8.RuneCountInString(name) < minItemNameLen {
			result.Skipped = append(result.Skipped, dto.ImportIssueDTO{Line: line, Code: code, Message: "code y name (mínimo 2 caracteres) son obligatorios"})
			continue
		}
		// reorder_point vacío queda NULL (sin umbral, nunca alerta); no se convierte en 0.
		var reorderPoint *int
		if raw := field(rec, cols, csvColReorderPoint); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 || n > entity.MaxQuantity {
				result.Skipped = append(result.Skipped, dto.ImportIssueDTO{Line: line, Code: code, Message: "reorder_point debe ser un entero entre 0 y 2147483647"})
				continue
			}
			reorderPoint = &n
		}

		item := &entity.Item{
			ID:           uuid.New().String(),
			Name:         name,
			Code:         code,
			ReorderPoint: reorderPoint,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if label := field(rec, cols, csvColCategory); label != "" {
			if id, ok := categories[strings.ToLower(label)]; ok {
				item.CategoryID = &id
			} else {
				result.Warnings = append(result.Warnings, dto.ImportIssueDTO{Line: line, Code: code, Message: "categoría desconocida: " + label})
			}
		}
		if label := field(rec, cols, csvColUnit); label != "" {
			if id, ok := units[strings.ToLower(label)]; ok {
				item.UnitID = &id
			} else {
				result.Warnings = append(result.Warnings, dto.ImportIssueDTO{Line: line, Code: code, Message: "unidad desconocida: " + label})
			}
		}

		if _, seen := byCode[code]; seen {
			result.Warnings = append(result.Warnings, dto.ImportIssueDTO{Line: line, Code: code, Message: "código repetido: se conserva esta fila"})
		} else {
			order = append(order, code)
		}
		byCode[code] = item
	}

	if len(order) == 0 {
		return result, nil
	}
	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, _ repository.StockMovementRepository) error {
		for _, code := range order {
			if err := itemRepo.Upsert(ctx, byCode[code]); err != nil {
				return fmt.Errorf("upsert %s: %w", code, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Imported = len(order)
	return result, nil
}

// lookups nombre en minúsculas → id para categorías y unidades.
func (uc *CSVImportUseCase) lookups(ctx context.Context) (map[string]string, map[string]string, error) {
	cats, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	units, err := uc.unitRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	catByName := make(map[string]string, len(cats))
	for _, c := range cats {
		catByName[strings.ToLower(c.Name)] = c.ID
	}
	unitByName := make(map[string]string, len(units))
	for _, u := range units {
		unitByName[strings.ToLower(u.Name)] = u.ID
		if u.Symbol != "" {
			if _, taken := unitByName[strings.ToLower(u.Symbol)]; !taken {
				unitByName[strings.ToLower(u.Symbol)] = u.ID
			}
		}
	}
	return catByName, unitByName, nil
}

func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	return cols
}

func field(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
