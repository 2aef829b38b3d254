package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const selectItemSQL = `
	SELECT i.id, i.name, i.code, i.reorder_point, i.category_id, i.unit_id, i.created_at, i.updated_at,
	       c.name, u.name
	FROM items i
	LEFT JOIN categories c ON c.id = i.category_id
	LEFT JOIN units u ON u.id = i.unit_id`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, name, code, reorder_point, category_id, unit_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Code, item.ReorderPoint, item.CategoryID, item.UnitID,
		item.CreatedAt, item.UpdatedAt,
	)
	return mapItemWriteErr("insert item", err)
}

// Update actualiza los campos editables. ErrNotFound si el artículo no existe.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, code = $3, reorder_point = $4, category_id = $5, unit_id = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Code, item.ReorderPoint, item.CategoryID, item.UnitID, item.UpdatedAt,
	)
	if err != nil {
		return mapItemWriteErr("update item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Upsert inserta o sobrescribe por code. item.ID queda con el id persistido.
func (r *ItemRepo) Upsert(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, name, code, reorder_point, category_id, unit_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			reorder_point = EXCLUDED.reorder_point,
			category_id = EXCLUDED.category_id,
			unit_id = EXCLUDED.unit_id,
			updated_at = EXCLUDED.updated_at
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		item.ID, item.Name, item.Code, item.ReorderPoint, item.CategoryID, item.UnitID,
		item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	return mapItemWriteErr("upsert item", err)
}

// GetByID obtiene un artículo por ID. Devuelve nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	item, err := scanItem(r.q.QueryRow(ctx, selectItemSQL+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// GetByCode obtiene un artículo por código. Devuelve nil si no existe.
func (r *ItemRepo) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	item, err := scanItem(r.q.QueryRow(ctx, selectItemSQL+` WHERE i.code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by code: %w", err)
	}
	return item, nil
}

// List devuelve todos los artículos con etiquetas resueltas, ordenados por nombre.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, selectItemSQL+` ORDER BY i.name, i.id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var out []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Delete elimina el artículo. ErrNotFound si no existe.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func scanItem(row pgxScanner) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.Name, &it.Code, &it.ReorderPoint, &it.CategoryID, &it.UnitID,
		&it.CreatedAt, &it.UpdatedAt, &it.CategoryName, &it.UnitName,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// mapItemWriteErr traduce code duplicado y referencias inexistentes a errores de dominio.
func mapItemWriteErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: categoría o unidad", domain.ErrNotFound)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
