package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del ledger sobre PostgreSQL. Solo inserta y consulta;
// el borrado existe únicamente para la cascada de artículos.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento. ErrNotFound si el artículo no existe.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_moves (id, item_id, type, quantity, condition, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		m.ID, nullableID(m.ItemID), m.Type, m.Quantity, m.Condition, m.Reason, m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert stock move: %w", err)
	}
	return nil
}

// List consulta el ledger con filtros opcionales. El orden es por created_at (e id para desempatar).
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	query, args, err := buildMovementQuery(f)
	if err != nil {
		return nil, fmt.Errorf("build stock moves query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock moves: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock move: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteByItem borra el ledger de un artículo. Devuelve cuántos movimientos se eliminaron.
func (r *StockMovementRepo) DeleteByItem(ctx context.Context, itemID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock_moves WHERE item_id = $1`, itemID)
	if err != nil {
		return 0, fmt.Errorf("delete stock moves: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func buildMovementQuery(f repository.MovementFilter) (string, []any, error) {
	sb := psql.
		Select(
			"m.id", "m.item_id", "m.type", "m.quantity", "m.condition", "m.reason", "m.created_at",
			"COALESCE(i.code, '')", "COALESCE(i.name, '')",
		).
		From("stock_moves m").
		LeftJoin("items i ON i.id = m.item_id")

	if f.ItemID != "" {
		sb = sb.Where(squirrel.Eq{"m.item_id": f.ItemID})
	}
	if f.Type != "" {
		sb = sb.Where(squirrel.Eq{"m.type": f.Type})
	}
	if f.From != nil {
		sb = sb.Where(squirrel.GtOrEq{"m.created_at": *f.From})
	}
	if f.To != nil {
		sb = sb.Where(squirrel.LtOrEq{"m.created_at": *f.To})
	}
	if f.NewestFirst {
		sb = sb.OrderBy("m.created_at DESC", "m.id DESC")
	} else {
		sb = sb.OrderBy("m.created_at ASC", "m.id ASC")
	}
	if f.Limit > 0 {
		sb = sb.Limit(uint64(f.Limit))
	}
	return sb.ToSql()
}

func scanMovement(row pgxScanner) (*entity.StockMovement, error) {
	var (
		m      entity.StockMovement
		itemID *string
	)
	err := row.Scan(
		&m.ID, &itemID, &m.Type, &m.Quantity, &m.Condition, &m.Reason, &m.CreatedAt,
		&m.ItemCode, &m.ItemName,
	)
	if err != nil {
		return nil, err
	}
	if itemID != nil {
		m.ItemID = *itemID
	}
	return &m, nil
}

func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
