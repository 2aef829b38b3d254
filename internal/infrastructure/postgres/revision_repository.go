package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.RevisionRepository = (*RevisionRepo)(nil)

// RevisionRepo lee el contador inventory_revision que mantienen los triggers de escritura.
type RevisionRepo struct {
	q Querier
}

// NewRevisionRepository construye el adaptador.
func NewRevisionRepository(q Querier) *RevisionRepo {
	return &RevisionRepo{q: q}
}

// Current devuelve la revisión actual del inventario.
func (r *RevisionRepo) Current(ctx context.Context) (int64, error) {
	var rev int64
	if err := r.q.QueryRow(ctx, `SELECT revision FROM inventory_revision WHERE id = 1`).Scan(&rev); err != nil {
		return 0, fmt.Errorf("get inventory revision: %w", err)
	}
	return rev, nil
}
