package repository

import "context"

// RevisionRepository expone el token de frescura del inventario: un contador que
// cambia con cada escritura sobre artículos, movimientos, categorías o unidades.
type RevisionRepository interface {
	Current(ctx context.Context) (int64, error)
}
