package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Se usa para el borrado en cascada y la importación CSV: o se aplica todo o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// AlertSink destino de las alertas de stock bajo (SSE, logs, etc.).
type AlertSink interface {
	Publish(ctx context.Context, alert entity.StockAlert) error
}

// ProjectionCache guarda proyecciones completas indexadas por revisión del inventario.
// Nunca se parchea una entrada: una revisión nueva implica recomputar.
type ProjectionCache interface {
	Get(ctx context.Context, revision int64) ([]inventory.ProjectedItem, bool, error)
	Set(ctx context.Context, revision int64, rows []inventory.ProjectedItem) error
}

// NotifierObserver recibe los eventos operativos del notificador (métricas).
type NotifierObserver interface {
	SubscriptionOpened()
	SubscriptionFailed()
	EventDropped(reason string)
	AlertEmitted(status string)
}

type noopObserver struct{}

func (noopObserver) SubscriptionOpened() {}
func (noopObserver) SubscriptionFailed() {}
func (noopObserver) EventDropped(string) {}
func (noopObserver) AlertEmitted(string) {}
