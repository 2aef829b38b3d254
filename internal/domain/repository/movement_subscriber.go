package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// MovementSubscription handle cancelable de una suscripción a inserciones en el ledger.
// Events se cierra cuando la suscripción termina; Err indica entonces la causa
// (nil si fue por Close o cancelación del contexto). Close es idempotente y libera la conexión.
type MovementSubscription interface {
	Events() <-chan *entity.StockMovement
	Err() error
	Close() error
}

// MovementSubscriber entrega notificaciones best-effort (at-most-once) de movimientos nuevos.
type MovementSubscriber interface {
	SubscribeInserts(ctx context.Context) (MovementSubscription, error)
}
