package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// Motivos de descarte de eventos (etiqueta de métricas).
const (
	DropOrphan      = "orphan"
	DropItemLookup  = "item_lookup"
	DropItemMissing = "item_missing"
	DropLedgerFetch = "ledger_fetch"
	DropShutdown    = "shutdown"
)

var errSubscriptionClosed = errors.New("suscripción cerrada por el store")

// NotifierConfig parámetros del notificador en tiempo real.
type NotifierConfig struct {
	MaxConcurrent   int           // handlers simultáneos; 0 = 16
	InitialInterval time.Duration // primer reintento de suscripción; 0 = 500ms
	MaxInterval     time.Duration // tope del backoff; 0 = 30s
}

func (c NotifierConfig) withDefaults() NotifierConfig {
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = 16
	}
	if c.InitialInterval <= 0 {
		c.InitialInterval = 500 * time.Millisecond
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = 30 * time.Second
	}
	return c
}

// Notifier reacciona a cada movimiento insertado: recalcula la cantidad del artículo desde
// su ledger completo y emite una alerta si queda en o por debajo del punto de reorden.
//
// Entrega at-most-once: si la suscripción se pierde se vuelve a suscribir con backoff
// exponencial y los eventos intermedios no se reproducen. Cada evento se maneja en su
// propia goroutine; ráfagas pueden producir alertas duplicadas o desordenadas.
type Notifier struct {
	subscriber repository.MovementSubscriber
	itemRepo   repository.ItemRepository
	movRepo    repository.StockMovementRepository
	sinks      []AlertSink
	observer   NotifierObserver
	log        zerolog.Logger
	cfg        NotifierConfig
	now        func() time.Time
}

// NewNotifier construye el notificador.
func NewNotifier(
	subscriber repository.MovementSubscriber,
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
	log zerolog.Logger,
	cfg NotifierConfig,
	sinks ...AlertSink,
) *Notifier {
	return &Notifier{
		subscriber: subscriber,
		itemRepo:   itemRepo,
		movRepo:    movRepo,
		sinks:      sinks,
		observer:   noopObserver{},
		log:        log.With().Str("component", "stock_notifier").Logger(),
		cfg:        cfg.withDefaults(),
		now:        time.Now,
	}
}

// WithObserver registra un observador (métricas).
func (n *Notifier) WithObserver(o NotifierObserver) *Notifier {
	if o != nil {
		n.observer = o
	}
	return n
}

// Run mantiene la suscripción viva hasta que ctx se cancele. Al salir libera el handle
// de suscripción y espera a los handlers en curso. Nunca devuelve errores de eventos individuales.
func (n *Notifier) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	sem := make(chan struct{}, n.cfg.MaxConcurrent)
	bo := n.newBackOff(ctx)

	for {
		sub, err := n.subscriber.SubscribeInserts(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			n.observer.SubscriptionFailed()
			if !n.wait(ctx, bo, err) {
				return nil
			}
			continue
		}

		bo.Reset()
		n.observer.SubscriptionOpened()
		n.log.Info().Msg("suscrito a inserciones de movimientos")

		lost := n.consume(ctx, sub, sem, &wg)
		if err := sub.Close(); err != nil {
			n.log.Warn().Err(err).Msg("cerrar suscripción")
		}
		if ctx.Err() != nil {
			return nil
		}
		n.observer.SubscriptionFailed()
		if !n.wait(ctx, bo, lost) {
			return nil
		}
	}
}

func (n *Notifier) newBackOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = n.cfg.InitialInterval
	eb.MaxInterval = n.cfg.MaxInterval
	eb.MaxElapsedTime = 0 // reintentar mientras el contexto siga vivo
	eb.Reset()
	return backoff.WithContext(eb, ctx)
}

// wait espera el siguiente intervalo de backoff. false si ctx terminó.
func (n *Notifier) wait(ctx context.Context, bo backoff.BackOff, cause error) bool {
	d := bo.NextBackOff()
	if d == backoff.Stop {
		return false
	}
	n.log.Warn().Err(cause).Dur("retry_in", d).Msg("suscripción perdida, reintentando")
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// consume despacha eventos hasta que la suscripción se cierre o ctx termine.
// Devuelve la causa del cierre.
func (n *Notifier) consume(ctx context.Context, sub repository.MovementSubscription, sem chan struct{}, wg *sync.WaitGroup) error {
	events := sub.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				if err := sub.Err(); err != nil {
					return err
				}
				return errSubscriptionClosed
			}
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				n.observer.EventDropped(DropShutdown)
				return ctx.Err()
			}
			wg.Add(1)
			go func(ev *entity.StockMovement) {
				defer wg.Done()
				defer func() { <-sem }()
				n.HandleInsert(ctx, ev)
			}(ev)
		}
	}
}

// HandleInsert procesa un evento de inserción. Los fallos se registran y el evento se descarta.
func (n *Notifier) HandleInsert(ctx context.Context, ev *entity.StockMovement) {
	if ev == nil || ev.ItemID == "" {
		n.observer.EventDropped(DropOrphan)
		return
	}
	log := n.log.With().Str("item_id", ev.ItemID).Str("move_id", ev.ID).Logger()

	item, err := n.itemRepo.GetByID(ctx, ev.ItemID)
	if err != nil {
		log.Error().Err(err).Str("stage", "item_lookup").Msg("no se pudo leer el artículo")
		n.observer.EventDropped(DropItemLookup)
		return
	}
	if item == nil {
		log.Warn().Str("stage", "item_lookup").Msg("artículo inexistente para el movimiento")
		n.observer.EventDropped(DropItemMissing)
		return
	}
	if item.ReorderPoint == nil {
		return
	}

	ledger, err := n.movRepo.List(ctx, repository.MovementFilter{ItemID: item.ID})
	if err != nil {
		log.Error().Err(err).Str("stage", "ledger_fetch").Msg("no se pudo leer el ledger")
		n.observer.EventDropped(DropLedgerFetch)
		return
	}
	qty := inventory.Aggregate(ledger).Of(item.ID)
	status := inventory.Classify(qty, item.ReorderPoint)
	if !status.NeedsReorder() {
		return
	}

	alert := NewStockAlert(item, qty, status, ev.ID, n.now())
	for _, sink := range n.sinks {
		if err := sink.Publish(ctx, alert); err != nil {
			log.Warn().Err(err).Msg("no se pudo publicar la alerta")
		}
	}
	n.observer.AlertEmitted(string(status))
	log.Info().
		Int("quantity", qty).
		Int("reorder_point", *item.ReorderPoint).
		Str("status", string(status)).
		Msg(alert.Title)
}

// NewStockAlert arma la alerta de stock bajo de un artículo.
func NewStockAlert(item *entity.Item, quantity int, status inventory.StockStatus, movementID string, at time.Time) entity.StockAlert {
	rp := 0
	if item.ReorderPoint != nil {
		rp = *item.ReorderPoint
	}
	return entity.StockAlert{
		ItemID:       item.ID,
		ItemName:     item.Name,
		Quantity:     quantity,
		ReorderPoint: rp,
		Status:       string(status),
		Title:        entity.StockAlertTitle,
		Message: fmt.Sprintf(
			"Stok untuk %s telah mencapai level rendah (%d unit). Segera lakukan pemesanan ulang.",
			item.Name, quantity,
		),
		MovementID: movementID,
		EmittedAt:  at,
	}
}
