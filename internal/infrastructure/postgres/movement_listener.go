package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// MovementInsertChannel canal NOTIFY que emite el trigger de inserción de stock_moves.
const MovementInsertChannel = "stock_moves_insert"

var _ repository.MovementSubscriber = (*MovementListener)(nil)

// MovementListener suscribe inserciones del ledger vía LISTEN/NOTIFY.
// Cada suscripción retiene una conexión del pool hasta Close.
type MovementListener struct {
	pool    *pgxpool.Pool
	channel string
	log     zerolog.Logger
}

// NewMovementListener construye el listener sobre el canal por defecto.
func NewMovementListener(pool *pgxpool.Pool, log zerolog.Logger) *MovementListener {
	return &MovementListener{
		pool:    pool,
		channel: MovementInsertChannel,
		log:     log.With().Str("component", "movement_listener").Logger(),
	}
}

// SubscribeInserts adquiere una conexión, ejecuta LISTEN y empieza a entregar eventos.
func (l *MovementListener) SubscribeInserts(ctx context.Context) (repository.MovementSubscription, error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire listen conn: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listen %s: %w", l.channel, err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	s := &movementSubscription{
		conn:   conn,
		cancel: cancel,
		events: make(chan *entity.StockMovement, 64),
		done:   make(chan struct{}),
		log:    l.log,
	}
	go s.loop(subCtx)
	return s, nil
}

type movementSubscription struct {
	conn   *pgxpool.Conn
	cancel context.CancelFunc
	events chan *entity.StockMovement
	done   chan struct{}
	log    zerolog.Logger

	mu       sync.Mutex
	err      error
	closeErr error
	once     sync.Once
}

func (s *movementSubscription) Events() <-chan *entity.StockMovement { return s.events }

func (s *movementSubscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close cancela la espera, ejecuta UNLISTEN * y devuelve la conexión al pool.
func (s *movementSubscription) Close() error {
	s.once.Do(func() {
		s.cancel()
		<-s.done

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := s.conn.Exec(ctx, "UNLISTEN *"); err != nil {
			// Conexión en estado incierto: se cierra en lugar de reciclarla.
			_ = s.conn.Conn().Close(ctx)
			s.closeErr = fmt.Errorf("unlisten: %w", err)
		}
		s.conn.Release()
	})
	return s.closeErr
}

func (s *movementSubscription) loop(ctx context.Context) {
	defer close(s.done)
	defer close(s.events)

	for {
		n, err := s.conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() == nil {
				s.mu.Lock()
				s.err = err
				s.mu.Unlock()
			}
			return
		}
		ev, err := decodeMovementPayload(n.Payload)
		if err != nil {
			s.log.Warn().Err(err).Str("payload", n.Payload).Msg("notificación de movimiento inválida")
			continue
		}
		select {
		case s.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// movementPayload cuerpo JSON que construye el trigger notify_stock_move_insert.
type movementPayload struct {
	ID        string    `json:"id"`
	ItemID    *string   `json:"item_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

var errEmptyPayload = errors.New("payload vacío")

func decodeMovementPayload(raw string) (*entity.StockMovement, error) {
	if raw == "" {
		return nil, errEmptyPayload
	}
	var p movementPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	m := &entity.StockMovement{
		ID:        p.ID,
		Type:      p.Type,
		Quantity:  p.Quantity,
		CreatedAt: p.CreatedAt,
	}
	if p.ItemID != nil {
		m.ItemID = *p.ItemID
	}
	return m, nil
}
