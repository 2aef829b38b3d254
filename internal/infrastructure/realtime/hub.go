// Package realtime difunde alertas de stock a clientes conectados por Server-Sent Events.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

var _ inventory.AlertSink = (*Hub)(nil)

// EventStockAlert nombre del evento SSE de alertas.
const EventStockAlert = "stock_alert"

const clientBuffer = 16

// Event evento SSE ya serializado.
type Event struct {
	Name string
	Data []byte
}

// Client cliente SSE conectado.
type Client struct {
	ID     string
	Events chan Event
}

// Observer recibe el número de clientes conectados (métricas).
type Observer interface {
	ClientsChanged(n int)
}

// Hub mantiene los clientes SSE y les difunde eventos.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client
	log      zerolog.Logger
	observer Observer
}

// NewHub crea un hub vacío. observer puede ser nil.
func NewHub(log zerolog.Logger, observer Observer) *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		log:      log.With().Str("component", "sse_hub").Logger(),
		observer: observer,
	}
}

// Register agrega un cliente nuevo y lo devuelve.
func (h *Hub) Register() *Client {
	c := &Client{ID: uuid.NewString(), Events: make(chan Event, clientBuffer)}
	h.mu.Lock()
	h.clients[c.ID] = c
	n := len(h.clients)
	h.mu.Unlock()

	h.notify(n)
	h.log.Debug().Str("client_id", c.ID).Int("total", n).Msg("cliente SSE registrado")
	return c
}

// Unregister elimina el cliente y cierra su canal. Es idempotente.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	c, ok := h.clients[clientID]
	if ok {
		close(c.Events)
		delete(h.clients, clientID)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		h.notify(n)
		h.log.Debug().Str("client_id", clientID).Int("total", n).Msg("cliente SSE desconectado")
	}
}

// Broadcast envía el evento a todos los clientes sin bloquear; si el buffer de un cliente está lleno se omite.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.Events <- ev:
		default:
			h.log.Warn().Str("client_id", c.ID).Msg("buffer SSE lleno, evento omitido")
		}
	}
}

// Publish implementa inventory.AlertSink.
func (h *Hub) Publish(_ context.Context, alert entity.StockAlert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}
	h.Broadcast(Event{Name: EventStockAlert, Data: data})
	return nil
}

// ClientCount número de clientes conectados.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) notify(n int) {
	if h.observer != nil {
		h.observer.ClientsChanged(n)
	}
}

// Format serializa el evento en el formato de texto SSE.
func (e Event) Format() string {
	return fmt.Sprintf("event: %s\ndata: %s\n\n", e.Name, e.Data)
}
