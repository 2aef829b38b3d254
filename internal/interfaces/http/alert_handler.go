package http

import (
	"bufio"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/realtime"
)

const defaultHeartbeat = 30 * time.Second

// AlertHandler stream SSE de alertas de stock bajo.
type AlertHandler struct {
	hub       *realtime.Hub
	heartbeat time.Duration
	done      chan struct{}
	closeOnce sync.Once
}

// NewAlertHandler construye el handler. heartbeat <= 0 usa 30s.
func NewAlertHandler(hub *realtime.Hub, heartbeat time.Duration) *AlertHandler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &AlertHandler{hub: hub, heartbeat: heartbeat, done: make(chan struct{})}
}

// Close termina todos los streams abiertos; se llama antes de apagar el servidor.
func (h *AlertHandler) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Stream godoc
// @Summary      Alertas de stock en tiempo real
// @Description  Server-Sent Events. Evento "stock_alert" con el cuerpo de la alerta en JSON.
// @Description  EventSource no envía headers: el token puede ir en ?access_token=.
// @Tags         alerts
// @Security     Bearer
// @Produce      text/event-stream
// @Param        access_token  query  string  false  "JWT si no se envía Authorization"
// @Success      200
// @Router       /api/alerts/stream [get]
func (h *AlertHandler) Stream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	conn := c.Context().Conn()
	client := h.hub.Register()
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer h.hub.Unregister(client.ID)

		// El servidor fija un write deadline por respuesta; el stream vive hasta que el cliente se va.
		if err := conn.SetWriteDeadline(time.Time{}); err != nil {
			return
		}

		fmt.Fprintf(w, "event: connected\ndata: {\"client_id\":%q}\n\n", client.ID)
		if err := w.Flush(); err != nil {
			return
		}

		ticker := time.NewTicker(h.heartbeat)
		defer ticker.Stop()
		for {
			select {
			case <-h.done:
				return
			case ev, ok := <-client.Events:
				if !ok {
					return
				}
				if _, err := w.WriteString(ev.Format()); err != nil {
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": keepalive\n\n"); err != nil {
					return
				}
			}
			// un Flush fallido indica que el cliente se desconectó
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}
