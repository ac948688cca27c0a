// Package ws is the websocket transport adapter: it upgrades HTTP
// connections, owns the per-connection pumps, and dispatches inbound
// events to the orchestrator.
package ws

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/animolab/animolab/internal/app"
	"github.com/animolab/animolab/internal/config"
	"github.com/animolab/animolab/internal/core"
	"github.com/animolab/animolab/pkg/metrics"
)

var ErrBackpressure = errors.New("backpressure")

type Controller struct {
	orch      *app.Orchestrator
	cfg       *config.Config
	refreshes *RefreshLimiter
}

func NewController(orch *app.Orchestrator, cfg *config.Config) *Controller {
	return &Controller{
		orch:      orch,
		cfg:       cfg,
		refreshes: NewRefreshLimiter(refreshLimit, refreshWindow),
	}
}

type wsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the request and runs the connection lifecycle. The
// connection id is minted here, one per upgrade, and is unrelated to
// the session cookie: the same user may hold several connections.
func (ctl *Controller) Handle(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("ws upgrade")
		return
	}

	id := core.ConnID(uuid.NewString())
	conn := &wsConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}
	log.Info().Str("module", "adapters.ws").Str("conn", string(id)).Msg("new WS connection")

	ws.SetReadLimit(ctl.cfg.ReadLimit)

	ctx, cancel := context.WithCancel(ctx)
	ctl.orch.OnConnect(id, conn)
	metrics.ConnectionsActive.Inc()

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, id, conn)
}

func (ctl *Controller) writeDeadline() time.Time {
	return time.Now().Add(5 * time.Second)
}
