package chat

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Salonii101/TalkSphere/internal/app"
	"github.com/Salonii101/TalkSphere/internal/config"
	"github.com/Salonii101/TalkSphere/internal/core"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrClosed       = errors.New("connection closed")
)

// Controller owns the websocket side of the relay: the upgrade, the
// read/write pumps and the non-blocking connection handed to the core.
type Controller struct {
	broker *app.Broker
	cfg    *config.Config
}

func NewController(broker *app.Broker, cfg *config.Config) *Controller {
	return &Controller{broker: broker, cfg: cfg}
}

type wsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

// TrySend queues a frame without blocking. A full buffer means this
// one delivery is dropped; the transport never queues beyond the
// channel or retries.
func (c *wsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
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

// HandleWS upgrades the request and runs the session until the
// connection dies.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	token := c.GetString("client_token")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "chat").Msg("ws upgrade")
		return
	}

	conn := &wsConn{
		conn: ws,
		send: make(chan core.Frame, ctl.cfg.SendBuffer),
	}
	// Session identity is per connection, never the cookie token: two
	// tabs of one browser (or a reconnect racing the old socket) are
	// distinct room members with independent lifecycles.
	sess := core.NewSession("", conn)
	log.Info().Str("module", "chat").Str("ct", token).Str("sid", string(sess.ID())).Msg("new WS connection")

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, sess, conn)
}
