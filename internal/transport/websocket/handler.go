package websocket

import (
	"context"
	"net/http"
	"time"

	"github.com/cympfh/connect-four/internal/service/solver"
	transportHttp "github.com/cympfh/connect-four/internal/transport/http"
	"github.com/cympfh/connect-four/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	readWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

type ClientMessage struct {
	Board []string `json:"board"`
	Next  string   `json:"next"`
}

type ServerMessage struct {
	Type        string                       `json:"type"` // "probe", "result" or "error"
	Board       []string                     `json:"board,omitempty"`
	Label       string                       `json:"label,omitempty"`
	Candidate   int                          `json:"candidate"`
	Reply       int                          `json:"reply"`
	Probability float64                      `json:"probability"`
	Result      *transportHttp.SolveResponse `json:"result,omitempty"`
	Error       string                       `json:"error,omitempty"`
}

// Handler streams every evaluated reply board while a search runs. Each
// request on the socket counts against Limiter like an HTTP solve.
type Handler struct {
	Service  transportHttp.SolveService
	Limiter  middleware.Limiter // nil disables limiting
	Upgrader websocket.Upgrader
}

func NewHandler(svc transportHttp.SolveService, limiter middleware.Limiter, allowedOrigins []string) *Handler {
	return &Handler{
		Service: svc,
		Limiter: limiter,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == origin {
						return true
					}
				}
				return false
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades the connection and serves solve requests on it
// one at a time until the client goes away.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Str("component", "ws").Err(err).Msg("upgrade error")
		return
	}
	defer conn.Close()

	h.handleConnection(c.Request.Context(), conn, c.ClientIP())
}

func (h *Handler) handleConnection(ctx context.Context, conn *websocket.Conn, clientIP string) {
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readWait))
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s := &stream{conn: conn, cancel: cancel}

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	for {
		conn.SetReadDeadline(time.Now().Add(readWait))
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Str("component", "ws").Err(err).Msg("read error")
			}
			return
		}

		if !h.allow(ctx, clientIP) {
			s.send(ServerMessage{Type: "error", Error: "Too many requests"})
			continue
		}

		board, err := transportHttp.ParseSolveRequest(transportHttp.SolveRequest{Board: msg.Board, Next: msg.Next})
		if err != nil {
			s.send(ServerMessage{Type: "error", Error: err.Error()})
			continue
		}

		res, err := h.Service.Solve(ctx, board, clientIP, s)
		if err != nil {
			_, body := transportHttp.ErrorResponse(err)
			errMsg, _ := body["error"].(string)
			s.send(ServerMessage{Type: "error", Error: errMsg})
			if ctx.Err() != nil {
				return
			}
			continue
		}

		resp := transportHttp.NewSolveResponse(res)
		s.send(ServerMessage{Type: "result", Result: &resp})
	}
}

func (h *Handler) allow(ctx context.Context, clientIP string) bool {
	if h.Limiter == nil {
		return true
	}
	ok, err := h.Limiter.Allow(ctx, clientIP)
	if err != nil {
		log.Warn().Str("component", "ws").Err(err).Msg("limiter unavailable, allowing request")
		return true
	}
	return ok
}

// stream forwards probes to the socket. A failed write cancels the search.
type stream struct {
	conn   *websocket.Conn
	cancel context.CancelFunc
}

func (s *stream) Report(p solver.Probe) {
	s.send(ServerMessage{
		Type:        "probe",
		Board:       p.Board.Rows(),
		Label:       p.Label,
		Candidate:   p.Candidate,
		Reply:       p.Reply,
		Probability: p.Probability,
	})
}

func (s *stream) send(msg ServerMessage) {
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(msg); err != nil {
		log.Debug().Str("component", "ws").Err(err).Msg("write failed")
		s.cancel()
	}
}
