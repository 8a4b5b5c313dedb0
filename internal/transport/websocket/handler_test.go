package websocket

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cympfh/connect-four/internal/service/analysis"
	"github.com/cympfh/connect-four/internal/service/solver"
	"github.com/cympfh/connect-four/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

type countingLimiter struct {
	mu    sync.Mutex
	limit int
	hits  int
}

func (l *countingLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hits++
	return l.hits <= l.limit, nil
}

func dial(t *testing.T) *websocket.Conn {
	t.Helper()
	return dialWithLimiter(t, nil)
}

func dialWithLimiter(t *testing.T, limiter middleware.Limiter) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := analysis.NewService(analysis.Options{Trials: 50, Workers: 2, Sources: solver.SeededSources(3)}, nil)
	h := NewHandler(svc, limiter, []string{"http://localhost:5173"})

	router := gin.New()
	router.GET("/ws/solve", h.HandleWebSocket)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/solve"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	var msg ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestStreamsProbesThenResult(t *testing.T) {
	conn := dial(t)

	require.NoError(t, conn.WriteJSON(ClientMessage{Board: []string{"....", "....", "....", "...."}, Next: "o"}))

	probes := 0
	for {
		msg := readMessage(t, conn)
		if msg.Type == "probe" {
			probes++
			require.Equal(t, solver.LabelProbToWin, msg.Label)
			require.Len(t, msg.Board, 4)
			continue
		}
		require.Equal(t, "result", msg.Type)
		require.NotNil(t, msg.Result)
		require.Equal(t, "x", msg.Result.Next)
		break
	}
	require.Equal(t, 16, probes)
}

func TestImmediateWinProbe(t *testing.T) {
	conn := dial(t)

	require.NoError(t, conn.WriteJSON(ClientMessage{Board: []string{"....", "o...", "o...", "o..."}, Next: "o"}))

	msg := readMessage(t, conn)
	require.Equal(t, "probe", msg.Type)
	require.Equal(t, solver.LabelWinSoon, msg.Label)
	require.Equal(t, -1, msg.Reply)

	msg = readMessage(t, conn)
	require.Equal(t, "result", msg.Type)
	require.Equal(t, 0, msg.Result.Column)
	require.Equal(t, "o", msg.Result.Winner)
}

func TestErrorsKeepConnectionOpen(t *testing.T) {
	conn := dial(t)

	require.NoError(t, conn.WriteJSON(ClientMessage{Board: []string{"..."}, Next: "o"}))
	msg := readMessage(t, conn)
	require.Equal(t, "error", msg.Type)
	require.NotEmpty(t, msg.Error)

	require.NoError(t, conn.WriteJSON(ClientMessage{Board: []string{"oxox", "oxox", "xoxo", "xoxo"}, Next: "o"}))
	msg = readMessage(t, conn)
	require.Equal(t, "error", msg.Type)
	require.Equal(t, "No choice", msg.Error)
}

func TestRejectsForeignOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, nil, []string{"http://localhost:5173"})

	router := gin.New()
	router.GET("/ws/solve", h.HandleWebSocket)
	srv := httptest.NewServer(router)
	defer srv.Close()

	header := map[string][]string{"Origin": {"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/solve", header)
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, 403, resp.StatusCode)
}

func TestEveryRequestIsRateLimited(t *testing.T) {
	limiter := &countingLimiter{limit: 1}
	conn := dialWithLimiter(t, limiter)
	win := ClientMessage{Board: []string{"....", "o...", "o...", "o..."}, Next: "o"}

	require.NoError(t, conn.WriteJSON(win))
	require.Equal(t, "probe", readMessage(t, conn).Type)
	require.Equal(t, "result", readMessage(t, conn).Type)

	require.NoError(t, conn.WriteJSON(win))
	msg := readMessage(t, conn)
	require.Equal(t, "error", msg.Type)
	require.Equal(t, "Too many requests", msg.Error)
	require.Nil(t, msg.Result)
}
