package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *sql.DB and the redis rate limiter.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	Deps map[string]Pinger
}

func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{Deps: deps}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"status": "ok"}
	for name, dep := range h.Deps {
		if dep == nil {
			status[name] = "disabled"
			continue
		}
		if err := dep.PingContext(ctx); err != nil {
			status[name] = "down"
			continue
		}
		status[name] = "up"
	}

	c.JSON(http.StatusOK, status)
}
