package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/cympfh/connect-four/internal/repository/postgres"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AnalysisReader interface {
	ListRecentAnalyses(ctx context.Context, limit int) ([]postgres.AnalysisRecord, error)
	GetAnalysisByID(ctx context.Context, id string) (*postgres.AnalysisRecord, error)
}

type AnalysisHandler struct {
	Repo AnalysisReader
}

func NewAnalysisHandler(repo AnalysisReader) *AnalysisHandler {
	return &AnalysisHandler{Repo: repo}
}

const maxListLimit = 100

// List returns the newest analyses, ?limit=N (default 20, max 100).
func (h *AnalysisHandler) List(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = min(n, maxListLimit)
	}

	records, err := h.Repo.ListRecentAnalyses(c.Request.Context(), limit)
	if err != nil {
		log.Error().Str("component", "analyses").Err(err).Msg("failed to list analyses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analyses"})
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *AnalysisHandler) Get(c *gin.Context) {
	rec, err := h.Repo.GetAnalysisByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, postgres.ErrAnalysisNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return
	}
	if err != nil {
		log.Error().Str("component", "analyses").Err(err).Msg("failed to get analysis")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analysis"})
		return
	}

	c.JSON(http.StatusOK, rec)
}
