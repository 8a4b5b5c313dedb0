package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/cympfh/connect-four/internal/domain"
	"github.com/cympfh/connect-four/internal/service/analysis"
	"github.com/cympfh/connect-four/internal/service/solver"
	"github.com/gin-gonic/gin"
)

type SolveService interface {
	Solve(ctx context.Context, b *domain.Board, clientIP string, diag solver.Diagnostics) (*analysis.Result, error)
}

type SolveHandler struct {
	Service SolveService
}

func NewSolveHandler(svc SolveService) *SolveHandler {
	return &SolveHandler{Service: svc}
}

type SolveRequest struct {
	Board []string `json:"board" binding:"required"`
	Next  string   `json:"next" binding:"required"`
}

type SolveResponse struct {
	ID           string             `json:"id"`
	Board        []string           `json:"board"`
	Code         string             `json:"code"`
	Column       int                `json:"column"`
	Next         string             `json:"next"`
	Winner       string             `json:"winner"`
	ImmediateWin bool               `json:"immediateWin"`
	Trials       int                `json:"trials"`
	Candidates   []solver.Candidate `json:"candidates"`
	ElapsedMs    int64              `json:"elapsedMs"`
}

func NewSolveResponse(res *analysis.Result) SolveResponse {
	a := res.Analysis
	return SolveResponse{
		ID:           res.ID,
		Board:        a.Result.Rows(),
		Code:         a.Result.Code(),
		Column:       a.Column,
		Next:         a.Result.Next.String(),
		Winner:       domain.Judge(a.Result).String(),
		ImmediateWin: a.ImmediateWin,
		Trials:       a.Trials,
		Candidates:   a.Candidates,
		ElapsedMs:    a.Elapsed.Milliseconds(),
	}
}

// SolveByCode serves the web client form: GET /api/solve/:game/:next where
// game is the rows joined by ';'.
func (h *SolveHandler) SolveByCode(c *gin.Context) {
	next, err := domain.ParsePlayer(c.Param("next"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := domain.ParseGameCode(c.Param("game"), next)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.solve(c, board)
}

// Solve accepts {"board": [...rows], "next": "o"}.
func (h *SolveHandler) Solve(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	board, err := ParseSolveRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.solve(c, board)
}

func ParseSolveRequest(req SolveRequest) (*domain.Board, error) {
	next, err := domain.ParsePlayer(req.Next)
	if err != nil {
		return nil, err
	}
	return domain.ParseRows(req.Board, next)
}

func (h *SolveHandler) solve(c *gin.Context, board *domain.Board) {
	res, err := h.Service.Solve(c.Request.Context(), board, c.ClientIP(), nil)
	if err != nil {
		status, body := ErrorResponse(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, NewSolveResponse(res))
}

// ErrorResponse maps a solve failure to an HTTP status and JSON body.
func ErrorResponse(err error) (int, gin.H) {
	switch {
	case errors.Is(err, domain.ErrGameAlreadyDecided), errors.Is(err, domain.ErrNoLegalMove):
		return http.StatusUnprocessableEntity, gin.H{"error": "No choice", "reason": err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, gin.H{"error": "Search timed out"}
	case errors.Is(err, context.Canceled):
		return 499, gin.H{"error": "Request cancelled"}
	default:
		var domainErr domain.Error
		if errors.As(err, &domainErr) {
			return http.StatusBadRequest, gin.H{"error": domainErr.Error()}
		}
		return http.StatusInternalServerError, gin.H{"error": "Internal server error"}
	}
}
