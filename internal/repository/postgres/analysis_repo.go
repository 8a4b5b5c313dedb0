package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

var ErrAnalysisNotFound = errors.New("analysis not found")

type AnalysisRepo struct {
	DB *sql.DB
}

func NewAnalysisRepo(db *sql.DB) *AnalysisRepo {
	return &AnalysisRepo{DB: db}
}

// AnalysisRecord is one persisted solve request and its outcome.
type AnalysisRecord struct {
	ID               string          `json:"id"`
	BoardCode        string          `json:"boardCode"`
	Mover            string          `json:"mover"`
	ResultCode       string          `json:"resultCode"`
	Column           int             `json:"column"`
	ImmediateWin     bool            `json:"immediateWin"`
	Trials           int             `json:"trials"`
	CandidateColumns []int64         `json:"candidateColumns"`
	WorstCases       []float64       `json:"worstCases"`
	Candidates       json.RawMessage `json:"candidates,omitempty"`
	ElapsedMs        int64           `json:"elapsedMs"`
	ClientIP         string          `json:"clientIp"`
	CreatedAt        time.Time       `json:"createdAt"`
}

func (r *AnalysisRepo) SaveAnalysis(ctx context.Context, rec *AnalysisRecord) error {
	candidates := rec.Candidates
	if len(candidates) == 0 {
		candidates = json.RawMessage("[]")
	}

	query := `
	INSERT INTO analyses (id, board_code, mover, result_code, column_index, immediate_win, trials,
	                      candidate_columns, worst_cases, candidates, elapsed_ms, client_ip, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.DB.ExecContext(ctx, query,
		rec.ID, rec.BoardCode, rec.Mover, rec.ResultCode, rec.Column, rec.ImmediateWin, rec.Trials,
		pq.Array(rec.CandidateColumns), pq.Array(rec.WorstCases), []byte(candidates),
		rec.ElapsedMs, rec.ClientIP, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

// GetAnalysisByID returns the full record including the per-reply table.
func (r *AnalysisRepo) GetAnalysisByID(ctx context.Context, id string) (*AnalysisRecord, error) {
	query := `
	SELECT id, board_code, mover, result_code, column_index, immediate_win, trials,
	       candidate_columns, worst_cases, candidates, elapsed_ms, client_ip, created_at
	FROM analyses
	WHERE id = $1;
	`

	var rec AnalysisRecord
	var candidates []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rec.ID,
		&rec.BoardCode,
		&rec.Mover,
		&rec.ResultCode,
		&rec.Column,
		&rec.ImmediateWin,
		&rec.Trials,
		pq.Array(&rec.CandidateColumns),
		pq.Array(&rec.WorstCases),
		&candidates,
		&rec.ElapsedMs,
		&rec.ClientIP,
		&rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	rec.Candidates = candidates
	return &rec, nil
}

// ListRecentAnalyses returns the newest analyses without the reply table.
func (r *AnalysisRepo) ListRecentAnalyses(ctx context.Context, limit int) ([]AnalysisRecord, error) {
	query := `
	SELECT id, board_code, mover, result_code, column_index, immediate_win, trials,
	       candidate_columns, worst_cases, elapsed_ms, client_ip, created_at
	FROM analyses
	ORDER BY created_at DESC
	LIMIT $1;
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	records := []AnalysisRecord{}
	for rows.Next() {
		var rec AnalysisRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.BoardCode,
			&rec.Mover,
			&rec.ResultCode,
			&rec.Column,
			&rec.ImmediateWin,
			&rec.Trials,
			pq.Array(&rec.CandidateColumns),
			pq.Array(&rec.WorstCases),
			&rec.ElapsedMs,
			&rec.ClientIP,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CleanupOldAnalyses deletes analyses older than the given number of days.
func (r *AnalysisRepo) CleanupOldAnalyses(ctx context.Context, olderThanDays int) (int64, error) {
	query := `
	DELETE FROM analyses
	WHERE created_at < NOW() - INTERVAL '1 day' * $1;
	`
	result, err := r.DB.ExecContext(ctx, query, olderThanDays)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old analyses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}
