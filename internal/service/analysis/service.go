package analysis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cympfh/connect-four/internal/domain"
	"github.com/cympfh/connect-four/internal/repository/postgres"
	"github.com/cympfh/connect-four/internal/service/solver"
	"github.com/cympfh/connect-four/pkg/uid"
	"github.com/rs/zerolog/log"
)

type Repository interface {
	SaveAnalysis(ctx context.Context, rec *postgres.AnalysisRecord) error
}

type Options struct {
	Trials  int
	Workers int
	Sources solver.SourceFactory
	Timeout time.Duration
	Verbose bool
}

// Service runs solver searches for the transport layer and records them.
type Service struct {
	trials    int
	estimator *solver.Estimator
	timeout   time.Duration
	verbose   bool
	repo      Repository // nil when no database is configured
}

func NewService(opts Options, repo Repository) *Service {
	trials := opts.Trials
	if trials <= 0 {
		trials = solver.DefaultTrials
	}
	return &Service{
		trials:    trials,
		estimator: solver.NewEstimator(opts.Workers, opts.Sources),
		timeout:   opts.Timeout,
		verbose:   opts.Verbose,
		repo:      repo,
	}
}

// Result is a finished search together with the id it was stored under.
type Result struct {
	ID       string
	Board    *domain.Board
	Analysis *solver.Analysis
}

// Solve searches b. diag may be nil; probes are then only logged when the
// service runs in verbose mode.
func (s *Service) Solve(ctx context.Context, b *domain.Board, clientIP string, diag solver.Diagnostics) (*Result, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if diag == nil && s.verbose {
		diag = solver.LogDiagnostics{Logger: log.With().Str("component", "solver").Logger()}
	}
	sv := &solver.Solver{Trials: s.trials, Estimator: s.estimator, Diagnostics: diag}

	a, err := sv.Analyze(ctx, b)
	if err != nil {
		log.Info().Str("component", "solver").Str("board", b.Code()).Str("next", b.Next.String()).Err(err).Msg("no choice")
		return nil, err
	}

	res := &Result{ID: uid.GenerateAnalysisID(), Board: b, Analysis: a}
	log.Info().
		Str("component", "solver").
		Str("id", res.ID).
		Str("board", b.Code()).
		Str("next", b.Next.String()).
		Int("column", a.Column).
		Bool("immediate_win", a.ImmediateWin).
		Dur("elapsed", a.Elapsed).
		Msg("move selected")

	if s.repo != nil {
		// history is best effort
		if err := s.repo.SaveAnalysis(context.WithoutCancel(ctx), NewRecord(res, clientIP)); err != nil {
			log.Error().Str("component", "solver").Str("id", res.ID).Err(err).Msg("failed to save analysis")
		}
	}
	return res, nil
}

func NewRecord(res *Result, clientIP string) *postgres.AnalysisRecord {
	a := res.Analysis
	rec := &postgres.AnalysisRecord{
		ID:           res.ID,
		BoardCode:    res.Board.Code(),
		Mover:        a.Mover.String(),
		ResultCode:   a.Result.Code(),
		Column:       a.Column,
		ImmediateWin: a.ImmediateWin,
		Trials:       a.Trials,
		ElapsedMs:    a.Elapsed.Milliseconds(),
		ClientIP:     clientIP,
		CreatedAt:    time.Now().UTC(),
	}
	for _, c := range a.Candidates {
		rec.CandidateColumns = append(rec.CandidateColumns, int64(c.Column))
		rec.WorstCases = append(rec.WorstCases, c.WorstCase)
	}
	if data, err := json.Marshal(a.Candidates); err == nil {
		rec.Candidates = data
	}
	return rec
}
