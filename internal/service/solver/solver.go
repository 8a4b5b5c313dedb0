package solver

import (
	"context"
	"time"

	"github.com/cympfh/connect-four/internal/domain"
)

type Options struct {
	Trials      int
	Workers     int
	Sources     SourceFactory
	Diagnostics Diagnostics // nil disables verbose output
}

// Solver recommends a move one ply deep, scoring every opponent reply by
// Monte Carlo playouts and assuming the opponent picks the worst one for us.
type Solver struct {
	Trials      int
	Estimator   *Estimator
	Diagnostics Diagnostics
}

func New(opts Options) *Solver {
	trials := opts.Trials
	if trials <= 0 {
		trials = DefaultTrials
	}
	return &Solver{
		Trials:      trials,
		Estimator:   NewEstimator(opts.Workers, opts.Sources),
		Diagnostics: opts.Diagnostics,
	}
}

type Reply struct {
	Column      int     `json:"column"`
	Probability float64 `json:"probability"`
}

type Candidate struct {
	Column    int     `json:"column"`
	WorstCase float64 `json:"worstCase"`
	Replies   []Reply `json:"replies"`
}

// Analysis is the full record of one search.
type Analysis struct {
	Mover        domain.PlayerID
	Column       int
	Result       *domain.Board
	ImmediateWin bool
	Candidates   []Candidate
	Trials       int
	Elapsed      time.Duration
}

// Solve returns the board after the recommended move.
func (s *Solver) Solve(ctx context.Context, b *domain.Board) (*domain.Board, error) {
	a, err := s.Analyze(ctx, b)
	if err != nil {
		return nil, err
	}
	return a.Result, nil
}

// Analyze runs the search and keeps the per-move statistics.
func (s *Solver) Analyze(ctx context.Context, b *domain.Board) (*Analysis, error) {
	if domain.Judge(b) != domain.Empty {
		return nil, domain.ErrGameAlreadyDecided
	}

	start := time.Now()
	a, err := s.playWise(ctx, b)
	if err != nil {
		return nil, err
	}
	a.Elapsed = time.Since(start)
	return a, nil
}

func (s *Solver) playWise(ctx context.Context, b *domain.Board) (*Analysis, error) {
	mover := b.Next
	a := &Analysis{Mover: mover, Column: -1, Trials: s.Trials}
	// only a positive worst case selects a move
	bestWorst := 0.0

	for _, m1 := range b.LegalMoves() {
		g, err := b.Play(m1)
		if err != nil {
			return nil, err
		}

		if domain.Judge(g) == mover {
			s.report(Probe{Board: g, Label: LabelWinSoon, Probability: 1, Candidate: m1, Reply: -1})
			a.Column = m1
			a.Result = g
			a.ImmediateWin = true
			a.Candidates = append(a.Candidates, Candidate{Column: m1, WorstCase: 1})
			return a, nil
		}

		// a move that fills the board leaves no reply and keeps 1.0
		c := Candidate{Column: m1, WorstCase: 1}
		for _, m2 := range g.LegalMoves() {
			h, err := g.Play(m2)
			if err != nil {
				return nil, err
			}

			p, err := s.Estimator.EstimateWinProbability(ctx, h, mover, s.Trials)
			if err != nil {
				return nil, err
			}
			s.report(Probe{Board: h, Label: LabelProbToWin, Probability: p, Candidate: m1, Reply: m2})

			c.Replies = append(c.Replies, Reply{Column: m2, Probability: p})
			c.WorstCase = min(c.WorstCase, p)
		}
		a.Candidates = append(a.Candidates, c)

		if c.WorstCase > bestWorst {
			bestWorst = c.WorstCase
			a.Column = m1
			a.Result = g
		}
	}

	if a.Result == nil {
		return nil, domain.ErrNoLegalMove
	}
	return a, nil
}

func (s *Solver) report(p Probe) {
	if s.Diagnostics != nil {
		s.Diagnostics.Report(p)
	}
}
