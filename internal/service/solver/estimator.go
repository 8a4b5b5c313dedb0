package solver

import (
	"context"

	"github.com/cympfh/connect-four/internal/domain"
	"golang.org/x/sync/errgroup"
)

const DefaultTrials = 200

const ErrInvalidTrials domain.Error = "trial count must be positive"

// Estimator runs independent rollouts, optionally spread over several
// goroutines. Each worker owns a RandomSource drawn from Sources.
type Estimator struct {
	Workers int
	Sources SourceFactory
}

func NewEstimator(workers int, sources SourceFactory) *Estimator {
	if workers < 1 {
		workers = 1
	}
	if sources == nil {
		sources = CryptoSources()
	}
	return &Estimator{Workers: workers, Sources: sources}
}

// EstimateWinProbability returns the fraction of trials random playouts from
// b that are won by side. b itself is never modified.
func (e *Estimator) EstimateWinProbability(ctx context.Context, b *domain.Board, side domain.PlayerID, trials int) (float64, error) {
	if trials <= 0 {
		return 0, ErrInvalidTrials
	}

	workers := min(e.Workers, trials)
	if workers <= 1 {
		wins, err := rolloutBatch(ctx, b, side, trials, e.Sources())
		if err != nil {
			return 0, err
		}
		return float64(wins) / float64(trials), nil
	}

	// sources are taken in worker order so seeded runs stay reproducible
	sources := make([]RandomSource, workers)
	for i := range sources {
		sources[i] = e.Sources()
	}

	wins := make([]int, workers)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		n := trials / workers
		if i < trials%workers {
			n++
		}
		g.Go(func() error {
			w, err := rolloutBatch(gctx, b, side, n, sources[i])
			wins[i] = w
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, w := range wins {
		total += w
	}
	return float64(total) / float64(trials), nil
}

func rolloutBatch(ctx context.Context, b *domain.Board, side domain.PlayerID, n int, rnd RandomSource) (int, error) {
	wins := 0
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return wins, err
		}
		if Rollout(b.Clone(), rnd) == side {
			wins++
		}
	}
	return wins, nil
}
