package cleanup

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type AnalysisPruner interface {
	CleanupOldAnalyses(ctx context.Context, olderThanDays int) (int64, error)
}

type Worker struct {
	Repo          AnalysisPruner
	RetentionDays int
	Interval      time.Duration
}

func NewWorker(repo AnalysisPruner, retentionDays int) *Worker {
	return &Worker{Repo: repo, RetentionDays: retentionDays, Interval: time.Hour}
}

// Start prunes once right away and then every Interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	if w.RetentionDays <= 0 {
		log.Info().Str("component", "cleanup").Msg("analysis retention disabled")
		return
	}

	go func() {
		w.RunOnce(ctx)

		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.RunOnce(ctx)
			}
		}
	}()
	log.Info().Str("component", "cleanup").Int("retention_days", w.RetentionDays).Msg("background worker started")
}

func (w *Worker) RunOnce(ctx context.Context) int64 {
	deleted, err := w.Repo.CleanupOldAnalyses(ctx, w.RetentionDays)
	if err != nil {
		log.Error().Str("component", "cleanup").Err(err).Msg("failed to clean up analyses")
		return 0
	}
	if deleted > 0 {
		log.Info().Str("component", "cleanup").Int64("deleted", deleted).Msg("removed expired analyses")
	}
	return deleted
}
