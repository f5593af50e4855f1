package jobs

import (
	"context"
	"time"
)

const (
	profileRefreshInterval = time.Hour
	similarityInterval     = 6 * time.Hour
	modelTrainingInterval  = 24 * time.Hour
	expirySweepInterval    = 24 * time.Hour
)

// Start launches the background tickers and blocks until ctx is cancelled.
// Callers run it in its own goroutine.
func (r *Runner) Start(ctx context.Context) {
	profileTicker := time.NewTicker(profileRefreshInterval)
	similarityTicker := time.NewTicker(similarityInterval)
	trainingTicker := time.NewTicker(modelTrainingInterval)
	sweepTicker := time.NewTicker(expirySweepInterval)
	defer profileTicker.Stop()
	defer similarityTicker.Stop()
	defer trainingTicker.Stop()
	defer sweepTicker.Stop()

	r.Log.Info("job scheduler started")
	for {
		select {
		case <-ctx.Done():
			r.Log.Info("job scheduler stopped")
			return
		case <-profileTicker.C:
			r.RunProfileRefresh(ctx)
		case <-similarityTicker.C:
			r.RunSimilarityRecompute(ctx)
		case <-trainingTicker.C:
			r.RunModelTraining(ctx)
		case <-sweepTicker.C:
			r.RunExpirySweep(ctx)
		}
	}
}
