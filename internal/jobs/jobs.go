package jobs

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/repos"
	"github.com/brightpath/brightpath-backend/internal/services"
)

const (
	profileStaleAfter   = 24 * time.Hour
	profileRefreshBatch = 100
	similarityBatch     = 500
)

// Runner owns the scheduled maintenance work. Each job is an exported,
// idempotent entry point guarded by its own try-lock: an invocation that
// overlaps a still-running one skips instead of stacking. Failures are
// logged, never escalated.
type Runner struct {
	Profiles        services.ProfileService
	Analysis        services.ContentAnalysisService
	Recommendations services.RecommendationService
	Models          repos.ModelRepo
	RecommendRows   repos.RecommendationRepo
	ProfileRows     repos.ProfileRepo
	Users           repos.UserRepo
	Log             *logger.Logger

	profileRefreshBusy      atomic.Bool
	similarityRecomputeBusy atomic.Bool
	modelTrainingBusy       atomic.Bool
	expirySweepBusy         atomic.Bool
}

// RunProfileRefresh re-synthesizes profiles for users whose row is missing or
// older than 24 hours, in batches of 100 per organization.
func (r *Runner) RunProfileRefresh(ctx context.Context) {
	if !r.profileRefreshBusy.CompareAndSwap(false, true) {
		r.Log.Info("profile refresh already running, skipping")
		return
	}
	defer r.profileRefreshBusy.Store(false)

	orgIDs, err := r.Users.DistinctOrganizationIDs(ctx, nil)
	if err != nil {
		r.Log.Error("profile refresh: listing organizations failed", "error", err)
		return
	}

	cutoff := time.Now().Add(-profileStaleAfter)
	var refreshed int
	for _, orgID := range orgIDs {
		userIDs, err := r.ProfileRows.ListUserIDsNeedingRefresh(ctx, nil, orgID, cutoff, profileRefreshBatch)
		if err != nil {
			r.Log.Error("profile refresh: listing stale users failed", "org_id", orgID, "error", err)
			continue
		}
		for _, userID := range userIDs {
			if _, err := r.Profiles.Refresh(ctx, userID, orgID); err != nil {
				r.Log.Error("profile refresh: user failed", "user_id", userID, "error", err)
				continue
			}
			refreshed++
		}
	}
	r.Log.Info("profile refresh done", "refreshed", refreshed)
}

// RunSimilarityRecompute rebuilds content similarity pairs over up to 500
// published courses per organization.
func (r *Runner) RunSimilarityRecompute(ctx context.Context) {
	if !r.similarityRecomputeBusy.CompareAndSwap(false, true) {
		r.Log.Info("similarity recompute already running, skipping")
		return
	}
	defer r.similarityRecomputeBusy.Store(false)

	orgIDs, err := r.Users.DistinctOrganizationIDs(ctx, nil)
	if err != nil {
		r.Log.Error("similarity recompute: listing organizations failed", "error", err)
		return
	}

	var pairs int
	for _, orgID := range orgIDs {
		written, err := r.Analysis.RecomputeSimilarities(ctx, orgID, similarityBatch)
		if err != nil {
			r.Log.Error("similarity recompute failed", "org_id", orgID, "error", err)
			continue
		}
		pairs += written
	}
	r.Log.Info("similarity recompute done", "pairs", pairs)
}

// RunModelTraining retrains every active model. Matrix factorization does real
// work; other model types only stamp counters.
func (r *Runner) RunModelTraining(ctx context.Context) {
	if !r.modelTrainingBusy.CompareAndSwap(false, true) {
		r.Log.Info("model training already running, skipping")
		return
	}
	defer r.modelTrainingBusy.Store(false)

	models, err := r.Models.ListActive(ctx, nil, uuid.Nil)
	if err != nil {
		r.Log.Error("model training: listing active models failed", "error", err)
		return
	}
	for _, model := range models {
		if _, err := r.Recommendations.TrainMatrixFactorization(ctx, model.OrganizationID, model.ID); err != nil {
			r.Log.Error("model training failed", "model_id", model.ID, "error", err)
		}
	}
	r.Log.Info("model training done", "models", len(models))
}

// RunExpirySweep flips past-due active recommendations to expired.
func (r *Runner) RunExpirySweep(ctx context.Context) {
	if !r.expirySweepBusy.CompareAndSwap(false, true) {
		r.Log.Info("expiry sweep already running, skipping")
		return
	}
	defer r.expirySweepBusy.Store(false)

	expired, err := r.RecommendRows.ExpireDue(ctx, nil, time.Now())
	if err != nil {
		r.Log.Error("expiry sweep failed", "error", err)
		return
	}
	r.Log.Info("expiry sweep done", "expired", expired)
}
