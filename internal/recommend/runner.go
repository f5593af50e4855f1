package recommend

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/brightpath/brightpath-backend/internal/logger"
)

// Runner executes a set of strategies concurrently and collects their
// candidate lists. A failing strategy contributes nothing; it never fails the
// whole request. The combiner only runs after every strategy has returned.
type Runner struct {
	Strategies    []Strategy
	Log           *logger.Logger
	MaxConcurrent int // 0 means unbounded
}

func (r *Runner) Run(ctx context.Context, profile *Profile, req Request) [][]ScoredCandidate {
	if len(r.Strategies) == 0 {
		return nil
	}

	var mu sync.Mutex
	lists := make([][]ScoredCandidate, 0, len(r.Strategies))

	eg, egCtx := errgroup.WithContext(ctx)
	if r.MaxConcurrent > 0 {
		eg.SetLimit(r.MaxConcurrent)
	}

	for _, strategy := range r.Strategies {
		s := strategy
		eg.Go(func() error {
			cands, err := s.Recommend(egCtx, profile, req)
			if err != nil {
				if r.Log != nil {
					r.Log.Warn("strategy failed, skipping", "strategy", s.Name(), "error", err)
				}
				return nil
			}
			if len(cands) == 0 {
				return nil
			}
			mu.Lock()
			lists = append(lists, cands)
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()
	return lists
}
