package recommend

import (
	"context"
	"time"
)

const (
	trendingWindow       = 7 * 24 * time.Hour
	trendingConfidence   = 0.6
	trendingRelevance    = 0.5
	defaultTrendingLimit = 20
)

// Trending surfaces the most-enrolled courses of the last seven days. It is
// unpersonalized beyond excluding what the user already took.
type Trending struct {
	Counts TrendingStore
	Limit  int
}

func (s *Trending) Name() string { return StrategyTrending }

func (s *Trending) Recommend(ctx context.Context, profile *Profile, req Request) ([]ScoredCandidate, error) {
	if s.Counts == nil || profile == nil {
		return nil, nil
	}

	limit := s.Limit
	if limit <= 0 {
		limit = defaultTrendingLimit
	}

	since := time.Now().Add(-trendingWindow)
	counts, err := s.Counts.EnrollmentCounts(ctx, profile.OrganizationID, since, limit)
	if err != nil {
		return nil, err
	}

	out := make([]ScoredCandidate, 0, len(counts))
	for _, c := range counts {
		if req.ExcludeCompleted && profile.TakenCourses[c.CourseID] {
			continue
		}
		out = append(out, ScoredCandidate{
			CourseID:        c.CourseID,
			Type:            StrategyTrending,
			ConfidenceScore: trendingConfidence,
			RelevanceScore:  trendingRelevance,
			Reasoning: Reasoning{
				Factors: []string{"trending"},
				Text:    "popular with learners this week",
			},
		})
	}
	return out, nil
}
