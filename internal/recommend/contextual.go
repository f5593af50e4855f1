package recommend

import (
	"context"

	"github.com/google/uuid"
)

const defaultContextualLimit = 20

// Contextual recommends the precomputed nearest neighbors of the course the
// user is currently looking at. Without a current course it yields nothing.
type Contextual struct {
	Similarities SimilarityStore
	Contents     ContentStore
	Limit        int
}

func (s *Contextual) Name() string { return StrategyContextual }

func (s *Contextual) Recommend(ctx context.Context, profile *Profile, req Request) ([]ScoredCandidate, error) {
	if s.Similarities == nil || req.CurrentCourseID == uuid.Nil {
		return nil, nil
	}

	limit := s.Limit
	if limit <= 0 {
		limit = defaultContextualLimit
	}

	neighbors, err := s.Similarities.ContentNeighbors(ctx, req.CurrentCourseID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]ScoredCandidate, 0, len(neighbors))
	for _, n := range neighbors {
		if n.ID == req.CurrentCourseID {
			continue
		}
		if req.ExcludeCompleted && profile != nil && profile.TakenCourses[n.ID] {
			continue
		}
		cand := ScoredCandidate{
			CourseID:        n.ID,
			Type:            StrategyContextual,
			ConfidenceScore: clamp01(n.Score),
			RelevanceScore:  clamp01(n.Score),
			Reasoning: Reasoning{
				Factors: []string{"similar_to_current"},
				Text:    "similar to the course you are viewing",
			},
		}
		if s.Contents != nil {
			if content, err := s.Contents.Get(ctx, n.ID); err == nil && content != nil {
				var profileTopics []string
				if profile != nil {
					profileTopics = profile.Topics
				}
				cand.PrimaryTopic = primaryTopic(profileTopics, content.Topics)
			}
		}
		out = append(out, cand)
	}
	return out, nil
}
