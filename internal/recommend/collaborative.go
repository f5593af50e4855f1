package recommend

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

const (
	defaultMinSimilarity = 0.3
	defaultMaxNeighbors  = 50
)

// Collaborative recommends what similar users engaged with. Neighbors come
// from the precomputed user-similarity table; when no rows exist the strategy
// falls back to on-the-fly cosine similarity over sparse feature vectors.
type Collaborative struct {
	Similarities SimilarityStore
	Interactions InteractionStore

	MinSimilarity float64 // default 0.3
	MaxNeighbors  int     // default 50
}

func (s *Collaborative) Name() string { return StrategyCollaborative }

func (s *Collaborative) Recommend(ctx context.Context, profile *Profile, req Request) ([]ScoredCandidate, error) {
	if s.Similarities == nil || s.Interactions == nil || profile == nil {
		return nil, nil
	}

	minSim := s.MinSimilarity
	if minSim <= 0 {
		minSim = defaultMinSimilarity
	}
	maxNeighbors := s.MaxNeighbors
	if maxNeighbors <= 0 {
		maxNeighbors = defaultMaxNeighbors
	}

	neighbors, err := s.Similarities.UserNeighbors(ctx, profile.UserID, minSim)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		neighbors, err = s.fallbackNeighbors(ctx, profile, minSim, maxNeighbors)
		if err != nil {
			return nil, err
		}
	}
	if len(neighbors) > maxNeighbors {
		neighbors = neighbors[:maxNeighbors]
	}
	if len(neighbors) == 0 {
		return nil, nil
	}

	scores := make(map[uuid.UUID]float64)
	for _, n := range neighbors {
		courses, err := s.Interactions.PositiveCourses(ctx, n.ID)
		if err != nil {
			continue
		}
		for courseID, engagement := range courses {
			if profile.TakenCourses[courseID] {
				continue
			}
			scores[courseID] += n.Score * engagement
		}
	}

	out := make([]ScoredCandidate, 0, len(scores))
	for courseID, sum := range scores {
		avg := clamp01(sum / float64(len(neighbors)))
		out = append(out, ScoredCandidate{
			CourseID:        courseID,
			Type:            StrategyCollaborative,
			ConfidenceScore: avg,
			RelevanceScore:  avg,
			Reasoning: Reasoning{
				Factors: []string{"similar_learners"},
				Text:    "learners with a similar history engaged with this course",
			},
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RelevanceScore != out[j].RelevanceScore {
			return out[i].RelevanceScore > out[j].RelevanceScore
		}
		return out[i].CourseID.String() < out[j].CourseID.String()
	})
	return out, nil
}

func (s *Collaborative) fallbackNeighbors(ctx context.Context, profile *Profile, minSim float64, limit int) ([]Neighbor, error) {
	target, err := s.Interactions.UserVector(ctx, profile.UserID)
	if err != nil || len(target) == 0 {
		return nil, err
	}
	candidates, err := s.Interactions.UserVectors(ctx, profile.OrganizationID, 0)
	if err != nil {
		return nil, err
	}

	neighbors := make([]Neighbor, 0, len(candidates))
	for userID, vec := range candidates {
		if userID == profile.UserID {
			continue
		}
		sim := Cosine(target, vec)
		if sim >= minSim {
			neighbors = append(neighbors, Neighbor{ID: userID, Score: sim})
		}
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Score != neighbors[j].Score {
			return neighbors[i].Score > neighbors[j].Score
		}
		return neighbors[i].ID.String() < neighbors[j].ID.String()
	})
	if len(neighbors) > limit {
		neighbors = neighbors[:limit]
	}
	return neighbors, nil
}
