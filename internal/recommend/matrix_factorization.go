package recommend

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"
)

const (
	defaultMFRank       = 10
	defaultMFIterations = 100
	defaultMFLearnRate  = 0.01
	defaultMFRegular    = 0.01
)

// ProgressCell is one observed user x course interaction value (completion
// progress in [0,1]).
type ProgressCell struct {
	UserID   uuid.UUID
	CourseID uuid.UUID
	Value    float64
}

// MFTrainer factors the interaction matrix into latent user and item vectors
// with plain stochastic gradient descent: fixed iteration count, fixed
// hyperparameters, no convergence check. It runs synchronously for its full
// duration.
type MFTrainer struct {
	Rank           int     // latent dimensions, default 10
	Iterations     int     // SGD passes over the observed cells, default 100
	LearningRate   float64 // default 0.01
	Regularization float64 // L2, default 0.01
	Seed           int64   // deterministic init; 0 means seed 1
}

type MFModel struct {
	Rank        int
	UserVectors map[uuid.UUID][]float64
	ItemVectors map[uuid.UUID][]float64
}

func (t *MFTrainer) Fit(cells []ProgressCell) *MFModel {
	rank := t.Rank
	if rank <= 0 {
		rank = defaultMFRank
	}
	iterations := t.Iterations
	if iterations <= 0 {
		iterations = defaultMFIterations
	}
	lr := t.LearningRate
	if lr <= 0 {
		lr = defaultMFLearnRate
	}
	reg := t.Regularization
	if reg <= 0 {
		reg = defaultMFRegular
	}
	seed := t.Seed
	if seed == 0 {
		seed = 1
	}

	model := &MFModel{
		Rank:        rank,
		UserVectors: make(map[uuid.UUID][]float64),
		ItemVectors: make(map[uuid.UUID][]float64),
	}
	if len(cells) == 0 {
		return model
	}

	rng := rand.New(rand.NewSource(seed))
	for _, cell := range cells {
		if _, ok := model.UserVectors[cell.UserID]; !ok {
			model.UserVectors[cell.UserID] = randomVector(rng, rank)
		}
		if _, ok := model.ItemVectors[cell.CourseID]; !ok {
			model.ItemVectors[cell.CourseID] = randomVector(rng, rank)
		}
	}

	for iter := 0; iter < iterations; iter++ {
		for _, cell := range cells {
			u := model.UserVectors[cell.UserID]
			v := model.ItemVectors[cell.CourseID]
			err := cell.Value - dot(u, v)
			for k := 0; k < rank; k++ {
				uk, vk := u[k], v[k]
				u[k] += lr * (err*vk - reg*uk)
				v[k] += lr * (err*uk - reg*vk)
			}
		}
	}
	return model
}

// randomVector draws components uniformly from [0, 0.5). The scale matters:
// the fixed 100-iteration budget only closes the gap to the observed values
// when the initial dot products are not vanishingly small.
func randomVector(rng *rand.Rand, rank int) []float64 {
	v := make([]float64, rank)
	for i := range v {
		v[i] = rng.Float64() * 0.5
	}
	return v
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Predict returns the latent-factor score for a user/course pair, false when
// either side was never seen in training.
func (m *MFModel) Predict(userID, courseID uuid.UUID) (float64, bool) {
	u, ok := m.UserVectors[userID]
	if !ok {
		return 0, false
	}
	v, ok := m.ItemVectors[courseID]
	if !ok {
		return 0, false
	}
	return dot(u, v), true
}

// Recommend scores every trained course the user has not seen and returns the
// top k as candidates.
func (m *MFModel) Recommend(userID uuid.UUID, seen map[uuid.UUID]bool, k int) []ScoredCandidate {
	u, ok := m.UserVectors[userID]
	if !ok {
		return nil
	}
	if k <= 0 {
		k = defaultMaxRecommendations
	}

	out := make([]ScoredCandidate, 0, len(m.ItemVectors))
	for courseID, v := range m.ItemVectors {
		if seen[courseID] {
			continue
		}
		score := clamp01(dot(u, v))
		out = append(out, ScoredCandidate{
			CourseID:        courseID,
			Type:            StrategyMatrixFactor,
			ConfidenceScore: score,
			RelevanceScore:  score,
			Reasoning: Reasoning{
				Factors: []string{"latent_factors"},
				Text:    "predicted from your completion history",
			},
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RelevanceScore != out[j].RelevanceScore {
			return out[i].RelevanceScore > out[j].RelevanceScore
		}
		return out[i].CourseID.String() < out[j].CourseID.String()
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}
