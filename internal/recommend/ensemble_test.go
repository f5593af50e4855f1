package recommend

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestCombine_MergesDuplicates(t *testing.T) {
	courseID := uuid.New()
	lists := [][]ScoredCandidate{
		{{CourseID: courseID, Type: StrategyContentBased, ConfidenceScore: 0.6, RelevanceScore: 0.8}},
		{{CourseID: courseID, Type: StrategyCollaborative, ConfidenceScore: 0.9, RelevanceScore: 0.4}},
	}

	out := Combine(lists, EnsembleConfig{})
	if len(out) != 1 {
		t.Fatalf("expected 1 merged candidate, got %d", len(out))
	}
	got := out[0]
	if got.ConfidenceScore != 0.9 {
		t.Fatalf("confidence should keep the max, got %v", got.ConfidenceScore)
	}
	if math.Abs(got.RelevanceScore-0.6) > 1e-9 {
		t.Fatalf("relevance should be the mean, got %v", got.RelevanceScore)
	}
	if got.Type != StrategyCollaborative {
		t.Fatalf("type should follow the max-confidence contributor, got %q", got.Type)
	}
	if len(got.Sources) != 2 || !containsString(got.Sources, StrategyContentBased) || !containsString(got.Sources, StrategyCollaborative) {
		t.Fatalf("sources should union contributing strategies, got %v", got.Sources)
	}
}

func TestCombine_SortsByRelevanceDesc(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	lists := [][]ScoredCandidate{{
		{CourseID: a, Type: StrategyTrending, ConfidenceScore: 0.6, RelevanceScore: 0.5},
		{CourseID: b, Type: StrategyContentBased, ConfidenceScore: 0.7, RelevanceScore: 0.9},
	}}

	out := Combine(lists, EnsembleConfig{})
	if len(out) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(out))
	}
	if out[0].CourseID != b || out[1].CourseID != a {
		t.Fatalf("candidates not sorted by relevance descending")
	}
}

func TestCombine_TruncatesToLimit(t *testing.T) {
	var list []ScoredCandidate
	for i := 0; i < 15; i++ {
		list = append(list, ScoredCandidate{
			CourseID:        uuid.New(),
			Type:            StrategyTrending,
			ConfidenceScore: 0.6,
			RelevanceScore:  0.5,
		})
	}

	out := Combine([][]ScoredCandidate{list}, EnsembleConfig{})
	if len(out) != defaultMaxRecommendations {
		t.Fatalf("expected default cap of %d, got %d", defaultMaxRecommendations, len(out))
	}

	out = Combine([][]ScoredCandidate{list}, EnsembleConfig{MaxRecommendations: 3})
	if len(out) != 3 {
		t.Fatalf("expected explicit cap of 3, got %d", len(out))
	}
}

func TestDiversityFilter_LevelZeroPassesThrough(t *testing.T) {
	var list []ScoredCandidate
	for i := 0; i < 5; i++ {
		list = append(list, ScoredCandidate{
			CourseID:     uuid.New(),
			Type:         StrategyTrending,
			PrimaryTopic: "python",
		})
	}
	out := diversityFilter(list, 0)
	if len(out) != 5 {
		t.Fatalf("level 0 should not filter, got %d of 5", len(out))
	}
}

func TestDiversityFilter_SkipsRepeatedTypeAndTopic(t *testing.T) {
	keep1 := ScoredCandidate{CourseID: uuid.New(), Type: StrategyContentBased, PrimaryTopic: "python"}
	skip := ScoredCandidate{CourseID: uuid.New(), Type: StrategyContentBased, PrimaryTopic: "python"}
	keep2 := ScoredCandidate{CourseID: uuid.New(), Type: StrategyContentBased, PrimaryTopic: "sql"}
	keep3 := ScoredCandidate{CourseID: uuid.New(), Type: StrategyTrending, PrimaryTopic: "python"}

	out := diversityFilter([]ScoredCandidate{keep1, skip, keep2, keep3}, 1)
	if len(out) != 3 {
		t.Fatalf("expected 3 admitted, got %d", len(out))
	}
	for _, cand := range out {
		if cand.CourseID == skip.CourseID {
			t.Fatalf("duplicate type+topic candidate should have been skipped")
		}
	}
}

func TestDiversityFilter_EmptyTopicNeverCountsAsSeen(t *testing.T) {
	a := ScoredCandidate{CourseID: uuid.New(), Type: StrategyTrending}
	b := ScoredCandidate{CourseID: uuid.New(), Type: StrategyTrending}
	out := diversityFilter([]ScoredCandidate{a, b}, 1)
	if len(out) != 2 {
		t.Fatalf("candidates without a topic should both pass, got %d", len(out))
	}
}
