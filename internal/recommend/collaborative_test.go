package recommend

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestCollaborative_UsesPrecomputedNeighbors(t *testing.T) {
	userID := uuid.New()
	neighbor := uuid.New()
	courseID := uuid.New()

	strategy := &Collaborative{
		Similarities: &fakeSimilarityStore{
			userNeighbors: map[uuid.UUID][]Neighbor{
				userID: {{ID: neighbor, Score: 0.8}},
			},
		},
		Interactions: &fakeInteractionStore{
			positive: map[uuid.UUID]map[uuid.UUID]float64{
				neighbor: {courseID: 0.9},
			},
		},
	}
	profile := &Profile{UserID: userID, OrganizationID: uuid.New()}

	cands, err := strategy.Recommend(context.Background(), profile, Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	want := 0.8 * 0.9
	if math.Abs(cands[0].ConfidenceScore-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", cands[0].ConfidenceScore, want)
	}
}

func TestCollaborative_SkipsTakenCourses(t *testing.T) {
	userID := uuid.New()
	neighbor := uuid.New()
	taken := uuid.New()

	strategy := &Collaborative{
		Similarities: &fakeSimilarityStore{
			userNeighbors: map[uuid.UUID][]Neighbor{
				userID: {{ID: neighbor, Score: 0.9}},
			},
		},
		Interactions: &fakeInteractionStore{
			positive: map[uuid.UUID]map[uuid.UUID]float64{
				neighbor: {taken: 1.0},
			},
		},
	}
	profile := &Profile{
		UserID:       userID,
		TakenCourses: map[uuid.UUID]bool{taken: true},
	}

	cands, err := strategy.Recommend(context.Background(), profile, Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 0 {
		t.Fatalf("taken course should be excluded, got %d", len(cands))
	}
}

func TestCollaborative_FallsBackToCosineNeighbors(t *testing.T) {
	userID := uuid.New()
	other := uuid.New()
	courseID := uuid.New()

	strategy := &Collaborative{
		Similarities: &fakeSimilarityStore{},
		Interactions: &fakeInteractionStore{
			vectors: map[uuid.UUID]map[string]float64{
				userID: {"cat:data": 1, "tag:python": 1},
				other:  {"cat:data": 1, "tag:python": 1},
			},
			positive: map[uuid.UUID]map[uuid.UUID]float64{
				other: {courseID: 0.8},
			},
		},
	}
	profile := &Profile{UserID: userID, OrganizationID: uuid.New()}

	cands, err := strategy.Recommend(context.Background(), profile, Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("expected fallback neighbors to yield 1 candidate, got %d", len(cands))
	}
	// identical vectors give cosine 1.0, so the score is the raw engagement
	if math.Abs(cands[0].ConfidenceScore-0.8) > 1e-9 {
		t.Fatalf("score = %v, want 0.8", cands[0].ConfidenceScore)
	}
}

func TestCollaborative_NoNeighborsYieldsNothing(t *testing.T) {
	strategy := &Collaborative{
		Similarities: &fakeSimilarityStore{},
		Interactions: &fakeInteractionStore{},
	}
	profile := &Profile{UserID: uuid.New()}

	cands, err := strategy.Recommend(context.Background(), profile, Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 0 {
		t.Fatalf("expected no candidates, got %d", len(cands))
	}
}
