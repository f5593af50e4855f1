package recommend

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type fakeContentStore struct {
	contents []Content
}

func (f *fakeContentStore) ListPublished(_ context.Context, _ uuid.UUID) ([]Content, error) {
	return f.contents, nil
}

func (f *fakeContentStore) Get(_ context.Context, courseID uuid.UUID) (*Content, error) {
	for i := range f.contents {
		if f.contents[i].CourseID == courseID {
			return &f.contents[i], nil
		}
	}
	return nil, nil
}

type fakeSimilarityStore struct {
	userNeighbors    map[uuid.UUID][]Neighbor
	contentNeighbors map[uuid.UUID][]Neighbor
}

func (f *fakeSimilarityStore) UserNeighbors(_ context.Context, userID uuid.UUID, minScore float64) ([]Neighbor, error) {
	var out []Neighbor
	for _, n := range f.userNeighbors[userID] {
		if n.Score >= minScore {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeSimilarityStore) ContentNeighbors(_ context.Context, courseID uuid.UUID, limit int) ([]Neighbor, error) {
	out := f.contentNeighbors[courseID]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeInteractionStore struct {
	positive map[uuid.UUID]map[uuid.UUID]float64
	vectors  map[uuid.UUID]map[string]float64
}

func (f *fakeInteractionStore) PositiveCourses(_ context.Context, userID uuid.UUID) (map[uuid.UUID]float64, error) {
	return f.positive[userID], nil
}

func (f *fakeInteractionStore) UserVector(_ context.Context, userID uuid.UUID) (map[string]float64, error) {
	return f.vectors[userID], nil
}

func (f *fakeInteractionStore) UserVectors(_ context.Context, _ uuid.UUID, _ int) (map[uuid.UUID]map[string]float64, error) {
	return f.vectors, nil
}

type fakeTrendingStore struct {
	counts []CourseCount
}

func (f *fakeTrendingStore) EnrollmentCounts(_ context.Context, _ uuid.UUID, _ time.Time, limit int) ([]CourseCount, error) {
	out := f.counts
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
