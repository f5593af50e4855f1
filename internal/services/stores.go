package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brightpath/brightpath-backend/internal/clients"
	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/recommend"
	"github.com/brightpath/brightpath-backend/internal/repos"
	"github.com/brightpath/brightpath-backend/internal/types"
)

// Adapters narrow the repositories onto the scoring core's store interfaces so
// internal/recommend stays free of gorm and jsonb concerns.

type contentStoreAdapter struct {
	features repos.ContentFeaturesRepo
}

func NewContentStore(features repos.ContentFeaturesRepo) recommend.ContentStore {
	return &contentStoreAdapter{features: features}
}

func (a *contentStoreAdapter) ListPublished(ctx context.Context, orgID uuid.UUID) ([]recommend.Content, error) {
	rows, err := a.features.ListByOrganization(ctx, nil, orgID, 0)
	if err != nil {
		return nil, err
	}
	out := make([]recommend.Content, 0, len(rows))
	for _, row := range rows {
		out = append(out, toContent(row))
	}
	return out, nil
}

func (a *contentStoreAdapter) Get(ctx context.Context, courseID uuid.UUID) (*recommend.Content, error) {
	row, err := a.features.GetByCourseID(ctx, nil, courseID)
	if err != nil || row == nil {
		return nil, err
	}
	content := toContent(row)
	return &content, nil
}

func toContent(row *types.ContentFeatures) recommend.Content {
	content := recommend.Content{
		CourseID:        row.CourseID,
		DifficultyLevel: row.DifficultyLevel,
	}
	types.DecodeJSON(row.Topics, &content.Topics)
	types.DecodeJSON(row.Skills, &content.Skills)
	types.DecodeJSON(row.Categories, &content.Categories)

	var metrics types.EngagementMetrics
	types.DecodeJSON(row.EngagementMetrics, &metrics)
	content.EngagementRating = metrics.AvgRating
	content.CompletionRate = metrics.CompletionRate

	var characteristics struct {
		ContentType string `json:"content_type"`
	}
	types.DecodeJSON(row.Characteristics, &characteristics)
	content.ContentType = characteristics.ContentType
	return content
}

type similarityStoreAdapter struct {
	similarities repos.SimilarityRepo
}

func NewSimilarityStore(similarities repos.SimilarityRepo) recommend.SimilarityStore {
	return &similarityStoreAdapter{similarities: similarities}
}

func (a *similarityStoreAdapter) UserNeighbors(ctx context.Context, userID uuid.UUID, minScore float64) ([]recommend.Neighbor, error) {
	rows, err := a.similarities.UserNeighbors(ctx, nil, userID, minScore, 0)
	if err != nil {
		return nil, err
	}
	return toNeighbors(rows), nil
}

func (a *similarityStoreAdapter) ContentNeighbors(ctx context.Context, courseID uuid.UUID, limit int) ([]recommend.Neighbor, error) {
	rows, err := a.similarities.ContentNeighbors(ctx, nil, courseID, limit)
	if err != nil {
		return nil, err
	}
	return toNeighbors(rows), nil
}

func toNeighbors(rows []repos.Neighbor) []recommend.Neighbor {
	out := make([]recommend.Neighbor, 0, len(rows))
	for _, row := range rows {
		out = append(out, recommend.Neighbor{ID: row.ID, Score: row.Score})
	}
	return out
}

// interactionStoreAdapter derives engagement signals from enrollments and
// assessments. Positive engagement is completion or meaningful progress.
type interactionStoreAdapter struct {
	enrollments repos.EnrollmentRepo
	assessments repos.AssessmentRepo
	courses     repos.CourseRepo
	users       repos.UserRepo
}

func NewInteractionStore(
	enrollments repos.EnrollmentRepo,
	assessments repos.AssessmentRepo,
	courses repos.CourseRepo,
	users repos.UserRepo,
) recommend.InteractionStore {
	return &interactionStoreAdapter{
		enrollments: enrollments,
		assessments: assessments,
		courses:     courses,
		users:       users,
	}
}

const positiveProgressFloor = 0.5

func (a *interactionStoreAdapter) PositiveCourses(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]float64, error) {
	enrollments, err := a.enrollments.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]float64)
	for _, e := range enrollments {
		switch {
		case e.Status == types.EnrollmentCompleted:
			out[e.CourseID] = 1.0
		case e.Progress >= positiveProgressFloor:
			out[e.CourseID] = e.Progress
		}
	}
	return out, nil
}

func (a *interactionStoreAdapter) UserVector(ctx context.Context, userID uuid.UUID) (map[string]float64, error) {
	enrollments, err := a.enrollments.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	assessments, err := a.assessments.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	courseIDs := make([]uuid.UUID, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}
	courses, err := a.courses.GetByIDs(ctx, nil, courseIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	vec := make(map[string]float64)
	var completed, total float64
	for _, e := range enrollments {
		total++
		if e.Status == types.EnrollmentCompleted {
			completed++
		}
		course, ok := byID[e.CourseID]
		if !ok {
			continue
		}
		if course.Category != "" {
			vec["cat:"+course.Category]++
		}
		var tags []string
		types.DecodeJSON(course.Tags, &tags)
		for _, tag := range tags {
			vec["tag:"+tag]++
		}
	}
	if total > 0 {
		vec["completion_rate"] = completed / total
	}
	for _, a := range assessments {
		key := "skill:" + a.Skill
		if a.Score > vec[key] {
			vec[key] = a.Score
		}
	}
	return vec, nil
}

func (a *interactionStoreAdapter) UserVectors(ctx context.Context, orgID uuid.UUID, limit int) (map[uuid.UUID]map[string]float64, error) {
	users, err := a.users.ListByOrganization(ctx, nil, orgID, limit)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]map[string]float64, len(users))
	for _, u := range users {
		vec, err := a.UserVector(ctx, u.ID)
		if err != nil {
			continue
		}
		if len(vec) > 0 {
			out[u.ID] = vec
		}
	}
	return out, nil
}

// trendingStoreAdapter serves enrollment counts with a read-through cache in
// front of the aggregate query. A cold or unavailable cache falls back to the
// database.
type trendingStoreAdapter struct {
	enrollments repos.EnrollmentRepo
	cache       *clients.RedisService
	log         *logger.Logger
}

const trendingCacheTTL = 10 * time.Minute

func NewTrendingStore(enrollments repos.EnrollmentRepo, cache *clients.RedisService, baseLog *logger.Logger) recommend.TrendingStore {
	return &trendingStoreAdapter{
		enrollments: enrollments,
		cache:       cache,
		log:         baseLog.With("store", "trending"),
	}
}

func (a *trendingStoreAdapter) EnrollmentCounts(ctx context.Context, orgID uuid.UUID, since time.Time, limit int) ([]recommend.CourseCount, error) {
	key := fmt.Sprintf("trending:%s:%d", orgID, limit)
	if a.cache != nil {
		if raw, ok := a.cache.Get(ctx, key); ok {
			var cached []recommend.CourseCount
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	rows, err := a.enrollments.CountByCourseSince(ctx, nil, orgID, since, limit)
	if err != nil {
		return nil, err
	}
	out := make([]recommend.CourseCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, recommend.CourseCount{CourseID: row.CourseID, Count: row.Count})
	}

	if a.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			a.cache.Set(ctx, key, string(raw), trendingCacheTTL)
		}
	}
	return out, nil
}
