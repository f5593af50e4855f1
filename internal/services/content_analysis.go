package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/recommend"
	"github.com/brightpath/brightpath-backend/internal/repos"
	"github.com/brightpath/brightpath-backend/internal/types"
)

var ErrCourseNotFound = errors.New("course not found")

// minSimilarityToPersist keeps the pair tables from filling up with noise.
const minSimilarityToPersist = 0.1

type ContentAnalysisService interface {
	// Analyze regenerates the derived feature row for one course from its
	// metadata and enrollment aggregates.
	Analyze(ctx context.Context, courseID uuid.UUID) (*types.ContentFeatures, error)
	// RecomputeSimilarities rebuilds pairwise content similarity over up to
	// limit published courses of the organization and returns the number of
	// pairs written.
	RecomputeSimilarities(ctx context.Context, orgID uuid.UUID, limit int) (int, error)
}

type contentAnalysisService struct {
	courses      repos.CourseRepo
	features     repos.ContentFeaturesRepo
	enrollments  repos.EnrollmentRepo
	similarities repos.SimilarityRepo
	log          *logger.Logger
}

func NewContentAnalysisService(
	courses repos.CourseRepo,
	features repos.ContentFeaturesRepo,
	enrollments repos.EnrollmentRepo,
	similarities repos.SimilarityRepo,
	baseLog *logger.Logger,
) ContentAnalysisService {
	return &contentAnalysisService{
		courses:      courses,
		features:     features,
		enrollments:  enrollments,
		similarities: similarities,
		log:          baseLog.With("service", "ContentAnalysisService"),
	}
}

func (s *contentAnalysisService) Analyze(ctx context.Context, courseID uuid.UUID) (*types.ContentFeatures, error) {
	courses, err := s.courses.GetByIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, ErrCourseNotFound
	}
	course := courses[0]

	var tags []string
	types.DecodeJSON(course.Tags, &tags)

	topics := make([]string, 0, len(tags)+1)
	if course.Category != "" {
		topics = append(topics, strings.ToLower(course.Category))
	}
	for _, tag := range tags {
		topics = append(topics, strings.ToLower(tag))
	}

	metrics, err := s.engagementMetrics(ctx, course)
	if err != nil {
		return nil, err
	}

	features := &types.ContentFeatures{
		CourseID:        course.ID,
		Topics:          types.MustJSON(topics),
		Skills:          types.MustJSON(tags),
		Categories:      types.MustJSON([]string{course.Category}),
		DifficultyLevel: course.DifficultyLevel,
		Prerequisites:   types.MustJSON([]string{}),
		Characteristics: types.MustJSON(map[string]any{
			"content_type":     course.ContentType,
			"duration_minutes": course.DurationMinutes,
		}),
		EngagementMetrics: types.MustJSON(metrics),
		LastAnalyzedAt:    time.Now(),
	}
	if err := s.features.Upsert(ctx, nil, features); err != nil {
		return nil, err
	}
	s.log.Info("analyzed course content", "course_id", courseID, "topics", len(topics))
	return features, nil
}

func (s *contentAnalysisService) engagementMetrics(ctx context.Context, course *types.Course) (types.EngagementMetrics, error) {
	counts, err := s.enrollments.CountByCourseSince(ctx, nil, course.OrganizationID, time.Time{}, 0)
	if err != nil {
		return types.EngagementMetrics{}, err
	}
	var metrics types.EngagementMetrics
	for _, row := range counts {
		if row.CourseID == course.ID {
			metrics.EnrollmentCount = int(row.Count)
			break
		}
	}
	return metrics, nil
}

func (s *contentAnalysisService) RecomputeSimilarities(ctx context.Context, orgID uuid.UUID, limit int) (int, error) {
	rows, err := s.features.ListByOrganization(ctx, nil, orgID, limit)
	if err != nil {
		return 0, err
	}
	if len(rows) < 2 {
		return 0, nil
	}

	contents := make([]recommend.Content, 0, len(rows))
	for _, row := range rows {
		contents = append(contents, toContent(row))
	}

	written := 0
	for i := 0; i < len(contents); i++ {
		for j := i + 1; j < len(contents); j++ {
			score, factors := contentSimilarity(contents[i], contents[j])
			if score < minSimilarityToPersist {
				continue
			}
			err := s.similarities.UpsertContentPair(ctx, nil,
				contents[i].CourseID, contents[j].CourseID, score, factors)
			if err != nil {
				return written, err
			}
			written++
		}
	}
	s.log.Info("recomputed content similarities", "org_id", orgID, "items", len(contents), "pairs", written)
	return written, nil
}

// contentSimilarity blends topic, skill and category overlap with difficulty
// proximity, mirroring the content-based signal weights.
func contentSimilarity(a, b recommend.Content) (float64, []string) {
	var factors []string

	topicSim := recommend.Jaccard(a.Topics, b.Topics)
	if topicSim > 0 {
		factors = append(factors, "topics")
	}
	skillSim := recommend.Jaccard(a.Skills, b.Skills)
	if skillSim > 0 {
		factors = append(factors, "skills")
	}
	categorySim := recommend.Jaccard(a.Categories, b.Categories)
	if categorySim > 0 {
		factors = append(factors, "categories")
	}
	difficultySim := recommend.DifficultyMatch(a.DifficultyLevel, b.DifficultyLevel)

	score := 0.4*topicSim + 0.3*skillSim + 0.2*categorySim + 0.1*difficultySim
	return score, factors
}
