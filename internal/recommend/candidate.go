package recommend

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Strategy tags carried on candidates and persisted as provenance.
const (
	StrategyContentBased  = "content_based"
	StrategyCollaborative = "collaborative"
	StrategyHybrid        = "hybrid"
	StrategyTrending      = "trending"
	StrategyCareerPath    = "career_path"
	StrategySkillGap      = "skill_gap"
	StrategyContextual    = "contextual"
	StrategyMatrixFactor  = "matrix_factorization"
)

// ScoredCandidate is the single typed record that flows from every strategy
// into the ensemble combiner. No untyped maps between stages.
type ScoredCandidate struct {
	CourseID        uuid.UUID
	Type            string
	ConfidenceScore float64
	RelevanceScore  float64
	Reasoning       Reasoning
	PrimaryTopic    string
	// Sources is filled by the combiner: every strategy that contributed this
	// course. Strategies themselves leave it nil.
	Sources []string
}

type Reasoning struct {
	Factors []string
	Text    string
}

// Request carries the per-call knobs of a recommendation run.
type Request struct {
	Limit            int // max recommendations returned, default 10
	DiversityLevel   int // 0 disables diversity filtering
	ContentTypes     []string
	ExcludeCompleted bool
	CurrentCourseID  uuid.UUID // uuid.Nil when no browsing context
}

// SkillLevel mirrors the profile's per-skill assessment summary. Level shares
// the 4-point ordinal difficulty scale.
type SkillLevel struct {
	Level      int
	Confidence float64
	Evidence   int
}

// Profile is the scoring core's view of a user. It is built by the service
// layer from the stored learning profile; the core never touches the ORM.
type Profile struct {
	UserID         uuid.UUID
	OrganizationID uuid.UUID

	Topics      []string
	Categories  []string
	Skills      []string
	CareerGoals []string

	SkillLevels   map[string]SkillLevel
	LearningStyle string

	ContentTypes         []string
	DifficultyPreference string

	CompletionRate  float64
	EngagementScore float64

	RequiredSkills []string
	SkillGaps      []string

	// TakenCourses holds every course the user is or was enrolled in; used for
	// exclusion by the collaborative and matrix-factorization paths.
	TakenCourses map[uuid.UUID]bool
}

// Content is the scoring core's view of one course's derived features.
type Content struct {
	CourseID         uuid.UUID
	Topics           []string
	Skills           []string
	Categories       []string
	ContentType      string
	DifficultyLevel  int
	EngagementRating float64
	CompletionRate   float64
}

type Neighbor struct {
	ID    uuid.UUID
	Score float64
}

type CourseCount struct {
	CourseID uuid.UUID
	Count    int64
}

// Store interfaces are deliberately narrow; the service layer adapts the
// repositories onto them so strategies stay free of persistence concerns.

type ContentStore interface {
	ListPublished(ctx context.Context, orgID uuid.UUID) ([]Content, error)
	Get(ctx context.Context, courseID uuid.UUID) (*Content, error)
}

type SimilarityStore interface {
	UserNeighbors(ctx context.Context, userID uuid.UUID, minScore float64) ([]Neighbor, error)
	ContentNeighbors(ctx context.Context, courseID uuid.UUID, limit int) ([]Neighbor, error)
}

type InteractionStore interface {
	// PositiveCourses returns courses the user engaged with positively, mapped
	// to an engagement rating in [0,1].
	PositiveCourses(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]float64, error)
	// UserVector returns a sparse feature vector for one user (course
	// categories, tags, completion rate, skill scores).
	UserVector(ctx context.Context, userID uuid.UUID) (map[string]float64, error)
	// UserVectors returns sparse vectors for candidate neighbor users of an
	// organization, excluding none; callers filter the target out themselves.
	UserVectors(ctx context.Context, orgID uuid.UUID, limit int) (map[uuid.UUID]map[string]float64, error)
}

type TrendingStore interface {
	EnrollmentCounts(ctx context.Context, orgID uuid.UUID, since time.Time, limit int) ([]CourseCount, error)
}

// Strategy is one independent scorer. Implementations are stateless aside
// from reads through their stores.
type Strategy interface {
	Name() string
	Recommend(ctx context.Context, profile *Profile, req Request) ([]ScoredCandidate, error)
}
