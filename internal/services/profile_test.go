package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/repos"
	"github.com/brightpath/brightpath-backend/internal/types"
)

func TestCompleteness_EmptyProfile(t *testing.T) {
	profile := &types.UserLearningProfile{
		LearningStyle: types.LearningStyleUnspecified,
	}
	if got := completeness(profile); got != 0 {
		t.Fatalf("empty profile completeness = %v, want 0", got)
	}
}

func TestCompleteness_GrowsMonotonically(t *testing.T) {
	profile := &types.UserLearningProfile{
		LearningStyle: types.LearningStyleUnspecified,
	}
	prev := completeness(profile)

	profile.Interests = types.MustJSON(types.Interests{Topics: []string{"go"}})
	if got := completeness(profile); got <= prev {
		t.Fatalf("adding interests should increase completeness: %v -> %v", prev, got)
	} else {
		prev = got
	}

	profile.SkillLevels = types.MustJSON(map[string]types.SkillLevelInfo{"go": {Level: 1}})
	if got := completeness(profile); got <= prev {
		t.Fatalf("adding skill levels should increase completeness: %v -> %v", prev, got)
	} else {
		prev = got
	}

	profile.LearningBehavior = types.MustJSON(types.LearningBehavior{CompletionRate: 0.4})
	if got := completeness(profile); got <= prev {
		t.Fatalf("recording behavior should increase completeness: %v -> %v", prev, got)
	} else {
		prev = got
	}

	profile.Preferences = types.MustJSON(types.ProfilePreferences{ContentTypes: []string{"video"}})
	if got := completeness(profile); got <= prev {
		t.Fatalf("setting preferences should increase completeness: %v -> %v", prev, got)
	} else {
		prev = got
	}

	profile.CareerPath = types.MustJSON(types.CareerPath{TargetRole: "data engineer"})
	got := completeness(profile)
	if got <= prev {
		t.Fatalf("setting a career path should increase completeness: %v -> %v", prev, got)
	}
	if got > 1.0 {
		t.Fatalf("completeness must not exceed 1.0, got %v", got)
	}
}

func TestCompleteness_BehaviorCarriesWeight(t *testing.T) {
	profile := &types.UserLearningProfile{
		LearningStyle:    types.LearningStyleUnspecified,
		LearningBehavior: types.MustJSON(types.LearningBehavior{EngagementScore: 0.6}),
	}
	if got := completeness(profile); got != 0.15 {
		t.Fatalf("behavior-only profile completeness = %v, want 0.15", got)
	}

	// learning style is not one of the weighted fields
	profile.LearningStyle = types.LearningStyleVisual
	if got := completeness(profile); got != 0.15 {
		t.Fatalf("learning style must not affect completeness, got %v", got)
	}
}

func TestAggregateSkillLevels_PassRateMapping(t *testing.T) {
	mkResults := func(skill string, passed, failed int) []*types.AssessmentResult {
		var out []*types.AssessmentResult
		for i := 0; i < passed; i++ {
			out = append(out, &types.AssessmentResult{Skill: skill, Score: 0.9, Passed: true})
		}
		for i := 0; i < failed; i++ {
			out = append(out, &types.AssessmentResult{Skill: skill, Score: 0.3, Passed: false})
		}
		return out
	}

	levels := aggregateSkillLevels(mkResults("sql", 10, 0))
	if levels["sql"].Level != types.DifficultyExpert {
		t.Fatalf("perfect pass rate should map to expert, got %d", levels["sql"].Level)
	}

	levels = aggregateSkillLevels(mkResults("go", 3, 1))
	if levels["go"].Level != types.DifficultyAdvanced {
		t.Fatalf("75%% pass rate should map to advanced, got %d", levels["go"].Level)
	}

	levels = aggregateSkillLevels(mkResults("rust", 1, 1))
	if levels["rust"].Level != types.DifficultyIntermediate {
		t.Fatalf("50%% pass rate should map to intermediate, got %d", levels["rust"].Level)
	}

	levels = aggregateSkillLevels(mkResults("cpp", 0, 4))
	if levels["cpp"].Level != types.DifficultyBeginner {
		t.Fatalf("failing record should map to beginner, got %d", levels["cpp"].Level)
	}
	if levels["cpp"].Evidence != 4 {
		t.Fatalf("evidence should count attempts, got %d", levels["cpp"].Evidence)
	}
}

func TestDeriveBehavior(t *testing.T) {
	behavior := deriveBehavior([]*types.Enrollment{
		{Status: types.EnrollmentCompleted, Progress: 1.0},
		{Status: types.EnrollmentActive, Progress: 0.5},
	})
	if behavior.CompletionRate != 0.5 {
		t.Fatalf("completion rate = %v, want 0.5", behavior.CompletionRate)
	}
	if behavior.EngagementScore != 0.75 {
		t.Fatalf("engagement score = %v, want 0.75", behavior.EngagementScore)
	}

	empty := deriveBehavior(nil)
	if empty.CompletionRate != 0 || empty.EngagementScore != 0 {
		t.Fatalf("no enrollments should yield zero behavior, got %+v", empty)
	}
}

type fakeProfileRepo struct {
	stored *types.UserLearningProfile
	saves  int
}

func (f *fakeProfileRepo) GetByUserOrg(_ context.Context, _ *gorm.DB, userID, orgID uuid.UUID) (*types.UserLearningProfile, error) {
	if f.stored != nil && f.stored.UserID == userID && f.stored.OrganizationID == orgID {
		return f.stored, nil
	}
	return nil, nil
}

func (f *fakeProfileRepo) Create(_ context.Context, _ *gorm.DB, profile *types.UserLearningProfile) (*types.UserLearningProfile, error) {
	profile.ID = uuid.New()
	f.stored = profile
	return profile, nil
}

func (f *fakeProfileRepo) Save(_ context.Context, _ *gorm.DB, profile *types.UserLearningProfile) error {
	f.stored = profile
	f.saves++
	return nil
}

func (f *fakeProfileRepo) ListUserIDsNeedingRefresh(context.Context, *gorm.DB, uuid.UUID, time.Time, int) ([]uuid.UUID, error) {
	return nil, nil
}

type fakeEnrollmentRepo struct {
	byUser []*types.Enrollment
	matrix []repos.ProgressRow
}

func (f *fakeEnrollmentRepo) Create(_ context.Context, _ *gorm.DB, enrollments []*types.Enrollment) ([]*types.Enrollment, error) {
	return enrollments, nil
}

func (f *fakeEnrollmentRepo) GetByUserID(context.Context, *gorm.DB, uuid.UUID) ([]*types.Enrollment, error) {
	return f.byUser, nil
}

func (f *fakeEnrollmentRepo) CountByCourseSince(context.Context, *gorm.DB, uuid.UUID, time.Time, int) ([]repos.CourseCount, error) {
	return nil, nil
}

func (f *fakeEnrollmentRepo) ProgressMatrix(context.Context, *gorm.DB, uuid.UUID) ([]repos.ProgressRow, error) {
	return f.matrix, nil
}

type fakeAssessmentRepo struct {
	results []*types.AssessmentResult
}

func (f *fakeAssessmentRepo) Create(_ context.Context, _ *gorm.DB, results []*types.AssessmentResult) ([]*types.AssessmentResult, error) {
	return results, nil
}

func (f *fakeAssessmentRepo) GetByUserID(context.Context, *gorm.DB, uuid.UUID) ([]*types.AssessmentResult, error) {
	return f.results, nil
}

type fakeCourseRepo struct {
	courses []*types.Course
}

func (f *fakeCourseRepo) Create(_ context.Context, _ *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
	return courses, nil
}

func (f *fakeCourseRepo) GetByIDs(context.Context, *gorm.DB, []uuid.UUID) ([]*types.Course, error) {
	return f.courses, nil
}

func (f *fakeCourseRepo) ListPublished(context.Context, *gorm.DB, uuid.UUID, int) ([]*types.Course, error) {
	return f.courses, nil
}

func TestProfileService_RefreshRederivesAndRestamps(t *testing.T) {
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	userID := uuid.New()
	orgID := uuid.New()
	staleAt := time.Now().Add(-48 * time.Hour)
	profiles := &fakeProfileRepo{stored: &types.UserLearningProfile{
		ID:             uuid.New(),
		UserID:         userID,
		OrganizationID: orgID,
		LearningStyle:  types.LearningStyleVisual,
		CareerPath:     types.MustJSON(types.CareerPath{TargetRole: "data engineer"}),
		LastProfiledAt: staleAt,
	}}

	courseID := uuid.New()
	enrollments := &fakeEnrollmentRepo{byUser: []*types.Enrollment{
		{UserID: userID, CourseID: courseID, Status: types.EnrollmentCompleted, Progress: 1.0},
	}}
	courses := &fakeCourseRepo{courses: []*types.Course{
		{ID: courseID, Category: "data", Tags: types.MustJSON([]string{"sql"})},
	}}

	svc := NewProfileService(profiles, enrollments, &fakeAssessmentRepo{}, courses, log)

	refreshed, err := svc.Refresh(context.Background(), userID, orgID)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if !refreshed.LastProfiledAt.After(staleAt) {
		t.Fatalf("refresh must restamp LastProfiledAt, still %v", refreshed.LastProfiledAt)
	}
	if profiles.saves != 1 {
		t.Fatalf("refresh must save the profile, saves = %d", profiles.saves)
	}

	var behavior types.LearningBehavior
	types.DecodeJSON(refreshed.LearningBehavior, &behavior)
	if behavior.CompletionRate != 1.0 {
		t.Fatalf("behavior should be re-derived from enrollments, completion rate = %v", behavior.CompletionRate)
	}

	var interests types.Interests
	types.DecodeJSON(refreshed.Interests, &interests)
	found := false
	for _, topic := range interests.Topics {
		if topic == "data" {
			found = true
		}
	}
	if !found {
		t.Fatalf("enrolled course category should appear in interests, got %v", interests.Topics)
	}

	if refreshed.LearningStyle != types.LearningStyleVisual {
		t.Fatalf("user-set learning style must survive a refresh, got %q", refreshed.LearningStyle)
	}
	if refreshed.ProfileCompleteness <= 0.6 {
		t.Fatalf("interests + behavior + career path should exceed 0.6, got %v", refreshed.ProfileCompleteness)
	}
}

func TestAppendUnique(t *testing.T) {
	got := appendUnique([]string{"a", "b"}, []string{"b", "c", "a", "d"})
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("appendUnique = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("appendUnique = %v, want %v", got, want)
		}
	}
}
