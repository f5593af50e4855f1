package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/recommend"
	"github.com/brightpath/brightpath-backend/internal/repos"
	"github.com/brightpath/brightpath-backend/internal/types"
)

// ProfileUpdate carries the writable profile fields of an update call. Nil
// fields are left untouched; present fields replace the stored value whole.
type ProfileUpdate struct {
	Interests     *types.Interests                 `json:"interests,omitempty"`
	SkillLevels   map[string]types.SkillLevelInfo  `json:"skill_levels,omitempty"`
	LearningStyle *string                          `json:"learning_style,omitempty"`
	Preferences   *types.ProfilePreferences        `json:"preferences,omitempty"`
	Behavior      *types.LearningBehavior          `json:"learning_behavior,omitempty"`
	CareerPath    *types.CareerPath                `json:"career_path,omitempty"`
}

type ProfileService interface {
	// Get returns the stored profile, synthesizing and persisting one from the
	// user's learning history when none exists yet.
	Get(ctx context.Context, userID, orgID uuid.UUID) (*types.UserLearningProfile, error)
	Update(ctx context.Context, userID, orgID uuid.UUID, update ProfileUpdate) (*types.UserLearningProfile, error)
	// Refresh re-derives the history-based fields (interests, skill levels,
	// behavior) of an existing profile and restamps LastProfiledAt. User-set
	// fields (learning style, preferences, career path) are left alone.
	Refresh(ctx context.Context, userID, orgID uuid.UUID) (*types.UserLearningProfile, error)
	AddInterests(ctx context.Context, userID, orgID uuid.UUID, interests types.Interests) (*types.UserLearningProfile, error)
	SetCareerPath(ctx context.Context, userID, orgID uuid.UUID, path types.CareerPath) (*types.UserLearningProfile, error)
	// ScoringProfile flattens the stored profile into the scoring core's view.
	ScoringProfile(ctx context.Context, userID, orgID uuid.UUID) (*recommend.Profile, error)
}

type profileService struct {
	profiles    repos.ProfileRepo
	enrollments repos.EnrollmentRepo
	assessments repos.AssessmentRepo
	courses     repos.CourseRepo
	log         *logger.Logger
}

func NewProfileService(
	profiles repos.ProfileRepo,
	enrollments repos.EnrollmentRepo,
	assessments repos.AssessmentRepo,
	courses repos.CourseRepo,
	baseLog *logger.Logger,
) ProfileService {
	return &profileService{
		profiles:    profiles,
		enrollments: enrollments,
		assessments: assessments,
		courses:     courses,
		log:         baseLog.With("service", "ProfileService"),
	}
}

func (s *profileService) Get(ctx context.Context, userID, orgID uuid.UUID) (*types.UserLearningProfile, error) {
	profile, err := s.profiles.GetByUserOrg(ctx, nil, userID, orgID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	profile, err = s.synthesize(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}
	created, err := s.profiles.Create(ctx, nil, profile)
	if err != nil {
		return nil, err
	}
	s.log.Info("synthesized learning profile", "user_id", userID, "completeness", created.ProfileCompleteness)
	return created, nil
}

// synthesize builds a first profile from enrollments and assessment results:
// topics from enrolled course categories, skills from course tags, skill
// levels from per-skill assessment aggregates, behavior from completion
// ratios.
func (s *profileService) synthesize(ctx context.Context, userID, orgID uuid.UUID) (*types.UserLearningProfile, error) {
	enrollments, err := s.enrollments.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	assessments, err := s.assessments.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	courseIDs := make([]uuid.UUID, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}
	courses, err := s.courses.GetByIDs(ctx, nil, courseIDs)
	if err != nil {
		return nil, err
	}

	interests := types.Interests{}
	topicSeen := make(map[string]bool)
	skillSeen := make(map[string]bool)
	for _, course := range courses {
		if course.Category != "" && !topicSeen[course.Category] {
			topicSeen[course.Category] = true
			interests.Topics = append(interests.Topics, course.Category)
			interests.Categories = append(interests.Categories, course.Category)
		}
		var tags []string
		types.DecodeJSON(course.Tags, &tags)
		for _, tag := range tags {
			if !skillSeen[tag] {
				skillSeen[tag] = true
				interests.Skills = append(interests.Skills, tag)
			}
		}
	}

	skillLevels := aggregateSkillLevels(assessments)
	behavior := deriveBehavior(enrollments)

	profile := &types.UserLearningProfile{
		UserID:           userID,
		OrganizationID:   orgID,
		Interests:        types.MustJSON(interests),
		SkillLevels:      types.MustJSON(skillLevels),
		LearningStyle:    types.LearningStyleUnspecified,
		Preferences:      types.MustJSON(types.ProfilePreferences{}),
		LearningBehavior: types.MustJSON(behavior),
		CareerPath:       types.MustJSON(types.CareerPath{}),
		LastProfiledAt:   time.Now(),
	}
	profile.ProfileCompleteness = completeness(profile)
	return profile, nil
}

// aggregateSkillLevels maps each assessed skill's pass rate onto the 4-point
// difficulty scale: >=0.9 expert, >=0.75 advanced, >=0.5 intermediate,
// otherwise beginner. Confidence grows with evidence count.
func aggregateSkillLevels(assessments []*types.AssessmentResult) map[string]types.SkillLevelInfo {
	type agg struct {
		passed, total int
		scoreSum      float64
	}
	byskill := make(map[string]*agg)
	for _, a := range assessments {
		entry, ok := byskill[a.Skill]
		if !ok {
			entry = &agg{}
			byskill[a.Skill] = entry
		}
		entry.total++
		entry.scoreSum += a.Score
		if a.Passed {
			entry.passed++
		}
	}

	out := make(map[string]types.SkillLevelInfo, len(byskill))
	for skill, entry := range byskill {
		passRate := float64(entry.passed) / float64(entry.total)
		level := types.DifficultyBeginner
		switch {
		case passRate >= 0.9:
			level = types.DifficultyExpert
		case passRate >= 0.75:
			level = types.DifficultyAdvanced
		case passRate >= 0.5:
			level = types.DifficultyIntermediate
		}
		confidence := float64(entry.total) / 5.0
		if confidence > 1 {
			confidence = 1
		}
		out[skill] = types.SkillLevelInfo{
			Level:      level,
			Confidence: confidence,
			Evidence:   entry.total,
		}
	}
	return out
}

func deriveBehavior(enrollments []*types.Enrollment) types.LearningBehavior {
	if len(enrollments) == 0 {
		return types.LearningBehavior{}
	}
	var completed, progressSum float64
	for _, e := range enrollments {
		progressSum += e.Progress
		if e.Status == types.EnrollmentCompleted {
			completed++
		}
	}
	total := float64(len(enrollments))
	return types.LearningBehavior{
		CompletionRate:  completed / total,
		EngagementScore: progressSum / total,
	}
}

// Completeness weights: interests 0.2, skill levels 0.2, preferences 0.15,
// learning behavior 0.15, career path 0.3, capped at 1.
func completeness(profile *types.UserLearningProfile) float64 {
	var score float64

	var interests types.Interests
	types.DecodeJSON(profile.Interests, &interests)
	if len(interests.Topics) > 0 || len(interests.Skills) > 0 || len(interests.Categories) > 0 {
		score += 0.2
	}

	var skillLevels map[string]types.SkillLevelInfo
	types.DecodeJSON(profile.SkillLevels, &skillLevels)
	if len(skillLevels) > 0 {
		score += 0.2
	}

	var prefs types.ProfilePreferences
	types.DecodeJSON(profile.Preferences, &prefs)
	if len(prefs.ContentTypes) > 0 || prefs.DifficultyPreference != "" || prefs.DurationPreference != "" {
		score += 0.15
	}

	var behavior types.LearningBehavior
	types.DecodeJSON(profile.LearningBehavior, &behavior)
	if behavior.CompletionRate > 0 || behavior.EngagementScore > 0 ||
		behavior.AvgSessionMinutes > 0 || behavior.SessionsPerWeek > 0 {
		score += 0.15
	}

	var career types.CareerPath
	types.DecodeJSON(profile.CareerPath, &career)
	if career.TargetRole != "" || len(career.RequiredSkills) > 0 || len(career.SkillGaps) > 0 {
		score += 0.3
	}

	if score > 1 {
		score = 1
	}
	return score
}

func (s *profileService) Update(ctx context.Context, userID, orgID uuid.UUID, update ProfileUpdate) (*types.UserLearningProfile, error) {
	profile, err := s.Get(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}

	if update.Interests != nil {
		profile.Interests = types.MustJSON(*update.Interests)
	}
	if update.SkillLevels != nil {
		profile.SkillLevels = types.MustJSON(update.SkillLevels)
	}
	if update.LearningStyle != nil {
		profile.LearningStyle = *update.LearningStyle
	}
	if update.Preferences != nil {
		profile.Preferences = types.MustJSON(*update.Preferences)
	}
	if update.Behavior != nil {
		profile.LearningBehavior = types.MustJSON(*update.Behavior)
	}
	if update.CareerPath != nil {
		profile.CareerPath = types.MustJSON(*update.CareerPath)
	}

	profile.ProfileCompleteness = completeness(profile)
	profile.LastProfiledAt = time.Now()

	if err := s.profiles.Save(ctx, nil, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) Refresh(ctx context.Context, userID, orgID uuid.UUID) (*types.UserLearningProfile, error) {
	stored, err := s.profiles.GetByUserOrg(ctx, nil, userID, orgID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return s.Get(ctx, userID, orgID)
	}

	fresh, err := s.synthesize(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}

	var current, derived types.Interests
	types.DecodeJSON(stored.Interests, &current)
	types.DecodeJSON(fresh.Interests, &derived)
	current.Topics = appendUnique(current.Topics, derived.Topics)
	current.Categories = appendUnique(current.Categories, derived.Categories)
	current.Skills = appendUnique(current.Skills, derived.Skills)

	stored.Interests = types.MustJSON(current)
	stored.SkillLevels = fresh.SkillLevels
	stored.LearningBehavior = fresh.LearningBehavior
	stored.ProfileCompleteness = completeness(stored)
	stored.LastProfiledAt = time.Now()

	if err := s.profiles.Save(ctx, nil, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *profileService) AddInterests(ctx context.Context, userID, orgID uuid.UUID, interests types.Interests) (*types.UserLearningProfile, error) {
	profile, err := s.Get(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}

	var current types.Interests
	types.DecodeJSON(profile.Interests, &current)
	current.Topics = appendUnique(current.Topics, interests.Topics)
	current.Categories = appendUnique(current.Categories, interests.Categories)
	current.Skills = appendUnique(current.Skills, interests.Skills)
	current.CareerGoals = appendUnique(current.CareerGoals, interests.CareerGoals)

	return s.Update(ctx, userID, orgID, ProfileUpdate{Interests: &current})
}

func (s *profileService) SetCareerPath(ctx context.Context, userID, orgID uuid.UUID, path types.CareerPath) (*types.UserLearningProfile, error) {
	return s.Update(ctx, userID, orgID, ProfileUpdate{CareerPath: &path})
}

func (s *profileService) ScoringProfile(ctx context.Context, userID, orgID uuid.UUID) (*recommend.Profile, error) {
	stored, err := s.Get(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}

	var interests types.Interests
	types.DecodeJSON(stored.Interests, &interests)
	var skillLevels map[string]types.SkillLevelInfo
	types.DecodeJSON(stored.SkillLevels, &skillLevels)
	var prefs types.ProfilePreferences
	types.DecodeJSON(stored.Preferences, &prefs)
	var behavior types.LearningBehavior
	types.DecodeJSON(stored.LearningBehavior, &behavior)
	var career types.CareerPath
	types.DecodeJSON(stored.CareerPath, &career)

	profile := &recommend.Profile{
		UserID:               userID,
		OrganizationID:       orgID,
		Topics:               interests.Topics,
		Categories:           interests.Categories,
		Skills:               interests.Skills,
		CareerGoals:          interests.CareerGoals,
		LearningStyle:        stored.LearningStyle,
		ContentTypes:         prefs.ContentTypes,
		DifficultyPreference: prefs.DifficultyPreference,
		CompletionRate:       behavior.CompletionRate,
		EngagementScore:      behavior.EngagementScore,
		RequiredSkills:       career.RequiredSkills,
		SkillGaps:            career.SkillGaps,
		TakenCourses:         make(map[uuid.UUID]bool),
	}
	if len(skillLevels) > 0 {
		profile.SkillLevels = make(map[string]recommend.SkillLevel, len(skillLevels))
		for skill, info := range skillLevels {
			profile.SkillLevels[skill] = recommend.SkillLevel{
				Level:      info.Level,
				Confidence: info.Confidence,
				Evidence:   info.Evidence,
			}
		}
	}

	enrollments, err := s.enrollments.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	for _, e := range enrollments {
		profile.TakenCourses[e.CourseID] = true
	}
	return profile, nil
}

func appendUnique(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[s] = true
	}
	for _, s := range extra {
		if !seen[s] {
			seen[s] = true
			base = append(base, s)
		}
	}
	return base
}
