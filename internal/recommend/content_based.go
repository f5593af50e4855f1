package recommend

import (
	"context"
	"fmt"
)

// Weights of the five content-based signals. Scores are normalized by the
// weight actually used, so a missing signal does not drag the total down.
const (
	weightTopics      = 0.3
	weightSkills      = 0.25
	weightDifficulty  = 0.2
	weightContentType = 0.15
	weightStyle       = 0.1

	defaultMinContentScore = 0.3
)

// ContentBased scores every published course's features against the user
// profile across topic overlap, skill overlap, difficulty distance, content
// type preference and learning style alignment.
type ContentBased struct {
	Contents ContentStore

	// MinScore drops weak candidates; defaults to 0.3.
	MinScore float64
}

func (s *ContentBased) Name() string { return StrategyContentBased }

func (s *ContentBased) Recommend(ctx context.Context, profile *Profile, req Request) ([]ScoredCandidate, error) {
	if s.Contents == nil || profile == nil {
		return nil, nil
	}

	contents, err := s.Contents.ListPublished(ctx, profile.OrganizationID)
	if err != nil {
		return nil, err
	}

	minScore := s.MinScore
	if minScore <= 0 {
		minScore = defaultMinContentScore
	}

	out := make([]ScoredCandidate, 0, len(contents))
	for _, content := range contents {
		if req.ExcludeCompleted && profile.TakenCourses[content.CourseID] {
			continue
		}
		if !matchesContentTypes(content.ContentType, req.ContentTypes) {
			continue
		}

		score, reasoning := s.scoreContent(profile, content)
		if score < minScore {
			continue
		}

		out = append(out, ScoredCandidate{
			CourseID:        content.CourseID,
			Type:            StrategyContentBased,
			ConfidenceScore: score,
			RelevanceScore:  score,
			Reasoning:       reasoning,
			PrimaryTopic:    primaryTopic(profile.Topics, content.Topics),
		})
	}
	return out, nil
}

func (s *ContentBased) scoreContent(profile *Profile, content Content) (float64, Reasoning) {
	var total, weightUsed float64
	factors := make([]string, 0, 5)

	if len(content.Topics) > 0 || len(profile.Topics) > 0 {
		sim := Jaccard(content.Topics, profile.Topics)
		total += sim * weightTopics
		weightUsed += weightTopics
		if sim > 0 {
			factors = append(factors, "topic_overlap")
		}
	}

	profileSkills := profile.Skills
	for skill := range profile.SkillLevels {
		profileSkills = append(profileSkills, skill)
	}
	if len(content.Skills) > 0 || len(profileSkills) > 0 {
		sim := Jaccard(content.Skills, profileSkills)
		total += sim * weightSkills
		weightUsed += weightSkills
		if sim > 0 {
			factors = append(factors, "skill_overlap")
		}
	}

	userLevel := profile.EffectiveLevel()
	diffScore := DifficultyMatch(content.DifficultyLevel, userLevel)
	total += diffScore * weightDifficulty
	weightUsed += weightDifficulty
	if diffScore >= 1 {
		factors = append(factors, "difficulty_match")
	}

	if len(profile.ContentTypes) > 0 {
		typeScore := 0.0
		for _, t := range profile.ContentTypes {
			if t == content.ContentType {
				typeScore = 1.0
				break
			}
		}
		total += typeScore * weightContentType
		weightUsed += weightContentType
		if typeScore > 0 {
			factors = append(factors, "preferred_content_type")
		}
	}

	if profile.LearningStyle != "" && profile.LearningStyle != "unspecified" && content.ContentType != "" {
		total += StyleAlignment(profile.LearningStyle, content.ContentType) * weightStyle
		weightUsed += weightStyle
	}

	if weightUsed == 0 {
		return 0, Reasoning{}
	}
	score := total / weightUsed
	return score, Reasoning{
		Factors: factors,
		Text:    fmt.Sprintf("matched %d of your profile signals", len(factors)),
	}
}

// EffectiveLevel derives the user's position on the ordinal difficulty scale:
// explicit preference wins, otherwise the average of assessed skill levels,
// otherwise intermediate.
func (p *Profile) EffectiveLevel() int {
	switch p.DifficultyPreference {
	case "beginner":
		return 0
	case "intermediate":
		return 1
	case "advanced":
		return 2
	case "expert":
		return 3
	}
	if len(p.SkillLevels) > 0 {
		sum := 0
		for _, sl := range p.SkillLevels {
			sum += sl.Level
		}
		return sum / len(p.SkillLevels)
	}
	return 1
}

func matchesContentTypes(contentType string, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, t := range wanted {
		if t == contentType {
			return true
		}
	}
	return false
}

func primaryTopic(profileTopics, contentTopics []string) string {
	for _, ct := range contentTopics {
		for _, pt := range profileTopics {
			if ct == pt {
				return ct
			}
		}
	}
	if len(contentTopics) > 0 {
		return contentTopics[0]
	}
	return ""
}
