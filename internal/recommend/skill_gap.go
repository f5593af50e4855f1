package recommend

import (
	"context"
	"fmt"
	"strings"
)

const (
	careerPathConfidence = 0.85
	skillGapConfidence   = 0.8
)

// SkillGap recommends content whose skills intersect the user's skill gaps.
// The career-path variant is the same scorer with a different tag and a
// slightly higher fixed confidence, reflecting declared career intent.
type SkillGap struct {
	Contents ContentStore

	// CareerPath switches the strategy tag and confidence.
	CareerPath bool
}

func (s *SkillGap) Name() string {
	if s.CareerPath {
		return StrategyCareerPath
	}
	return StrategySkillGap
}

func (s *SkillGap) Recommend(ctx context.Context, profile *Profile, req Request) ([]ScoredCandidate, error) {
	if s.Contents == nil || profile == nil {
		return nil, nil
	}

	gaps := profile.EffectiveSkillGaps()
	if len(gaps) == 0 {
		return nil, nil
	}

	contents, err := s.Contents.ListPublished(ctx, profile.OrganizationID)
	if err != nil {
		return nil, err
	}

	confidence := skillGapConfidence
	tag := StrategySkillGap
	if s.CareerPath {
		confidence = careerPathConfidence
		tag = StrategyCareerPath
	}

	out := make([]ScoredCandidate, 0)
	for _, content := range contents {
		if req.ExcludeCompleted && profile.TakenCourses[content.CourseID] {
			continue
		}
		matched := intersect(content.Skills, gaps)
		if len(matched) == 0 {
			continue
		}
		ratio := float64(len(matched)) / float64(len(gaps))
		out = append(out, ScoredCandidate{
			CourseID:        content.CourseID,
			Type:            tag,
			ConfidenceScore: confidence,
			RelevanceScore:  clamp01(0.7 + 0.3*ratio),
			Reasoning: Reasoning{
				Factors: matched,
				Text:    fmt.Sprintf("covers skills you are missing: %s", strings.Join(matched, ", ")),
			},
			PrimaryTopic: primaryTopic(profile.Topics, content.Topics),
		})
	}
	return out, nil
}

// EffectiveSkillGaps returns the declared gaps when present, otherwise the
// difference between required and possessed skills.
func (p *Profile) EffectiveSkillGaps() []string {
	if len(p.SkillGaps) > 0 {
		return p.SkillGaps
	}
	if len(p.RequiredSkills) == 0 {
		return nil
	}
	possessed := make(map[string]struct{}, len(p.Skills)+len(p.SkillLevels))
	for _, s := range p.Skills {
		possessed[s] = struct{}{}
	}
	for s := range p.SkillLevels {
		possessed[s] = struct{}{}
	}
	gaps := make([]string, 0, len(p.RequiredSkills))
	for _, s := range p.RequiredSkills {
		if _, ok := possessed[s]; !ok {
			gaps = append(gaps, s)
		}
	}
	return gaps
}

func intersect(a, b []string) []string {
	set := make(map[string]struct{}, len(b))
	for _, s := range b {
		set[s] = struct{}{}
	}
	var out []string
	for _, s := range a {
		if _, ok := set[s]; ok {
			out = append(out, s)
			delete(set, s)
		}
	}
	return out
}
